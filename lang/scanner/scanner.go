// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the lexer: it turns a source buffer into a
// stream of lang/token.Token values, one Scan call at a time. It never
// materializes the whole token stream itself — lang/parser pulls tokens one
// at a time and keeps the ones it needs for diagnostics — but the resulting
// stream is a linear, EOF-terminated sequence of tokens.
package scanner

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"

	ctoken "github.com/mna/aucc/lang/token"
)

type (
	// Error and ErrorList are the stdlib go/scanner diagnostic types, reused
	// as-is: a Position-tagged message and a sortable/printable list of them.
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError prints the list of errors (or a single error) to w, one per
// line, in the "<filename>:<line>:<column>: <message>" form (go/scanner
// additionally prints the column, which this compiler's diagnostics already
// carry).
var PrintError = scanner.PrintError

// Value holds the decoded payload of a token: its raw source text, its
// position, and (depending on kind) its integer or decoded-string value.
type Value struct {
	Raw string
	Pos token.Pos
	Int int64
	Str string // decoded bytes of a STRING token, NUL-terminated
}

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	file *token.File // position/line tracking for the current file
	src  []byte
	err  func(token.Position, string)

	cur  byte // current byte, 0 at end of input
	off  int  // offset of cur in src
	roff int  // offset right after cur
}

// Init (re)initializes the scanner to tokenize src, which must back file
// (file.Size() == len(src)).
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic("scanner: file size does not match src length")
	}
	s.file = file
	s.src = src
	s.err = errHandler
	s.off, s.roff = 0, 0
	s.advance()
}

func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.file.AddLine(s.off + 1)
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = 0
		return
	}
	s.off = s.roff
	s.cur = s.src[s.roff]
	s.roff++
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// Checkpoint is an opaque snapshot of the scanner's cursor, produced by
// Mark and consumed by Reset. It lets the parser re-scan the same span of
// source more than once, which the declarator grammar's two-pass
// sub-declarator re-parse needs: rewind, re-parse against a different base
// type, then fast-forward past it again.
type Checkpoint struct {
	cur        byte
	off, roff  int
}

// Mark returns a Checkpoint for the scanner's current position (the
// position it would resume scanning from, i.e. right after the
// most-recently-returned token).
func (s *Scanner) Mark() Checkpoint {
	return Checkpoint{cur: s.cur, off: s.off, roff: s.roff}
}

// Reset rewinds the scanner to a previously captured Checkpoint.
func (s *Scanner) Reset(c Checkpoint) {
	s.cur, s.off, s.roff = c.cur, c.off, c.roff
}

// advanceIf advances and returns true if the current byte equals want.
func (s *Scanner) advanceIf(want byte) bool {
	if s.cur == want {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token and fills val with its payload.
func (s *Scanner) Scan(val *Value) (tok ctoken.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch {
	case s.cur == 0:
		tok = ctoken.EOF
		*val = Value{Raw: "", Pos: pos}

	case isIdentStart(s.cur):
		lit := s.ident()
		tok = ctoken.Lookup(lit)
		*val = Value{Raw: lit, Pos: pos}

	case isDigit(s.cur):
		lit := s.number()
		tok = ctoken.INT
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			s.error(start, "integer literal value out of range")
		}
		*val = Value{Raw: lit, Pos: pos, Int: int64(n)}

	case s.cur == '"':
		s.advance()
		raw, decoded := s.stringLiteral(start)
		tok = ctoken.STRING
		*val = Value{Raw: raw, Pos: pos, Str: decoded}

	default:
		tok = s.operator()
		*val = Value{Raw: string(s.src[start:s.off]), Pos: pos}
	}
	return tok
}

func (s *Scanner) operator() ctoken.Token {
	cur := s.cur
	s.advance() // always make progress

	switch cur {
	case '=':
		if s.advanceIf('=') {
			return ctoken.EQL
		}
		return ctoken.ASSIGN
	case '!':
		if s.advanceIf('=') {
			return ctoken.NEQ
		}
		s.errorf(s.off-1, "illegal character %q", cur)
		return ctoken.ILLEGAL
	case '<':
		if s.advanceIf('=') {
			return ctoken.LE
		}
		return ctoken.LT
	case '>':
		if s.advanceIf('=') {
			return ctoken.GE
		}
		return ctoken.GT
	case '-':
		if s.advanceIf('>') {
			return ctoken.ARROW
		}
		return ctoken.MINUS
	case '+':
		return ctoken.PLUS
	case '*':
		return ctoken.STAR
	case '/':
		return ctoken.SLASH
	case '&':
		return ctoken.AMP
	case '.':
		return ctoken.DOT
	case ',':
		return ctoken.COMMA
	case ';':
		return ctoken.SEMI
	case ':':
		return ctoken.COLON
	case '(':
		return ctoken.LPAREN
	case ')':
		return ctoken.RPAREN
	case '[':
		return ctoken.LBRACK
	case ']':
		return ctoken.RBRACK
	case '{':
		return ctoken.LBRACE
	case '}':
		return ctoken.RBRACE
	default:
		s.errorf(s.off-1, "invalid byte %#x", cur)
		return ctoken.ILLEGAL
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isSpace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != 0 {
				s.advance()
			}
		case s.cur == '/' && s.peek() == '*':
			start := s.off
			s.advance()
			s.advance()
			closed := false
			for s.cur != 0 {
				if s.cur == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				s.error(start, "unclosed block comment")
			}
		default:
			return
		}
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isIdentStart(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number reads a greedy decimal literal into a string (the caller converts
// it to a uint64 accumulator value).
func (s *Scanner) number() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func isSpace(b byte) bool  { return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f' }
func isDigit(b byte) bool  { return '0' <= b && b <= '9' }
func isIdentStart(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}
