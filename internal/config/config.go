// Package config holds the compiler's ambient build configuration: the
// handful of process-wide knobs that are inconvenient to pass as flags on
// every invocation (config.Env, loaded from the environment) and the
// externally-visible code generation knobs a downstream build system might
// want to override without recompiling aucc (config.Target, loaded from an
// optional YAML file). Neither changes the generated program's semantics;
// both change how loudly/where it is emitted.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/mna/aucc/lang/codegen"
)

// Env holds process-wide knobs read from the environment, parsed with
// caarlos0/env the same way mna/mainer itself pulls env.Parse in to back
// its EnvVars option.
type Env struct {
	// CommentLoc controls whether ".loc 1 <line>" directives are emitted.
	// Default on: most downstream assemblers simply ignore ".loc" if no
	// DWARF line table is being built, so there's no reason to default it
	// off.
	CommentLoc bool `env:"AUCC_COMMENT_LOC" envDefault:"true"`

	// MaxCallArgs documents the ABI register budget ("at most six
	// integer/pointer arguments are supported") rather than changing it —
	// the System V AMD64 argument registers are fixed at six, so any other
	// value is rejected by Validate rather than silently accepted.
	MaxCallArgs int `env:"AUCC_MAX_CALL_ARGS" envDefault:"6"`

	// TabWidth is validated but not read by anything else: diagnostics are
	// printed as "<file>:<line>:<column>: <message>", with no source line
	// and no column pointer.
	TabWidth int `env:"AUCC_TAB_WIDTH" envDefault:"8"`
}

// LoadEnv parses Env from the process environment and validates it.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Validate rejects out-of-range values. MaxCallArgs is not a tunable: it
// documents the ABI's fixed six-register budget, so any other value means
// the environment is misconfigured.
func (e Env) Validate() error {
	if e.MaxCallArgs != 6 {
		return fmt.Errorf("config: AUCC_MAX_CALL_ARGS must be 6 (the System V AMD64 integer argument register count), got %d", e.MaxCallArgs)
	}
	if e.TabWidth < 1 {
		return fmt.Errorf("config: AUCC_TAB_WIDTH must be positive, got %d", e.TabWidth)
	}
	return nil
}

// abiSlots are the six argument-register slots a Target's ArgRegisters map
// may override, named in System V AMD64 calling convention order: RDI,
// RSI, RDX, RCX, R8, R9.
var abiSlots = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// RegisterWidths is one ABI slot's register name at each of the four
// operand widths this compiler moves values at: the 1/2/4/8-byte move
// form matching the parameter's type size.
type RegisterWidths struct {
	R8  string `yaml:"r8"`
	R16 string `yaml:"r16"`
	R32 string `yaml:"r32"`
	R64 string `yaml:"r64"`
}

// Target describes the handful of externally-visible codegen knobs a
// downstream build system might want to override without recompiling aucc:
// section directive names, the argument register name tables, and whether
// struct/union assignment emits a byte-copy loop or (reserved) a "rep
// movsb". Loaded from an optional "-target" YAML file.
type Target struct {
	DataSection string `yaml:"data_section"`
	TextSection string `yaml:"text_section"`

	// ArgRegisters overrides individual ABI slots by name (one of abiSlots);
	// a slot absent from the map keeps the System V AMD64 default.
	ArgRegisters map[string]RegisterWidths `yaml:"arg_registers"`

	// StructAssign selects the struct/union assignment strategy: "" or
	// "byte_loop" (the only one implemented: an unrolled byte-by-byte
	// copy), or "rep_movsb" (reserved, rejected for now).
	StructAssign string `yaml:"struct_assign"`
}

// LoadTarget reads and validates a Target from the YAML file at path.
// Unknown keys are a decode error (yaml.Decoder.KnownFields(true)).
func LoadTarget(path string) (Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Target{}, fmt.Errorf("config: reading target file: %w", err)
	}
	t, err := decodeTarget(bytes.NewReader(b))
	if err != nil {
		return Target{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

func decodeTarget(r io.Reader) (Target, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Target
	if err := dec.Decode(&t); err != nil {
		return Target{}, err
	}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// Validate rejects a Target with unrecognized ABI slot names or an
// unimplemented struct-assignment strategy.
func (t Target) Validate() error {
	if len(t.ArgRegisters) > 0 {
		got := maps.Keys(t.ArgRegisters)
		slices.Sort(got)
		want := append([]string(nil), abiSlots...)
		slices.Sort(want)
		for _, slot := range got {
			if _, ok := slices.BinarySearch(want, slot); !ok {
				return fmt.Errorf("config: target: unknown arg_registers slot %q, want one of %v", slot, abiSlots)
			}
		}
	}

	switch t.StructAssign {
	case "", "byte_loop":
	case "rep_movsb":
		return fmt.Errorf("config: target: struct_assign %q is reserved and not yet implemented", t.StructAssign)
	default:
		return fmt.Errorf("config: target: unknown struct_assign %q", t.StructAssign)
	}
	return nil
}

// CodegenOptions builds codegen.Options from t layered over
// codegen.DefaultOptions, applying e.CommentLoc on top.
func (t Target) CodegenOptions(e Env) codegen.Options {
	opts := codegen.DefaultOptions()
	if t.DataSection != "" {
		opts.DataSection = t.DataSection
	}
	if t.TextSection != "" {
		opts.TextSection = t.TextSection
	}
	for i, slot := range abiSlots {
		rw, ok := t.ArgRegisters[slot]
		if !ok {
			continue
		}
		if rw.R8 != "" {
			opts.ArgRegisters8[i] = rw.R8
		}
		if rw.R16 != "" {
			opts.ArgRegisters16[i] = rw.R16
		}
		if rw.R32 != "" {
			opts.ArgRegisters32[i] = rw.R32
		}
		if rw.R64 != "" {
			opts.ArgRegisters64[i] = rw.R64
		}
	}
	opts.EmitLocDirectives = e.CommentLoc
	return opts
}
