// Package maincmd implements the aucc CLI: flag/subcommand dispatch via
// github.com/mna/mainer, wired to this compiler's scan/parse/codegen
// pipeline.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "aucc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

A single-pass, from-scratch compiler for a subset of C, emitting x86-64
AT&T assembly for the System V AMD64 ABI.

The <path> is a single source file, or "-" to read from standard input.

The <command> can be one of:
       build                     Run the full pipeline (scan, parse,
                                 generate code) and write the resulting
                                 assembly to standard output (or -o).
       tokenize                  Run only the lexer and print the token
                                 stream, one token per line.
       ast                       Run the lexer and parser and pretty-print
                                 the resulting typed syntax tree.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o --output <path>        Write the <build> command's output to
                                 <path> instead of standard output.
       --target <path>           Load codegen overrides from a YAML file
                                 (see internal/config.Target).

More information on the %[1]s repository:
       https://github.com/mna/aucc
`, binName)
)

// Cmd is the top-level aucc command, parsed by mainer.Parser. Its exported
// fields are the flags mainer binds by their `flag` tag; BuildVersion/
// BuildDate are set directly by cmd/aucc/main.go before Main runs.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output string `flag:"o,output"`
	Target string `flag:"target"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: a source path (or \"-\") must be provided", cmdName)
	}
	if len(c.args[1:]) > 1 {
		return fmt.Errorf("%s: only a single source file is supported", cmdName)
	}

	if c.flags["output"] && cmdName != "build" {
		return fmt.Errorf("%s: invalid flag 'output'", cmdName)
	}

	return nil
}

// Main parses args, dispatches to the selected subcommand, and returns the
// mainer.ExitCode the process should exit with.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its own diagnostics.
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds builds the reflection-based subcommand lookup mainer needs:
// any method of v taking (context.Context, mainer.Stdio, []string) and
// returning error is registered under its lowercased name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
