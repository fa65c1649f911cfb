// Package jlengine wires together the core pipeline — CharSource, Lexer,
// Runtime, and Emitter — around a single compiled pattern, and drives it
// over one or more input sources.
package jlengine

import (
	"fmt"
	"io"

	"github.com/ajbruin/jl/internal/jldump"
	"github.com/ajbruin/jl/internal/jlemit"
	"github.com/ajbruin/jl/internal/jlexer"
	"github.com/ajbruin/jl/internal/jlpattern"
	"github.com/ajbruin/jl/internal/jlruntime"
	"github.com/ajbruin/jl/internal/jlsource"
	"github.com/ajbruin/jl/internal/jltable"
)

// Engine holds a compiled pattern and its table registry, ready to be run
// against any number of input sources in turn. Rows accumulated while
// processing one source carry over to the next unless a flush has
// occurred; since every top-level value's root operator triggers its own
// flush, in practice table state never straddles a flush boundary, but it
// may straddle a file boundary if the root never fires, matching the
// reference implementation's single process-wide table registry.
type Engine struct {
	Root Operator
	Reg  *jltable.Registry
	Sep  string
	Out  io.Writer

	// Verbose, if set, dumps every table's accumulated rows to Debug
	// immediately before each flush.
	Verbose bool
	Debug   io.Writer
}

// Operator is an alias so callers of this package don't need to import
// jlpattern directly just to hold a reference.
type Operator = jlpattern.Operator

// Compile parses pattern into an Engine ready to run, with output going to
// out and fields separated by sep.
func Compile(pattern string, sep string, out io.Writer) (*Engine, error) {
	reg := jltable.NewRegistry()
	root, err := jlpattern.Compile(pattern, reg)
	if err != nil {
		return nil, err
	}
	return &Engine{Root: root, Reg: reg, Sep: sep, Out: out}, nil
}

// Run drives the engine's pattern against every top-level value readable
// from r until end of stream.
func (e *Engine) Run(r io.Reader) error {
	emitter := jlemit.New(e.Out, e.Sep, e.Reg)
	flush := emitter.Flush
	if e.Verbose {
		flush = func() error {
			fmt.Fprint(e.Debug, jldump.Tables(e.Reg))
			return emitter.Flush()
		}
	}
	lx := jlexer.New(jlsource.New(r))
	rt := jlruntime.New(lx, flush)
	return rt.Drive(e.Root)
}
