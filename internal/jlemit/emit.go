// Package jlemit implements the flush step: computing the Cartesian product
// of completed rows across all registered tables and writing it as
// delimited text.
package jlemit

import (
	"bufio"
	"io"

	"github.com/ajbruin/jl/internal/jltable"
)

// Emitter writes flushed rows to an underlying writer, separating fields
// with Sep and terminating each row with a newline.
type Emitter struct {
	w   *bufio.Writer
	sep string
	reg *jltable.Registry
}

// New creates an Emitter writing to w, reading from reg at flush time.
func New(w io.Writer, sep string, reg *jltable.Registry) *Emitter {
	return &Emitter{w: bufio.NewWriter(w), sep: sep, reg: reg}
}

// Flush computes the Cartesian product of the registry's completed rows,
// writes it as delimited output, and resets every table's completed rows.
// If no table has any completed rows, nothing is written. The underlying
// writer is flushed before returning.
func (e *Emitter) Flush() error {
	defer e.reg.Reset()

	tables := e.reg.Tables()

	nRows := 1
	hasAny := false
	for _, t := range tables {
		n := len(t.Completed)
		if n > 0 {
			hasAny = true
			nRows *= n
		}
	}
	if !hasAny {
		return nil
	}

	for i := 0; i < nRows; i++ {
		first := true
		for _, t := range tables {
			rowIdx := 0
			if n := len(t.Completed); n > 0 {
				rowIdx = i % n
			}

			for c := 0; c < t.NCols; c++ {
				if !first {
					if _, err := e.w.WriteString(e.sep); err != nil {
						return err
					}
				}
				first = false

				if len(t.Completed) > 0 {
					if _, err := e.w.WriteString(t.Completed[rowIdx][c]); err != nil {
						return err
					}
				}
			}
		}
		if err := e.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return e.w.Flush()
}
