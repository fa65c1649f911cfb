// Package jltable implements Table, the per-pattern-scope accumulator of
// rows sharing a fixed column schema, and Registry, the ordered collection
// of all Tables allocated while a pattern is compiled.
package jltable

import "strings"

// Table accumulates rows for one position in the pattern's operator tree.
// NCols is fixed once the pattern finishes compiling. Pending holds the
// cell values captured so far within the current container iteration;
// Completed holds rows promoted out of Pending by AddRow.
type Table struct {
	NCols     int
	Pending   []string
	Completed [][]string
}

// NewTable creates a Table with the given column count and an empty
// pending row.
func NewTable(nCols int) *Table {
	return &Table{NCols: nCols, Pending: make([]string, nCols)}
}

// SetCell overwrites column c of the pending row with val. A later call
// for the same column within the same iteration overwrites an earlier one
// (last-writer-wins, for a repeated property). val is cloned
// rather than aliased, since it may share memory with the lexer's lexeme
// buffer.
func (t *Table) SetCell(c int, val string) {
	t.Pending[c] = strings.Clone(val)
}

// AddRow promotes the pending row into Completed if it has at least one
// non-empty cell, then resets the pending row to all-empty either way.
func (t *Table) AddRow() {
	hasValue := false
	for _, v := range t.Pending {
		if v != "" {
			hasValue = true
			break
		}
	}
	if hasValue {
		t.Completed = append(t.Completed, t.Pending)
		t.Pending = make([]string, t.NCols)
	}
}

// Reset clears Completed after a flush. Pending is already empty by
// invariant (AddRow always resets it).
func (t *Table) Reset() {
	t.Completed = t.Completed[:0]
}

// AddColumn grows t by one column (used for Object tables, whose column
// count isn't known until all of an object's Collect properties have been
// seen) and returns the new column's index.
func (t *Table) AddColumn() int {
	col := t.NCols
	t.NCols++
	t.Pending = append(t.Pending, "")
	return col
}

// Registry is a process-wide ordered list of Tables, in order of first
// appearance during pattern compilation.
type Registry struct {
	tables []*Table
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// New allocates a new Table with nCols columns, registers it, and returns
// it.
func (r *Registry) New(nCols int) *Table {
	t := NewTable(nCols)
	r.tables = append(r.tables, t)
	return t
}

// Tables returns the registered tables in registration order. The returned
// slice must not be mutated by the caller.
func (r *Registry) Tables() []*Table {
	return r.tables
}

// Reset clears Completed rows on every registered table, after a flush.
func (r *Registry) Reset() {
	for _, t := range r.tables {
		t.Reset()
	}
}
