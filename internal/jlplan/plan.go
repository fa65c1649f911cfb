// Package jlplan serializes and compares a compiled pattern's table schema
// (not the operator tree itself, which closes over Go functions and I/O and
// so isn't serializable) — just the number of tables and each table's
// column count, in registration order. This lets a long-running streaming
// job be guarded: if a freshly compiled pattern's shape doesn't match a
// previously saved one, that's caught before any input is consumed.
package jlplan

import (
	"os"

	"github.com/dekarrin/rezi"

	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/jltable"
)

// Schema is the column count of every table in a compiled pattern, in
// registration order.
type Schema []int

// SchemaOf captures the Schema of reg's current tables.
func SchemaOf(reg *jltable.Registry) Schema {
	tables := reg.Tables()
	s := make(Schema, len(tables))
	for i, t := range tables {
		s[i] = t.NCols
	}
	return s
}

// Dump encodes s with rezi's binary encoding and writes it to path.
func Dump(path string, s Schema) error {
	data, err := rezi.Enc([]int(s))
	if err != nil {
		return jlerrors.Wrap(jlerrors.Io, err, "encode plan")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return jlerrors.Wrap(jlerrors.Io, err, "write plan %q", path)
	}
	return nil
}

// Load decodes a Schema previously written by Dump.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, jlerrors.Wrap(jlerrors.Io, err, "read plan %q", path)
	}

	var cols []int
	if _, err := rezi.Dec(data, &cols); err != nil {
		return nil, jlerrors.Wrap(jlerrors.Pattern, err, "decode plan %q", path)
	}
	return Schema(cols), nil
}

// Equal reports whether two Schemas describe the same table/column shape.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
