// Package jlruntime interprets a compiled jlpattern.Operator tree against a
// token stream, writing captured scalars into jltable.Tables and triggering
// a flush whenever the tree's root operator finishes processing one
// top-level value.
package jlruntime

import (
	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/jlexer"
	"github.com/ajbruin/jl/internal/jlpattern"
	"github.com/ajbruin/jl/internal/jltoken"
)

// Flush is called whenever the root operator of the tree being run
// finishes processing a top-level value; it is expected to emit the
// Cartesian product of the registry's completed rows and reset it.
type Flush func() error

// Runtime drives a jlpattern.Operator tree against tokens pulled from a
// Lexer.
type Runtime struct {
	lx    *jlexer.Lexer
	flush Flush
}

// New creates a Runtime reading tokens from lx, calling flush whenever the
// pattern's root operator completes.
func New(lx *jlexer.Lexer, flush Flush) *Runtime {
	return &Runtime{lx: lx, flush: flush}
}

// Drive repeatedly runs root against successive top-level values until the
// token stream is exhausted.
func (rt *Runtime) Drive(root jlpattern.Operator) error {
	for {
		if err := rt.Run(root); err != nil {
			return err
		}
		t, err := rt.lx.Peek()
		if err != nil {
			return err
		}
		if t.Kind == jltoken.Eof {
			return nil
		}
	}
}

// Run interprets op against the token stream once.
func (rt *Runtime) Run(op jlpattern.Operator) error {
	switch o := op.(type) {
	case *jlpattern.ArrayOp:
		return rt.runArray(o)
	case *jlpattern.ObjectOp:
		return rt.runObject(o)
	case *jlpattern.CollectOp:
		return rt.runCollect(o)
	default:
		return jlerrors.New(jlerrors.Parse, "unknown operator")
	}
}

func (rt *Runtime) runArray(op *jlpattern.ArrayOp) error {
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}
	if t.Kind != jltoken.BeginArray {
		return rt.skipValue()
	}
	if _, err := rt.lx.Next(); err != nil {
		return err
	}

	t, err = rt.lx.Peek()
	if err != nil {
		return err
	}
	if t.Kind == jltoken.EndArray {
		_, err := rt.lx.Next()
		return err
	}

	for {
		if err := rt.Run(op.Next); err != nil {
			return err
		}
		if op.Table != nil {
			op.Table.AddRow()
		}

		t, err = rt.lx.Next()
		if err != nil {
			return err
		}
		if t.Kind == jltoken.MemberSep {
			continue
		}
		if t.Kind != jltoken.EndArray {
			return jlerrors.New(jlerrors.Parse, "expected array end")
		}
		break
	}

	if op.Table != nil {
		op.Table.AddRow()
	}
	if op.IsRoot {
		return rt.flush()
	}
	return nil
}

func (rt *Runtime) runObject(op *jlpattern.ObjectOp) error {
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}
	if t.Kind != jltoken.BeginObject {
		return rt.skipValue()
	}
	if _, err := rt.lx.Next(); err != nil {
		return err
	}

	t, err = rt.lx.Next()
	if err != nil {
		return err
	}

	for t.Kind == jltoken.String {
		// the key is matched before the value is read; t.Text itself stays
		// valid across later Next/Peek calls.
		var matched *jlpattern.Prop
		for i := range op.Props {
			if op.Props[i].Name == t.Text {
				matched = &op.Props[i]
				break
			}
		}

		pairSep, err := rt.lx.Next()
		if err != nil {
			return err
		}
		if pairSep.Kind != jltoken.PairSep {
			return jlerrors.New(jlerrors.Parse, "expected ':' after property name")
		}

		if matched != nil {
			if err := rt.Run(matched.Op); err != nil {
				return err
			}
		} else if err := rt.skipValue(); err != nil {
			return err
		}

		t, err = rt.lx.Next()
		if err != nil {
			return err
		}
		if t.Kind != jltoken.MemberSep {
			break
		}
		t, err = rt.lx.Next()
		if err != nil {
			return err
		}
	}

	if t.Kind != jltoken.EndObject {
		return jlerrors.New(jlerrors.Parse, "expected object end")
	}

	if op.Table != nil {
		op.Table.AddRow()
	}
	if op.IsRoot {
		return rt.flush()
	}
	return nil
}

func (rt *Runtime) runCollect(op *jlpattern.CollectOp) error {
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}

	switch {
	case t.Kind == jltoken.BeginArray:
		return rt.skipArray()
	case t.Kind == jltoken.BeginObject:
		return rt.skipObject()
	case t.Kind.IsLiteral():
		op.Table.SetCell(op.Column, t.Text)
		_, err := rt.lx.Next()
		return err
	default:
		return jlerrors.New(jlerrors.Parse, "unexpected token type")
	}
}

func (rt *Runtime) accept(kind jltoken.Kind) error {
	t, err := rt.lx.Next()
	if err != nil {
		return err
	}
	if t.Kind != kind {
		return jlerrors.New(jlerrors.Parse, "unexpected token type, expected %s", kind)
	}
	return nil
}

func (rt *Runtime) skipValue() error {
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}
	switch {
	case t.Kind == jltoken.BeginArray:
		return rt.skipArray()
	case t.Kind == jltoken.BeginObject:
		return rt.skipObject()
	case t.Kind.IsLiteral():
		_, err := rt.lx.Next()
		return err
	default:
		return jlerrors.New(jlerrors.Parse, "unexpected token type")
	}
}

func (rt *Runtime) skipArray() error {
	if err := rt.accept(jltoken.BeginArray); err != nil {
		return err
	}
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}
	if t.Kind == jltoken.EndArray {
		_, err := rt.lx.Next()
		return err
	}

	for {
		if err := rt.skipValue(); err != nil {
			return err
		}
		t, err := rt.lx.Next()
		if err != nil {
			return err
		}
		if t.Kind == jltoken.MemberSep {
			continue
		}
		if t.Kind != jltoken.EndArray {
			return jlerrors.New(jlerrors.Parse, "expected array end")
		}
		break
	}
	return nil
}

func (rt *Runtime) skipObject() error {
	if err := rt.accept(jltoken.BeginObject); err != nil {
		return err
	}
	t, err := rt.lx.Peek()
	if err != nil {
		return err
	}
	if t.Kind == jltoken.EndObject {
		_, err := rt.lx.Next()
		return err
	}

	for {
		if err := rt.accept(jltoken.String); err != nil {
			return err
		}
		if err := rt.accept(jltoken.PairSep); err != nil {
			return err
		}
		if err := rt.skipValue(); err != nil {
			return err
		}
		t, err := rt.lx.Next()
		if err != nil {
			return err
		}
		if t.Kind == jltoken.MemberSep {
			continue
		}
		if t.Kind != jltoken.EndObject {
			return jlerrors.New(jlerrors.Parse, "expected object end")
		}
		break
	}
	return nil
}
