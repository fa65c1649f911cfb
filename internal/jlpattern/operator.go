// Package jlpattern compiles the extraction DSL into a tree of Operators
// (Array, Object, Collect), allocating Tables into a jltable.Registry as it
// goes, and selects the tree's root operator — the point at which a
// completed top-level value should be flushed to output.
package jlpattern

import "github.com/ajbruin/jl/internal/jltable"

// Operator is a node in the compiled pattern tree. The three concrete
// implementations (ArrayOp, ObjectOp, CollectOp) are tagged variants of this
// single sum type; the runtime dispatches on concrete type with a type
// switch rather than any shared virtual behavior.
type Operator interface {
	isOperator()
}

// ArrayOp matches an array; for each element it runs Next. If Table is
// non-nil (true exactly when the pattern is `[*]`), a row is added to Table
// after each element and once more after the array closes.
type ArrayOp struct {
	Next   Operator
	Table  *jltable.Table
	IsRoot bool
}

func (*ArrayOp) isOperator() {}

// Prop is one named property of an Object pattern.
type Prop struct {
	Name string
	Op   Operator
}

// ObjectOp matches an object; for each member whose name equals some Prop's
// Name, it runs that Prop's operator. If Table is non-nil (true whenever at
// least one property is a Collect), a row is added to Table once the object
// closes.
type ObjectOp struct {
	Props  []Prop
	Table  *jltable.Table
	IsRoot bool
}

func (*ObjectOp) isOperator() {}

// CollectOp matches a single scalar value and writes its lexeme to Column
// of Table's pending row.
type CollectOp struct {
	Table  *jltable.Table
	Column int
}

func (*CollectOp) isOperator() {}

func isCollect(op Operator) bool {
	_, ok := op.(*CollectOp)
	return ok
}

// SelectRoot walks the tree from its top operator downward and marks
// exactly one node as root: the shallowest operator that branches (an
// Object with more than one property, or whose single property is itself a
// Collect; or an Array whose Next is a Collect). It returns false if no
// such node exists (equivalently, if the tree contains no Collect at all).
func SelectRoot(root Operator) bool {
	op := root
	for {
		switch o := op.(type) {
		case *ArrayOp:
			if isCollect(o.Next) {
				o.IsRoot = true
				return true
			}
			op = o.Next
		case *ObjectOp:
			if len(o.Props) > 1 || isCollect(o.Props[0].Op) {
				o.IsRoot = true
				return true
			}
			op = o.Props[0].Op
		case *CollectOp:
			return false
		default:
			return false
		}
	}
}
