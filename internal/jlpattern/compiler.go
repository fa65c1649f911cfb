package jlpattern

import (
	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/jltable"
)

// Compile parses pattern (the extraction DSL grammar) into an
// Operator tree, registering columns into newly-created Tables in reg as it
// goes, and selects the tree's root. It returns a *jlerrors.Error of Kind
// Pattern on any deviation from the grammar, including the case where no
// Collect exists anywhere in the tree (so no root can be selected).
func Compile(pattern string, reg *jltable.Registry) (Operator, error) {
	p := &parser{s: pattern, reg: reg}

	var op Operator
	var err error

	switch p.cur() {
	case '[':
		op, err = p.parseArray()
	case '{':
		op, err = p.parseObject()
	default:
		return nil, invalidPattern()
	}
	if err != nil {
		return nil, err
	}
	if p.cur() != 0 {
		// text left over after the top-level array or object
		return nil, invalidPattern()
	}

	if !SelectRoot(op) {
		return nil, invalidPattern()
	}

	return op, nil
}

func invalidPattern() error {
	return jlerrors.New(jlerrors.Pattern, "invalid pattern")
}

type parser struct {
	s   string
	i   int
	reg *jltable.Registry
}

func (p *parser) cur() byte {
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func isNameBoundary(c byte) bool {
	switch c {
	case 0, ',', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// parseArray parses `[` inner `]`, where inner is `*`, a nested array, or a
// nested object. The trailing `]` may be omitted if the pattern ends there.
func (p *parser) parseArray() (Operator, error) {
	if p.cur() != '[' {
		return nil, invalidPattern()
	}
	p.i++

	arr := &ArrayOp{}

	switch p.cur() {
	case '*':
		t := p.reg.New(1)
		arr.Table = t
		arr.Next = &CollectOp{Table: t, Column: 0}
		p.i++
	case '[':
		next, err := p.parseArray()
		if err != nil {
			return nil, err
		}
		arr.Next = next
	case '{':
		next, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr.Next = next
	default:
		return nil, invalidPattern()
	}

	switch p.cur() {
	case 0:
		// trailing ']' omitted at end of input
	case ']':
		p.i++
	default:
		return nil, invalidPattern()
	}

	return arr, nil
}

// parseObject parses `{` prop (`,` prop)* `}`, where prop is a name alone
// (a Collect leaf), or a name followed by a nested array/object. The
// trailing `}` may be omitted if the pattern ends there. An empty object is
// an error.
func (p *parser) parseObject() (Operator, error) {
	if p.cur() != '{' {
		return nil, invalidPattern()
	}

	obj := &ObjectOp{}

	for {
		p.i++ // consume '{' or ','

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		var childOp Operator
		switch p.cur() {
		case ',', '}', 0:
			if obj.Table == nil {
				obj.Table = p.reg.New(0)
			}
			col := obj.Table.AddColumn()
			childOp = &CollectOp{Table: obj.Table, Column: col}
		case '{':
			childOp, err = p.parseObject()
		case '[':
			childOp, err = p.parseArray()
		default:
			return nil, invalidPattern()
		}
		if err != nil {
			return nil, err
		}

		obj.Props = append(obj.Props, Prop{Name: name, Op: childOp})

		switch p.cur() {
		case ',':
			continue
		case '}':
			p.i++
			goto done
		case 0:
			goto done
		default:
			return nil, invalidPattern()
		}
	}

done:
	if len(obj.Props) == 0 {
		return nil, invalidPattern()
	}
	return obj, nil
}

// parseName reads one property name: either a quoted string (consumed
// until a matching unescaped '"', tracking only a single-char backslash
// toggle — an unterminated quote runs to the end of the pattern rather
// than erroring, matching the grammar's permissive end-of-input handling
// elsewhere) or a bareword run of characters excluding `,[]{}`.
func (p *parser) parseName() (string, error) {
	if p.cur() != '"' {
		start := p.i
		for !isNameBoundary(p.cur()) {
			p.i++
		}
		if p.i == start {
			return "", invalidPattern()
		}
		return p.s[start:p.i], nil
	}

	p.i++ // consume opening quote
	start := p.i
	esc := false
	for p.i < len(p.s) {
		c := p.s[p.i]
		if c == '"' && !esc {
			name := p.s[start:p.i]
			p.i++
			return name, nil
		}
		if c == '\\' {
			esc = !esc
		} else {
			esc = false
		}
		p.i++
	}
	return p.s[start:p.i], nil
}
