package jlpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajbruin/jl/internal/jltable"
)

func Test_Compile_validPatterns(t *testing.T) {
	testCases := []struct {
		name       string
		pattern    string
		expectTabs int
	}{
		{name: "array collect", pattern: "[*]", expectTabs: 1},
		{name: "object of scalars", pattern: "{a,b,c}", expectTabs: 1},
		{name: "object with array child", pattern: "{a[*]}", expectTabs: 1},
		{name: "nested arrays", pattern: "[[*]]", expectTabs: 1},
		{name: "object with nested object", pattern: `{a{b,c}}`, expectTabs: 1},
		{name: "quoted name", pattern: `{"field one"}`, expectTabs: 1},
		{name: "unterminated quote runs to end", pattern: `{"unterminated`, expectTabs: 1},
		{name: "missing trailing bracket", pattern: "[*", expectTabs: 1},
		{name: "missing trailing brace", pattern: "{a,b", expectTabs: 1},
		{name: "trailing brace omitted right after single name", pattern: "{a", expectTabs: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			reg := jltable.NewRegistry()
			root, err := Compile(tc.pattern, reg)
			assert.NoError(err)
			assert.NotNil(root)
			assert.Len(reg.Tables(), tc.expectTabs)
		})
	}
}

func Test_Compile_invalidPatterns(t *testing.T) {
	testCases := []string{
		"",
		"*",
		"[]",
		"{}",
		"[,]",
		"{,}",
		"[*}",
		"[a]",
	}

	for _, pattern := range testCases {
		t.Run(pattern, func(t *testing.T) {
			assert := assert.New(t)

			reg := jltable.NewRegistry()
			_, err := Compile(pattern, reg)
			assert.Error(err)
		})
	}
}

func Test_SelectRoot_marksShallowestBranch(t *testing.T) {
	assert := assert.New(t)

	reg := jltable.NewRegistry()
	root, err := Compile("{a[*],b}", reg)
	assert.NoError(err)

	obj, ok := root.(*ObjectOp)
	assert.True(ok)
	assert.True(obj.IsRoot)
}

func Test_SelectRoot_arrayOfCollectIsRoot(t *testing.T) {
	assert := assert.New(t)

	reg := jltable.NewRegistry()
	root, err := Compile("[*]", reg)
	assert.NoError(err)

	arr, ok := root.(*ArrayOp)
	assert.True(ok)
	assert.True(arr.IsRoot)
}

func Test_SelectRoot_singleNonCollectPropertyDoesNotBranchAtObject(t *testing.T) {
	assert := assert.New(t)

	reg := jltable.NewRegistry()
	root, err := Compile("{a[*]}", reg)
	assert.NoError(err)

	obj, ok := root.(*ObjectOp)
	assert.True(ok)
	assert.False(obj.IsRoot)

	arr, ok := obj.Props[0].Op.(*ArrayOp)
	assert.True(ok)
	assert.True(arr.IsRoot)
}
