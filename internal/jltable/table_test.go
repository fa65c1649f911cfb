package jltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Table_AddRow_discardsAllEmpty(t *testing.T) {
	assert := assert.New(t)

	tbl := NewTable(2)
	tbl.AddRow()
	assert.Empty(tbl.Completed)
	assert.Equal([]string{"", ""}, tbl.Pending)
}

func Test_Table_AddRow_promotesNonEmpty(t *testing.T) {
	assert := assert.New(t)

	tbl := NewTable(2)
	tbl.SetCell(0, "a")
	tbl.AddRow()
	assert.Equal([][]string{{"a", ""}}, tbl.Completed)
	assert.Equal([]string{"", ""}, tbl.Pending)
}

func Test_Table_SetCell_overwritesLastWriteWins(t *testing.T) {
	assert := assert.New(t)

	tbl := NewTable(1)
	tbl.SetCell(0, "first")
	tbl.SetCell(0, "second")
	tbl.AddRow()
	assert.Equal([][]string{{"second"}}, tbl.Completed)
}

func Test_Table_SetCell_clonesValue(t *testing.T) {
	assert := assert.New(t)

	tbl := NewTable(1)
	buf := []byte("mutable")
	tbl.SetCell(0, string(buf))
	buf[0] = 'X'
	tbl.AddRow()
	assert.Equal("mutable", tbl.Completed[0][0])
}

func Test_Table_AddColumn(t *testing.T) {
	assert := assert.New(t)

	tbl := NewTable(0)
	c0 := tbl.AddColumn()
	c1 := tbl.AddColumn()
	assert.Equal(0, c0)
	assert.Equal(1, c1)
	assert.Equal(2, tbl.NCols)
	assert.Len(tbl.Pending, 2)
}

func Test_Registry_NewAndReset(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegistry()
	t1 := reg.New(1)
	t2 := reg.New(2)
	assert.Equal([]*Table{t1, t2}, reg.Tables())

	t1.SetCell(0, "x")
	t1.AddRow()
	assert.Len(t1.Completed, 1)

	reg.Reset()
	assert.Empty(t1.Completed)
}
