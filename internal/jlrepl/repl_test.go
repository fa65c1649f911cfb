package jlrepl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadValue(t *testing.T) {
	assert := assert.New(t)

	r := NewDirect(strings.NewReader("  [1,2,3]  \n{\"a\":1}\n"))
	defer r.Close()

	line, err := r.ReadValue()
	assert.NoError(err)
	assert.Equal("[1,2,3]", line)

	line, err = r.ReadValue()
	assert.NoError(err)
	assert.Equal(`{"a":1}`, line)

	_, err = r.ReadValue()
	assert.ErrorIs(err, io.EOF)
}

func Test_DirectReader_trailingLineWithoutNewline(t *testing.T) {
	assert := assert.New(t)

	r := NewDirect(strings.NewReader("[1]"))
	defer r.Close()

	line, err := r.ReadValue()
	assert.Equal("[1]", line)
	assert.True(err == nil || err == io.EOF)
}
