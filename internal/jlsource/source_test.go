package jlsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CharSource_ReadChar(t *testing.T) {
	assert := assert.New(t)

	src := New(strings.NewReader("ab"))

	c, err := src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('a'), c)

	c, err = src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('b'), c)

	c, err = src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte(eof), c)

	// EOF is sticky.
	c, err = src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte(eof), c)
}

func Test_CharSource_UnreadChar(t *testing.T) {
	assert := assert.New(t)

	src := New(strings.NewReader("xy"))

	c, err := src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('x'), c)

	src.UnreadChar(c)

	c, err = src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('x'), c)

	c, err = src.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('y'), c)
}
