// Package jlsource provides CharSource, a byte-level pull reader with a
// single-byte pushback and an end-of-stream sentinel, as required by the
// document lexer's one-token lookahead and the number lexer's one-byte
// lookahead past the current character.
package jlsource

import (
	"bufio"
	"io"

	"github.com/ajbruin/jl/internal/jlerrors"
)

// eof is the sentinel byte returned by ReadChar at end of stream. The
// document grammar never permits a literal NUL byte, so collapsing "no byte
// available" and "byte 0x00" into this single value is safe within that
// grammar.
const eof = 0x00

// CharSource is a buffered byte reader over a single io.Reader at a time,
// offering exactly one byte of pushback.
type CharSource struct {
	r *bufio.Reader
}

// New wraps r in a CharSource.
func New(r io.Reader) *CharSource {
	return &CharSource{r: bufio.NewReader(r)}
}

// ReadChar returns the next byte of the stream, or the EOF sentinel (0x00)
// if the stream is exhausted. A genuine read failure is returned as a
// jlerrors.Io error.
func (c *CharSource) ReadChar() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return eof, nil
		}
		return eof, jlerrors.Wrap(jlerrors.Io, err, "read")
	}
	return b, nil
}

// UnreadChar pushes b back so that the next call to ReadChar returns it
// again. Only one byte of pushback is ever held at a time; callers never
// need more because the only site requiring lookahead past the current byte
// (the number state machine) always pushes back exactly one byte before
// reading the next token.
func (c *CharSource) UnreadChar(b byte) {
	// bufio.Reader.UnreadByte only un-reads the single most recently read
	// byte, which is exactly the contract CharSource promises; every caller
	// in this package only ever unreads the byte it just read.
	_ = c.r.UnreadByte()
}
