// Package jlrepl provides an interactive, line-at-a-time source of
// top-level document values for jl's -i flag: a readline prompt when
// talking to a real terminal, and a plain buffered line reader when stdin
// has been redirected from a pipe or file.
package jlrepl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one top-level value's worth of text at a time.
type Reader interface {
	// ReadValue returns the next line of input with leading/trailing space
	// trimmed. At end of input it returns "", io.EOF.
	ReadValue() (string, error)
	Close() error
}

// directReader reads lines directly from a buffered reader, with no
// editing or history support. Used when stdin isn't a TTY.
type directReader struct {
	r *bufio.Reader
}

// NewDirect wraps r for direct, unedited line reading.
func NewDirect(r io.Reader) Reader {
	return &directReader{r: bufio.NewReader(r)}
}

func (d *directReader) ReadValue() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (d *directReader) Close() error { return nil }

// interactiveReader reads lines from a chzyer/readline prompt, with
// history and line editing.
type interactiveReader struct {
	rl *readline.Instance
}

// NewInteractive starts a readline prompt reading from the controlling
// terminal.
func NewInteractive(prompt string) (Reader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("start readline: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
}

func (i *interactiveReader) ReadValue() (string, error) {
	line, err := i.rl.Readline()
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (i *interactiveReader) Close() error { return i.rl.Close() }
