// Package jlexer implements the document lexer: it turns a byte stream from
// a jlsource.CharSource into a lazy sequence of jltoken.Token values, with
// one-token lookahead (Peek) for the runtime to consult before deciding how
// to interpret the next value.
package jlexer

import (
	"strings"

	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/jlsource"
	"github.com/ajbruin/jl/internal/jltoken"
)

const eof = 0x00

// Lexer reads jltoken.Tokens from a CharSource.
//
// The lexeme buffer is reset (not overwritten in place) at the start of each
// string or number, so the Text of a Token already returned by Next or Peek
// is not changed by later calls.
type Lexer struct {
	src  *jlsource.CharSource
	peek *jltoken.Token
	buf  strings.Builder
}

// New creates a Lexer reading from src.
func New(src *jlsource.CharSource) *Lexer {
	return &Lexer{src: src}
}

// Peek returns the next token without consuming it. A second call to Peek
// without an intervening Next returns the same token.
func (lx *Lexer) Peek() (jltoken.Token, error) {
	if lx.peek == nil {
		t, err := lx.readToken()
		if err != nil {
			return jltoken.Token{}, err
		}
		lx.peek = &t
	}
	return *lx.peek, nil
}

// Next consumes and returns the next token, first draining any cached Peek
// result.
func (lx *Lexer) Next() (jltoken.Token, error) {
	if lx.peek != nil {
		t := *lx.peek
		lx.peek = nil
		return t, nil
	}
	return lx.readToken()
}

func (lx *Lexer) readChar() (byte, error) {
	return lx.src.ReadChar()
}

func (lx *Lexer) unread(c byte) {
	lx.src.UnreadChar(c)
}

func (lx *Lexer) readToken() (jltoken.Token, error) {
	var c byte
	var err error

	// skip whitespace
	for {
		c, err = lx.readChar()
		if err != nil {
			return jltoken.Token{}, err
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
	}

	switch {
	case c == eof:
		return jltoken.Token{Kind: jltoken.Eof}, nil
	case c == '{':
		return jltoken.Token{Kind: jltoken.BeginObject, Text: "{"}, nil
	case c == '}':
		return jltoken.Token{Kind: jltoken.EndObject, Text: "}"}, nil
	case c == ':':
		return jltoken.Token{Kind: jltoken.PairSep, Text: ":"}, nil
	case c == ',':
		return jltoken.Token{Kind: jltoken.MemberSep, Text: ","}, nil
	case c == '[':
		return jltoken.Token{Kind: jltoken.BeginArray, Text: "["}, nil
	case c == ']':
		return jltoken.Token{Kind: jltoken.EndArray, Text: "]"}, nil
	case c == 't':
		if err := lx.matchLiteral("rue"); err != nil {
			return jltoken.Token{}, err
		}
		return jltoken.Token{Kind: jltoken.Bool, Text: "true"}, nil
	case c == 'f':
		if err := lx.matchLiteral("alse"); err != nil {
			return jltoken.Token{}, err
		}
		return jltoken.Token{Kind: jltoken.Bool, Text: "false"}, nil
	case c == 'n':
		if err := lx.matchLiteral("ull"); err != nil {
			return jltoken.Token{}, err
		}
		return jltoken.Token{Kind: jltoken.Null, Text: "null"}, nil
	case c == '"':
		text, err := lx.readString()
		if err != nil {
			return jltoken.Token{}, err
		}
		return jltoken.Token{Kind: jltoken.String, Text: text}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		text, err := lx.readNumber(c)
		if err != nil {
			return jltoken.Token{}, err
		}
		return jltoken.Token{Kind: jltoken.Number, Text: text}, nil
	default:
		return jltoken.Token{}, jlerrors.New(jlerrors.Lex, "unexpected character: %c", c)
	}
}

func (lx *Lexer) matchLiteral(rest string) error {
	for i := 0; i < len(rest); i++ {
		c, err := lx.readChar()
		if err != nil {
			return err
		}
		if c != rest[i] {
			return jlerrors.New(jlerrors.Lex, "error matching literal")
		}
	}
	return nil
}

func (lx *Lexer) readString() (string, error) {
	lx.buf.Reset()
	for {
		c, err := lx.readChar()
		if err != nil {
			return "", err
		}
		switch {
		case c == eof:
			return "", jlerrors.New(jlerrors.Lex, "non-terminated string: %s", lx.buf.String())
		case c == '"':
			return lx.buf.String(), nil
		case c == '\\':
			lx.buf.WriteByte('\\')
			if err := lx.readEscape(); err != nil {
				return "", err
			}
		case c <= 0x1f:
			return "", jlerrors.New(jlerrors.Lex, "control character in string")
		default:
			lx.buf.WriteByte(c)
		}
	}
}

func (lx *Lexer) readEscape() error {
	c, err := lx.readChar()
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		lx.buf.WriteByte(c)
		return nil
	case 'u':
		lx.buf.WriteByte('u')
		for i := 0; i < 4; i++ {
			hc, err := lx.readChar()
			if err != nil {
				return err
			}
			if !isHexDigit(hc) {
				return jlerrors.New(jlerrors.Lex, "not a hex character: %c", hc)
			}
			lx.buf.WriteByte(hc)
		}
		return nil
	default:
		return jlerrors.New(jlerrors.Lex, "invalid escape character: %c", c)
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// readNumber implements the number state machine of the document grammar.
// c is the first character already consumed ('-' or a digit).
func (lx *Lexer) readNumber(c byte) (string, error) {
	lx.buf.Reset()
	lx.buf.WriteByte(c)

	if c == '-' {
		nc, err := lx.readChar()
		if err != nil {
			return "", err
		}
		if !isDigit(nc) {
			return "", jlerrors.New(jlerrors.Lex, "no digit following minus sign")
		}
		lx.buf.WriteByte(nc)
		c = nc
	}

	if c == '0' {
		return lx.afterZero()
	}
	return lx.afterOneToNine()
}

func (lx *Lexer) afterZero() (string, error) {
	c, err := lx.readChar()
	if err != nil {
		return "", err
	}
	switch {
	case c == '.':
		lx.buf.WriteByte('.')
		return lx.afterFrac()
	case c == 'e' || c == 'E':
		lx.buf.WriteByte(c)
		return lx.afterExp()
	case c != eof:
		lx.unread(c)
	}
	return lx.buf.String(), nil
}

func (lx *Lexer) afterOneToNine() (string, error) {
	for {
		c, err := lx.readChar()
		if err != nil {
			return "", err
		}
		switch {
		case c == eof:
			return lx.buf.String(), nil
		case c == '.':
			lx.buf.WriteByte('.')
			return lx.afterFrac()
		case isDigit(c):
			lx.buf.WriteByte(c)
		case c == 'e' || c == 'E':
			lx.buf.WriteByte(c)
			return lx.afterExp()
		default:
			lx.unread(c)
			return lx.buf.String(), nil
		}
	}
}

func (lx *Lexer) afterFrac() (string, error) {
	n, err := lx.appendDigits()
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", jlerrors.New(jlerrors.Lex, "no digits after fraction")
	}

	c, err := lx.readChar()
	if err != nil {
		return "", err
	}
	switch {
	case c == eof:
		// end of stream after at least one fractional digit is a valid
		// termination.
	case c == 'e' || c == 'E':
		lx.buf.WriteByte(c)
		return lx.afterExp()
	default:
		lx.unread(c)
	}
	return lx.buf.String(), nil
}

func (lx *Lexer) afterExp() (string, error) {
	c, err := lx.readChar()
	if err != nil {
		return "", err
	}
	switch {
	case c == eof:
		// end of stream immediately after 'e'/'E' (before a sign or digit)
		// is never a valid number termination.
		return "", jlerrors.New(jlerrors.Lex, "no exponent digits")
	case c == '+' || c == '-':
		lx.buf.WriteByte(c)
		n, err := lx.appendDigits()
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", jlerrors.New(jlerrors.Lex, "no exponent digits")
		}
	case isDigit(c):
		lx.buf.WriteByte(c)
		if _, err := lx.appendDigits(); err != nil {
			return "", err
		}
	default:
		return "", jlerrors.New(jlerrors.Lex, "no exponent digits")
	}
	return lx.buf.String(), nil
}

// appendDigits consumes and appends as many consecutive digits as are
// present, pushing back the first non-digit (unless it is EOF), and returns
// the number of digits consumed.
func (lx *Lexer) appendDigits() (int, error) {
	n := 0
	for {
		c, err := lx.readChar()
		if err != nil {
			return n, err
		}
		switch {
		case c == eof:
			return n, nil
		case isDigit(c):
			lx.buf.WriteByte(c)
			n++
		default:
			lx.unread(c)
			return n, nil
		}
	}
}
