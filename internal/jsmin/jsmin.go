// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package jsmin strips comments and insignificant whitespace from C-like
// source text. It follows Douglas Crockford's JSMin, which is close enough
// to shading-language lexing for the compiled programs it is fed. Comments
// are dropped and tokens that would fuse keep one space between them.
// Preprocessor lines are the exception and pass through unchanged.
package jsmin

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Errors returned for malformed input.
var (
	ErrUnterminatedComment = errors.New("jsmin: unterminated comment")
	ErrUnterminatedString  = errors.New("jsmin: unterminated string literal")
	ErrUnterminatedSet     = errors.New("jsmin: unterminated set in regular expression literal")
	ErrUnterminatedRegexp  = errors.New("jsmin: unterminated regular expression literal")
)

const eof = -1

type minifier struct {
	src       string
	pos       int
	out       strings.Builder
	a, b      int
	lookahead int
	x, y      int
}

// Minify returns src without comments and redundant whitespace.
// Preprocessor directives are copied verbatim, one per line.
func Minify(src string) (string, error) {
	var out, code strings.Builder
	flush := func() error {
		if code.Len() == 0 {
			return nil
		}
		s, err := minify(code.String())
		if err != nil {
			return err
		}
		out.WriteString(s)
		code.Reset()
		return nil
	}

	for _, line := range strings.SplitAfter(src, "\n") {
		directive := strings.TrimSpace(line)
		if !strings.HasPrefix(directive, "#") {
			code.WriteString(line)
			continue
		}
		if err := flush(); err != nil {
			return "", err
		}
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
			out.WriteByte('\n')
		}
		out.WriteString(directive)
		out.WriteByte('\n')
	}
	if err := flush(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func minify(src string) (string, error) {
	m := &minifier{src: src, lookahead: eof, x: eof, y: eof}
	if err := m.run(); err != nil {
		return "", err
	}
	return strings.Trim(m.out.String(), "\n"), nil
}

func isAlphanum(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') || c == '_' || c == '$' || c == '\\' || c > 126
}

// get returns the next byte with control characters folded to a space and
// carriage returns to line feeds.
func (m *minifier) get() int {
	c := m.lookahead
	m.lookahead = eof
	if c == eof {
		if m.pos >= len(m.src) {
			return eof
		}
		c = int(m.src[m.pos])
		m.pos++
	}
	if c >= ' ' || c == '\n' || c == eof {
		return c
	}
	if c == '\r' {
		return '\n'
	}
	return ' '
}

func (m *minifier) peek() int {
	m.lookahead = m.get()
	return m.lookahead
}

// next returns the next byte, replacing a comment with a line feed or a
// space.
func (m *minifier) next() (int, error) {
	c := m.get()
	if c == '/' {
		switch m.peek() {
		case '/':
			for {
				c = m.get()
				if c <= '\n' {
					break
				}
			}
		case '*':
			m.get()
			for c != ' ' {
				switch m.get() {
				case '*':
					if m.peek() == '/' {
						m.get()
						c = ' '
					}
				case eof:
					return 0, ErrUnterminatedComment
				}
			}
		}
	}
	m.y = m.x
	m.x = c
	return c, nil
}

func (m *minifier) put(c int) {
	m.out.WriteByte(byte(c))
}

func isOperator(c int) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

// action emits a and copies b to a (1), copies b to a (2), or only reads
// the next b (3).
func (m *minifier) action(d int) error {
	if d <= 1 {
		m.put(m.a)
		if (m.y == '\n' || m.y == ' ') && isOperator(m.a) && isOperator(m.b) {
			m.put(m.y)
		}
	}
	if d <= 2 {
		m.a = m.b
		if m.a == '\'' || m.a == '"' || m.a == '`' {
			for {
				m.put(m.a)
				m.a = m.get()
				if m.a == m.b {
					break
				}
				if m.a == '\\' {
					m.put(m.a)
					m.a = m.get()
				}
				if m.a == eof {
					return ErrUnterminatedString
				}
			}
		}
	}

	var err error
	if m.b, err = m.next(); err != nil {
		return err
	}
	if m.b != '/' || !strings.ContainsRune("(,=:[!&|?+-~*/{\n", rune(m.a)) {
		return nil
	}

	m.put(m.a)
	if m.a == '/' || m.a == '*' {
		m.put(' ')
	}
	m.put(m.b)
	for {
		m.a = m.get()
		if m.a == '[' {
			for {
				m.put(m.a)
				m.a = m.get()
				if m.a == ']' {
					break
				}
				if m.a == '\\' {
					m.put(m.a)
					m.a = m.get()
				}
				if m.a == eof {
					return ErrUnterminatedSet
				}
			}
		} else if m.a == '/' {
			if p := m.peek(); p == '/' || p == '*' {
				return ErrUnterminatedSet
			}
			break
		} else if m.a == '\\' {
			m.put(m.a)
			m.a = m.get()
		}
		if m.a == eof {
			return ErrUnterminatedRegexp
		}
		m.put(m.a)
	}
	m.b, err = m.next()
	return err
}

func (m *minifier) run() error {
	if strings.HasPrefix(m.src, "\xEF\xBB\xBF") {
		m.pos = 3
	}
	m.a = '\n'
	if err := m.action(3); err != nil {
		return err
	}
	for m.a != eof {
		var err error
		switch m.a {
		case ' ':
			err = m.action(m.keepIf(isAlphanum(m.b), 2))
		case '\n':
			switch m.b {
			case '{', '[', '(', '+', '-', '!', '~':
				err = m.action(1)
			case ' ':
				err = m.action(3)
			default:
				err = m.action(m.keepIf(isAlphanum(m.b), 2))
			}
		default:
			switch m.b {
			case ' ':
				err = m.action(m.keepIf(isAlphanum(m.a), 3))
			case '\n':
				switch m.a {
				case '}', ']', ')', '+', '-', '"', '\'', '`':
					err = m.action(1)
				default:
					err = m.action(m.keepIf(isAlphanum(m.a), 3))
				}
			default:
				err = m.action(1)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// keepIf returns 1 when cond holds and otherwise returns otherwise.
func (m *minifier) keepIf(cond bool, otherwise int) int {
	if cond {
		return 1
	}
	return otherwise
}
