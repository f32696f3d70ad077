// Copyright © 2026 The elmguard authors

package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Scanner produces tokens from Elm source text. It scans the whole input
// rune by rune, tracking 1-based line and column positions so every token
// carries an exact start location.
type Scanner struct {
	file string
	src  []byte

	pos  int // byte offset of the next unread rune
	line int
	col  int

	// previous significant token, used to tell field access (`x.y`) apart
	// from accessor functions (`.y`)
	prevType Type
	prevEnd  int
}

// NewScanner initializes a Scanner over src.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file: file,
		src:  src,
		line: 1,
		col:  1,
	}
}

func (s *Scanner) loc() *Location {
	return &Location{File: s.file, Pos: s.pos, Line: s.line, Col: s.col}
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.src)
}

// peek returns the next rune without consuming it.
func (s *Scanner) peek() rune {
	if s.eof() {
		return 0
	}
	c, _ := utf8.DecodeRune(s.src[s.pos:])
	return c
}

// peekAt returns the rune n bytes ahead of the next unread rune. It is only
// used to look past single-byte runes, which is all the grammar needs.
func (s *Scanner) peekAt(n int) rune {
	if s.pos+n >= len(s.src) {
		return 0
	}
	c, _ := utf8.DecodeRune(s.src[s.pos+n:])
	return c
}

// advance consumes one rune and returns it.
func (s *Scanner) advance() rune {
	c, size := utf8.DecodeRune(s.src[s.pos:])
	s.pos += size
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *Scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

// Next scans and returns the next token. At the end of input it returns an
// EOF token; it never returns nil.
func (s *Scanner) Next() *Token {
	s.skipSpace()
	start := s.loc()
	if s.eof() {
		return s.emit(start, EOF, "")
	}

	c := s.peek()
	switch {
	case c == '-' && s.peekAt(1) == '-':
		return s.scanLineComment(start)
	case c == '{' && s.peekAt(1) == '-':
		return s.scanBlockComment(start)
	case isLowerStart(c):
		return s.scanLowerIdent(start)
	case unicode.IsUpper(c):
		return s.scanUpperIdent(start)
	case unicode.IsDigit(c):
		return s.scanNumber(start)
	case c == '"':
		return s.scanString(start)
	case c == '\'':
		return s.scanChar(start)
	case c == '.':
		return s.scanDot(start)
	case c == '\\':
		s.advance()
		return s.emit(start, BACKSLASH, `\`)
	case c == '(':
		s.advance()
		return s.emit(start, LPAREN, "(")
	case c == ')':
		s.advance()
		return s.emit(start, RPAREN, ")")
	case c == '[':
		s.advance()
		return s.emit(start, LBRACK, "[")
	case c == ']':
		s.advance()
		return s.emit(start, RBRACK, "]")
	case c == '{':
		s.advance()
		return s.emit(start, LBRACE, "{")
	case c == '}':
		s.advance()
		return s.emit(start, RBRACE, "}")
	case c == ',':
		s.advance()
		return s.emit(start, COMMA, ",")
	case isOperatorRune(c):
		return s.scanOperator(start)
	}
	s.advance()
	return s.emit(start, ERROR, fmt.Sprintf("unexpected character %q", c))
}

func (s *Scanner) emit(start *Location, typ Type, text string) *Token {
	s.prevType = typ
	s.prevEnd = s.pos
	return &Token{Type: typ, Text: text, Source: start}
}

func (s *Scanner) text(from int) string {
	return string(s.src[from:s.pos])
}

func (s *Scanner) scanLineComment(start *Location) *Token {
	from := s.pos
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
	return s.emit(start, COMMENT, s.text(from))
}

func (s *Scanner) scanBlockComment(start *Location) *Token {
	from := s.pos
	s.advance() // {
	s.advance() // -
	depth := 1
	for !s.eof() && depth > 0 {
		c := s.peek()
		switch {
		case c == '{' && s.peekAt(1) == '-':
			s.advance()
			s.advance()
			depth++
		case c == '-' && s.peekAt(1) == '}':
			s.advance()
			s.advance()
			depth--
		default:
			s.advance()
		}
	}
	return s.emit(start, COMMENT, s.text(from))
}

func (s *Scanner) scanLowerIdent(start *Location) *Token {
	from := s.pos
	for !s.eof() && isIdentRune(s.peek()) {
		s.advance()
	}
	return s.emit(start, LOWER, s.text(from))
}

// scanUpperIdent scans a capitalized identifier and any immediately
// following dotted segments: `Html`, `Html.Attributes`, `Html.input`. The
// chain stops after the first lower-case segment, so `String.fromInt` is a
// single QUALIFIED token while the `.y` in `Just x.y` is not consumed here.
func (s *Scanner) scanUpperIdent(start *Location) *Token {
	from := s.pos
	dotted := false
	for {
		for !s.eof() && isIdentRune(s.peek()) {
			s.advance()
		}
		if s.peek() != '.' || !unicode.IsLetter(s.peekAt(1)) {
			break
		}
		lower := isLowerStart(s.peekAt(1))
		s.advance() // .
		dotted = true
		if lower {
			for !s.eof() && isIdentRune(s.peek()) {
				s.advance()
			}
			break
		}
	}
	typ := UPPER
	if dotted {
		typ = QUALIFIED
	}
	return s.emit(start, typ, s.text(from))
}

func (s *Scanner) scanNumber(start *Location) *Token {
	from := s.pos
	if s.peek() == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'X') {
		s.advance()
		s.advance()
		for !s.eof() && isHexRune(s.peek()) {
			s.advance()
		}
		return s.emit(start, INT, s.text(from))
	}
	for !s.eof() && unicode.IsDigit(s.peek()) {
		s.advance()
	}
	typ := INT
	if s.peek() == '.' && unicode.IsDigit(s.peekAt(1)) {
		typ = FLOAT
		s.advance()
		for !s.eof() && unicode.IsDigit(s.peek()) {
			s.advance()
		}
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		typ = FLOAT
		s.advance()
		if c := s.peek(); c == '+' || c == '-' {
			s.advance()
		}
		for !s.eof() && unicode.IsDigit(s.peek()) {
			s.advance()
		}
	}
	return s.emit(start, typ, s.text(from))
}

func (s *Scanner) scanString(start *Location) *Token {
	from := s.pos
	if s.peekAt(1) == '"' && s.peekAt(2) == '"' {
		s.advance()
		s.advance()
		s.advance()
		for !s.eof() {
			if s.peek() == '"' && s.peekAt(1) == '"' && s.peekAt(2) == '"' {
				s.advance()
				s.advance()
				s.advance()
				break
			}
			if s.peek() == '\\' {
				s.advance()
			}
			if !s.eof() {
				s.advance()
			}
		}
		return s.emit(start, STRING, s.text(from))
	}
	s.advance() // opening quote
	for !s.eof() && s.peek() != '"' && s.peek() != '\n' {
		if s.peek() == '\\' {
			s.advance()
		}
		if !s.eof() {
			s.advance()
		}
	}
	if s.peek() == '"' {
		s.advance()
	}
	return s.emit(start, STRING, s.text(from))
}

func (s *Scanner) scanChar(start *Location) *Token {
	from := s.pos
	s.advance() // opening quote
	for !s.eof() && s.peek() != '\'' && s.peek() != '\n' {
		if s.peek() == '\\' {
			s.advance()
		}
		if !s.eof() {
			s.advance()
		}
	}
	if s.peek() == '\'' {
		s.advance()
	}
	return s.emit(start, CHAR, s.text(from))
}

// scanDot disambiguates the three roles of `.` outside a qualified chain:
// `..` in an exposing clause, field access directly after a value, and a
// standalone accessor function.
func (s *Scanner) scanDot(start *Location) *Token {
	if s.peekAt(1) == '.' {
		s.advance()
		s.advance()
		return s.emit(start, DOTDOT, "..")
	}
	adjacent := s.prevEnd == s.pos &&
		(s.prevType == LOWER || s.prevType == RPAREN || s.prevType == RBRACK ||
			s.prevType == RBRACE || s.prevType == UPPER || s.prevType == QUALIFIED)
	if adjacent {
		s.advance()
		return s.emit(start, DOT, ".")
	}
	if isLowerStart(s.peekAt(1)) {
		from := s.pos
		s.advance() // .
		for !s.eof() && isIdentRune(s.peek()) {
			s.advance()
		}
		return s.emit(start, ACCESSOR, s.text(from))
	}
	s.advance()
	return s.emit(start, DOT, ".")
}

func (s *Scanner) scanOperator(start *Location) *Token {
	from := s.pos
	for !s.eof() && isOperatorRune(s.peek()) {
		s.advance()
	}
	text := s.text(from)
	switch text {
	case "=":
		return s.emit(start, EQUALS, text)
	case "->":
		return s.emit(start, ARROW, text)
	case ":":
		return s.emit(start, COLON, text)
	case "|":
		return s.emit(start, PIPE, text)
	}
	return s.emit(start, OPERATOR, text)
}

func isLowerStart(c rune) bool {
	return unicode.IsLower(c) || c == '_'
}

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '\''
}

func isHexRune(c rune) bool {
	return unicode.IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOperatorRune(c rune) bool {
	switch c {
	case '+', '-', '*', '/', '=', '<', '>', '|', '&', '^', '%', '!', ':', '~', '?':
		return true
	}
	return false
}
