// Copyright © 2026 The elmguard authors

// Package token defines the lexical tokens of the Elm subset elmguard
// parses, along with source locations and the scanner that produces them.
package token

import (
	"fmt"
	"unicode/utf8"
)

// Type identifies the kind of a token.
type Type uint

const (
	INVALID Type = iota
	ERROR
	EOF

	// Identifiers
	LOWER     // lower-case identifier (including keywords)
	UPPER     // capitalized identifier, single segment
	QUALIFIED // dotted identifier chain starting upper: Html.Attributes.value

	// Literals
	INT
	FLOAT
	STRING
	CHAR

	COMMENT

	// Operators and punctuation
	OPERATOR  // infix operator runs: |>, ++, ==, ...
	EQUALS    // =
	ARROW     // ->
	COLON     // :
	PIPE      // |
	BACKSLASH // \
	DOT       // . between an expression and a field name
	DOTDOT    // ..
	ACCESSOR  // .field used as a function

	// Delimiters
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE
	COMMA

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:   "invalid",
		ERROR:     "error",
		EOF:       "EOF",
		LOWER:     "identifier",
		UPPER:     "Identifier",
		QUALIFIED: "qualified-identifier",
		INT:       "int",
		FLOAT:     "float",
		STRING:    "string",
		CHAR:      "char",
		COMMENT:   "comment",
		OPERATOR:  "operator",
		EQUALS:    "=",
		ARROW:     "->",
		COLON:     ":",
		PIPE:      "|",
		BACKSLASH: `\`,
		DOT:       ".",
		DOTDOT:    "..",
		ACCESSOR:  "accessor",
		LPAREN:    "(",
		RPAREN:    ")",
		LBRACK:    "[",
		RBRACK:    "]",
		LBRACE:    "{",
		RBRACE:    "}",
		COMMA:     ",",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Token is a single lexical token with its start location.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// IsKeyword reports whether the token is the given reserved word.
func (t *Token) IsKeyword(word string) bool {
	return t.Type == LOWER && t.Text == word
}

// EndCol returns the exclusive end column of a token that does not span
// lines. Columns count runes, matching editor behavior.
func (t *Token) EndCol() int {
	return t.Source.Col + utf8.RuneCountInString(t.Text)
}

// Location identifies a point in a source stream.
type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset
	Line int    // line number, starting at 1
	Col  int    // column number in runes, starting at 1
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return loc.File
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError attaches a source location to an error.
type LocationError struct {
	Err    error
	Source *Location
}

func (e *LocationError) Error() string {
	if e.Source == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// Errorf builds a LocationError at loc.
func Errorf(loc *Location, format string, args ...interface{}) error {
	return &LocationError{Err: fmt.Errorf(format, args...), Source: loc}
}
