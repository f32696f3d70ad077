// Copyright © 2026 The elmguard authors

// Package elm defines the syntax tree for the subset of Elm that elmguard
// analyzes. The tree is deliberately small: it models module headers, import
// declarations, and enough of the expression grammar to find every value
// reference with an exact source span. Type declarations, annotations, and
// pattern structure are not represented beyond what the parser needs to skip
// them.
package elm

import "strings"

// Pos is a source position. Line and Col are 1-based.
type Pos struct {
	Line int `json:"row"`
	Col  int `json:"column"`
}

// Span is a source range. Start is inclusive and End is exclusive on the
// column axis, so a token of n runes starting at column c spans [c, c+n).
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// ModuleName is a dotted module path split into its segments.
type ModuleName []string

// String returns the dot-joined form of the module name.
func (n ModuleName) String() string {
	return strings.Join(n, ".")
}

// Equal reports whether two module names have identical segments.
func (n ModuleName) Equal(other ModuleName) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// Module is one parsed source file.
type Module struct {
	// Name is the declared module name. Files without a module header are
	// named Main, mirroring the compiler's treatment of headerless files.
	Name     ModuleName
	NameSpan Span

	Imports []*Import
	Decls   []*Decl

	// Comments holds every comment in the file in source order. The lint
	// layer reads these for suppression directives.
	Comments []Comment
}

// Import is a single import declaration.
type Import struct {
	Module   ModuleName
	Alias    ModuleName // nil when the import is not aliased
	Exposing *Exposing  // nil when the import has no exposing clause
	Span     Span
}

// Qualifier returns the dotted prefix under which the imported module's
// names are written in qualified references: the alias when one was
// declared, the module name itself otherwise.
func (im *Import) Qualifier() string {
	if len(im.Alias) > 0 {
		return im.Alias.String()
	}
	return im.Module.String()
}

// Exposing is an import's exposing clause.
type Exposing struct {
	// All is true for `exposing (..)`.
	All bool

	// Values lists the plain value names the clause exposes. Exposed types,
	// constructors, and operators are not recorded; they can never collide
	// with a dotted function name.
	Values []string

	Span Span
}

// Exposes reports whether the clause makes name available unqualified.
func (e *Exposing) Exposes(name string) bool {
	if e.All {
		return true
	}
	for _, v := range e.Values {
		if v == name {
			return true
		}
	}
	return false
}

// Comment is a line or block comment.
type Comment struct {
	// Text is the comment body without its `--` or `{- -}` delimiters.
	Text string
	Span Span
}

// Decl is a top-level value or function declaration.
type Decl struct {
	// Name is empty for pattern declarations like `( a, b ) = ...`.
	Name   string
	Params []string
	Body   Expr
	Span   Span
}

// Expr is a node in the expression tree. The only variant the rule layer
// inspects is VarRef; every other variant exists so traversal reaches the
// references nested inside it.
type Expr interface {
	// Span returns the source range covered by the expression.
	Span() Span
	exprNode()
}

// VarRef is a reference to a value by name, with an optional dotted module
// prefix: `input`, `Html.input`, `Ui.Button.view`.
type VarRef struct {
	ModulePath ModuleName // empty for a bare reference
	Name       string
	Src        Span // covers the full dotted token
}

// Apply is function application by juxtaposition: `f x y`.
type Apply struct {
	Fn   Expr
	Args []Expr
	Src  Span
}

// BinOp is an infix operator application: `a |> b`, `x + y`.
type BinOp struct {
	Op          string
	Left, Right Expr
	Src         Span
}

// Negate is unary minus: `-x`.
type Negate struct {
	Operand Expr
	Src     Span
}

// Lambda is an anonymous function: `\x y -> body`.
type Lambda struct {
	Params []string
	Body   Expr
	Src    Span
}

// Let is a let/in expression.
type Let struct {
	Bindings []*LetBinding
	Body     Expr
	Src      Span
}

// LetBinding is one binding inside a let block. Pattern bindings have an
// empty Name.
type LetBinding struct {
	Name   string
	Params []string
	Body   Expr
	Src    Span
}

// If is an if/then/else expression.
type If struct {
	Cond, Then, Else Expr
	Src              Span
}

// Case is a case/of expression.
type Case struct {
	Subject  Expr
	Branches []*CaseBranch
	Src      Span
}

// CaseBranch is one `pattern -> body` branch. The pattern is kept as raw
// text; the rule layer never resolves names bound by patterns.
type CaseBranch struct {
	Pattern string
	Body    Expr
	Src     Span
}

// List is a list literal: `[ a, b ]`.
type List struct {
	Elems []Expr
	Src   Span
}

// Tuple is a tuple literal: `( a, b )`.
type Tuple struct {
	Elems []Expr
	Src   Span
}

// Record is a record literal: `{ name = e }`.
type Record struct {
	Fields []*Field
	Src    Span
}

// RecordUpdate is a record update: `{ base | name = e }`. The base is a
// plain identifier in Elm's grammar, not a general expression.
type RecordUpdate struct {
	Base   string
	Fields []*Field
	Src    Span
}

// Field is one `name = value` pair in a record literal or update.
type Field struct {
	Name  string
	Value Expr
}

// Access is record field access on an expression: `model.name`.
type Access struct {
	Target    Expr
	FieldName string
	Src       Span
}

// Accessor is a field accessor function: `.name`.
type Accessor struct {
	FieldName string
	Src       Span
}

// OperatorRef is an operator used as a value: `(+)`.
type OperatorRef struct {
	Op  string
	Src Span
}

// LitKind classifies a Literal.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
)

// Literal is a number, string, or character literal.
type Literal struct {
	Kind LitKind
	Text string
	Src  Span
}

// Unit is the unit value `()`.
type Unit struct {
	Src Span
}

func (e *VarRef) Span() Span       { return e.Src }
func (e *Apply) Span() Span        { return e.Src }
func (e *BinOp) Span() Span        { return e.Src }
func (e *Negate) Span() Span       { return e.Src }
func (e *Lambda) Span() Span       { return e.Src }
func (e *Let) Span() Span          { return e.Src }
func (e *If) Span() Span           { return e.Src }
func (e *Case) Span() Span         { return e.Src }
func (e *List) Span() Span         { return e.Src }
func (e *Tuple) Span() Span        { return e.Src }
func (e *Record) Span() Span       { return e.Src }
func (e *RecordUpdate) Span() Span { return e.Src }
func (e *Access) Span() Span       { return e.Src }
func (e *Accessor) Span() Span     { return e.Src }
func (e *OperatorRef) Span() Span  { return e.Src }
func (e *Literal) Span() Span      { return e.Src }
func (e *Unit) Span() Span         { return e.Src }

func (*VarRef) exprNode()       {}
func (*Apply) exprNode()        {}
func (*BinOp) exprNode()        {}
func (*Negate) exprNode()       {}
func (*Lambda) exprNode()       {}
func (*Let) exprNode()          {}
func (*If) exprNode()           {}
func (*Case) exprNode()         {}
func (*List) exprNode()         {}
func (*Tuple) exprNode()        {}
func (*Record) exprNode()       {}
func (*RecordUpdate) exprNode() {}
func (*Access) exprNode()       {}
func (*Accessor) exprNode()     {}
func (*OperatorRef) exprNode()  {}
func (*Literal) exprNode()      {}
func (*Unit) exprNode()         {}
