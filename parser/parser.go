// Copyright © 2026 The elmguard authors

// Package parser turns Elm source text into the elm package's syntax tree.
//
// The grammar covered is the subset a reference-level analysis needs: module
// headers, import declarations, and value declarations with a full
// expression grammar. Type declarations and annotations are recognized and
// skipped. Layout is handled with the offside rule: every expression context
// carries a minimum column, and a token that starts a line at or left of
// that column ends the context.
//
// The parser is tolerant by design. A linter that gives up on the first
// unusual construct reports nothing useful, so unrecognized tokens are
// skipped and partial declarations are kept.
package parser

import (
	"io"
	"strings"

	"github.com/henriquecbuss/elmguard/elm"
	"github.com/henriquecbuss/elmguard/parser/token"
)

// ParseModule reads Elm source from r and parses it into a module tree.
// filename is used in source locations only.
func ParseModule(filename string, r io.Reader) (*elm.Module, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseModuleBytes(filename, src)
}

// ParseModuleBytes parses Elm source held in memory.
func ParseModuleBytes(filename string, src []byte) (*elm.Module, error) {
	toks, comments, err := scanAll(filename, src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	mod := p.parseModule()
	mod.Comments = comments
	return mod, nil
}

// scanAll tokenizes the whole input, splitting comments into a side channel
// so the parser only sees significant tokens. The returned slice always ends
// with an EOF token.
func scanAll(filename string, src []byte) ([]*token.Token, []elm.Comment, error) {
	s := token.NewScanner(filename, src)
	var toks []*token.Token
	var comments []elm.Comment
	for {
		t := s.Next()
		switch t.Type {
		case token.COMMENT:
			comments = append(comments, elm.Comment{
				Text: commentBody(t.Text),
				Span: tokenSpan(t),
			})
		case token.ERROR:
			return nil, nil, token.Errorf(t.Source, "%s", t.Text)
		case token.EOF:
			toks = append(toks, t)
			return toks, comments, nil
		default:
			toks = append(toks, t)
		}
	}
}

// commentBody strips the comment delimiters.
func commentBody(text string) string {
	if strings.HasPrefix(text, "--") {
		return strings.TrimSpace(strings.TrimLeft(text, "-"))
	}
	text = strings.TrimPrefix(text, "{-")
	text = strings.TrimSuffix(text, "-}")
	return strings.TrimSpace(text)
}

func tokenSpan(t *token.Token) elm.Span {
	return elm.Span{
		Start: elm.Pos{Line: t.Source.Line, Col: t.Source.Col},
		End:   elm.Pos{Line: t.Source.Line, Col: t.EndCol()},
	}
}

func spanUnion(a, b elm.Span) elm.Span {
	return elm.Span{Start: a.Start, End: b.End}
}

func splitName(text string) elm.ModuleName {
	return elm.ModuleName(strings.Split(text, "."))
}

type parser struct {
	toks []*token.Token
	i    int
}

func (p *parser) cur() *token.Token {
	return p.toks[p.i]
}

func (p *parser) peek() *token.Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

// prev returns the last consumed token.
func (p *parser) prev() *token.Token {
	if p.i == 0 {
		return p.toks[0]
	}
	return p.toks[p.i-1]
}

func (p *parser) advance() *token.Token {
	t := p.toks[p.i]
	if t.Type != token.EOF {
		p.i++
	}
	return t
}

func (p *parser) atEOF() bool {
	return p.cur().Type == token.EOF
}

// freshLine reports whether the current token is the first on its line.
func (p *parser) freshLine() bool {
	if p.i == 0 {
		return true
	}
	return p.toks[p.i-1].Source.Line < p.cur().Source.Line
}

// atTopLevel reports whether the current token starts a new top-level form.
func (p *parser) atTopLevel() bool {
	return p.freshLine() && p.cur().Source.Col == 1
}

// spanFrom covers everything from start through the last consumed token.
func (p *parser) spanFrom(start *token.Token) elm.Span {
	return spanUnion(tokenSpan(start), tokenSpan(p.prev()))
}

var keywords = map[string]bool{
	"module": true, "import": true, "exposing": true, "as": true,
	"port": true, "type": true, "alias": true, "infix": true,
	"let": true, "in": true, "if": true, "then": true, "else": true,
	"case": true, "of": true, "where": true,
}

func isKeyword(t *token.Token) bool {
	return t.Type == token.LOWER && keywords[t.Text]
}

func (p *parser) parseModule() *elm.Module {
	mod := &elm.Module{}
	p.parseHeader(mod)
	for p.cur().IsKeyword("import") {
		mod.Imports = append(mod.Imports, p.parseImport())
	}
	p.parseDecls(mod)
	return mod
}

func (p *parser) parseHeader(mod *elm.Module) {
	if p.cur().IsKeyword("port") || p.cur().IsKeyword("effect") {
		if p.peek().IsKeyword("module") {
			p.advance()
		}
	}
	if !p.cur().IsKeyword("module") {
		// Headerless file. The compiler names these Main.
		mod.Name = elm.ModuleName{"Main"}
		return
	}
	p.advance()
	name := p.cur()
	if name.Type == token.UPPER || name.Type == token.QUALIFIED {
		mod.Name = splitName(name.Text)
		mod.NameSpan = tokenSpan(name)
		p.advance()
	} else {
		mod.Name = elm.ModuleName{"Main"}
	}
	// `where { command = MyCmd }` appears in effect modules.
	if p.cur().IsKeyword("where") {
		p.advance()
		p.skipBalanced(token.LBRACE, token.RBRACE)
	}
	if p.cur().IsKeyword("exposing") {
		// The header's exposing clause lists this module's exports, which
		// play no part in reference resolution. Skip it.
		p.advance()
		p.skipBalanced(token.LPAREN, token.RPAREN)
	}
}

// skipBalanced consumes an open..close token pair with nesting, or nothing
// if the current token is not open.
func (p *parser) skipBalanced(open, close token.Type) {
	if p.cur().Type != open {
		return
	}
	depth := 0
	for !p.atEOF() {
		switch p.cur().Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *parser) parseImport() *elm.Import {
	start := p.advance() // import
	imp := &elm.Import{}
	if t := p.cur(); t.Type == token.UPPER || t.Type == token.QUALIFIED {
		imp.Module = splitName(t.Text)
		p.advance()
	}
	if p.cur().IsKeyword("as") {
		p.advance()
		if t := p.cur(); t.Type == token.UPPER || t.Type == token.QUALIFIED {
			imp.Alias = splitName(t.Text)
			p.advance()
		}
	}
	if p.cur().IsKeyword("exposing") {
		p.advance()
		imp.Exposing = p.parseExposing()
	}
	imp.Span = p.spanFrom(start)
	return imp
}

func (p *parser) parseExposing() *elm.Exposing {
	e := &elm.Exposing{}
	start := p.cur()
	if start.Type != token.LPAREN {
		return e
	}
	p.advance()
	for !p.atEOF() && p.cur().Type != token.RPAREN {
		switch p.cur().Type {
		case token.DOTDOT:
			e.All = true
			p.advance()
		case token.LOWER:
			e.Values = append(e.Values, p.cur().Text)
			p.advance()
		case token.UPPER, token.QUALIFIED:
			// Exposed type, optionally with constructors: Type or Type(..).
			// Neither can be referenced under a dotted function name.
			p.advance()
			p.skipBalanced(token.LPAREN, token.RPAREN)
		case token.LPAREN:
			// Exposed operator: (</>)
			p.skipBalanced(token.LPAREN, token.RPAREN)
		case token.COMMA:
			p.advance()
		default:
			p.advance()
		}
	}
	if p.cur().Type == token.RPAREN {
		p.advance()
	}
	e.Span = p.spanFrom(start)
	return e
}

func (p *parser) parseDecls(mod *elm.Module) {
	for !p.atEOF() {
		if !p.atTopLevel() {
			p.advance()
			continue
		}
		t := p.cur()
		switch {
		case t.IsKeyword("import"):
			// Imports after the first declaration are invalid Elm, but a
			// tolerant parse keeps them so the resolver sees every import.
			mod.Imports = append(mod.Imports, p.parseImport())
		case t.IsKeyword("type"), t.IsKeyword("infix"):
			p.skipToNextTopLevel()
		case t.IsKeyword("port"):
			p.skipToNextTopLevel()
		case t.Type == token.LOWER && !isKeyword(t):
			if p.annotationAhead() {
				p.skipToNextTopLevel()
			} else {
				mod.Decls = append(mod.Decls, p.parseDecl())
			}
		case t.Type == token.LPAREN || t.Type == token.LBRACE:
			// Top-level pattern declaration: ( a, b ) = ...
			mod.Decls = append(mod.Decls, p.parseDecl())
		default:
			p.skipToNextTopLevel()
		}
	}
}

// annotationAhead reports whether the current top-level form is a type
// annotation (`name : Type`) rather than a definition (`name args = expr`).
func (p *parser) annotationAhead() bool {
	depth := 0
	for j := p.i + 1; j < len(p.toks); j++ {
		t := p.toks[j]
		if t.Type == token.EOF {
			return false
		}
		if t.Source.Col == 1 && p.toks[j-1].Source.Line < t.Source.Line {
			return false
		}
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.COLON:
			if depth == 0 {
				return true
			}
		case token.EQUALS:
			if depth == 0 {
				return false
			}
		}
	}
	return false
}

// skipToNextTopLevel advances past the current form, stopping at the next
// token in column 1 on a fresh line.
func (p *parser) skipToNextTopLevel() {
	p.advance()
	for !p.atEOF() && !p.atTopLevel() {
		p.advance()
	}
}

func (p *parser) parseDecl() *elm.Decl {
	start := p.cur()
	d := &elm.Decl{}
	if t := p.cur(); t.Type == token.LOWER && !isKeyword(t) {
		d.Name = t.Text
		p.advance()
	}
	// Parameter patterns up to the defining equals sign.
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if depth == 0 && t.Type == token.EQUALS {
			break
		}
		if depth == 0 && p.atTopLevel() && t != start {
			// Malformed declaration with no equals sign; give up on it.
			d.Span = p.spanFrom(start)
			return d
		}
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.LOWER:
			if depth == 0 && !isKeyword(t) {
				d.Params = append(d.Params, t.Text)
			}
		}
		p.advance()
	}
	if p.cur().Type == token.EQUALS {
		p.advance()
		d.Body = p.parseExpr(1)
	}
	d.Span = p.spanFrom(start)
	return d
}

// exprEnds reports whether the current token terminates an expression in a
// layout context requiring columns greater than min.
func (p *parser) exprEnds(min int) bool {
	t := p.cur()
	switch t.Type {
	case token.EOF, token.RPAREN, token.RBRACK, token.RBRACE, token.COMMA,
		token.ARROW, token.EQUALS, token.PIPE, token.COLON:
		return true
	case token.LOWER:
		switch t.Text {
		case "then", "else", "of", "in":
			return true
		}
	}
	return p.freshLine() && t.Source.Col <= min
}

func (p *parser) parseExpr(min int) elm.Expr {
	t := p.cur()
	switch {
	case t.IsKeyword("let"):
		return p.parseLet(min)
	case t.IsKeyword("if"):
		return p.parseIf(min)
	case t.IsKeyword("case"):
		return p.parseCase(min)
	case t.Type == token.BACKSLASH:
		return p.parseLambda(min)
	}
	left := p.parseApply(min)
	if !p.exprEnds(min) && p.cur().Type == token.OPERATOR {
		op := p.advance()
		// Operator precedence is irrelevant here; a flat right-leaning
		// chain visits the same references.
		right := p.parseExpr(min)
		return &elm.BinOp{
			Op:   op.Text,
			Left: left, Right: right,
			Src: spanUnion(left.Span(), right.Span()),
		}
	}
	return left
}

func (p *parser) parseApply(min int) elm.Expr {
	fn := p.parseAtom(min)
	var args []elm.Expr
	for p.startsAtom(min) {
		args = append(args, p.parseAtom(min))
	}
	if len(args) == 0 {
		return fn
	}
	return &elm.Apply{
		Fn: fn, Args: args,
		Src: spanUnion(fn.Span(), args[len(args)-1].Span()),
	}
}

// startsAtom reports whether the current token can begin an argument.
func (p *parser) startsAtom(min int) bool {
	if p.exprEnds(min) {
		return false
	}
	t := p.cur()
	switch t.Type {
	case token.UPPER, token.QUALIFIED, token.INT, token.FLOAT,
		token.STRING, token.CHAR, token.LPAREN, token.LBRACK,
		token.LBRACE, token.ACCESSOR:
		return true
	case token.LOWER:
		return !isKeyword(t)
	}
	return false
}

func (p *parser) parseAtom(min int) elm.Expr {
	t := p.cur()
	var expr elm.Expr
	switch t.Type {
	case token.LOWER, token.UPPER:
		p.advance()
		expr = &elm.VarRef{Name: t.Text, Src: tokenSpan(t)}
	case token.QUALIFIED:
		p.advance()
		segs := splitName(t.Text)
		expr = &elm.VarRef{
			ModulePath: segs[:len(segs)-1],
			Name:       segs[len(segs)-1],
			Src:        tokenSpan(t),
		}
	case token.INT:
		p.advance()
		expr = &elm.Literal{Kind: elm.LitInt, Text: t.Text, Src: tokenSpan(t)}
	case token.FLOAT:
		p.advance()
		expr = &elm.Literal{Kind: elm.LitFloat, Text: t.Text, Src: tokenSpan(t)}
	case token.STRING:
		p.advance()
		expr = &elm.Literal{Kind: elm.LitString, Text: t.Text, Src: tokenSpan(t)}
	case token.CHAR:
		p.advance()
		expr = &elm.Literal{Kind: elm.LitChar, Text: t.Text, Src: tokenSpan(t)}
	case token.ACCESSOR:
		p.advance()
		expr = &elm.Accessor{FieldName: strings.TrimPrefix(t.Text, "."), Src: tokenSpan(t)}
	case token.LPAREN:
		expr = p.parseParen()
	case token.LBRACK:
		expr = p.parseList()
	case token.LBRACE:
		expr = p.parseRecord()
	case token.OPERATOR:
		if t.Text == "-" {
			p.advance()
			operand := p.parseAtom(min)
			expr = &elm.Negate{Operand: operand, Src: spanUnion(tokenSpan(t), operand.Span())}
			break
		}
		fallthrough
	default:
		// Unrecognized token in expression position. Skip it so the parse
		// keeps making progress; the placeholder carries the span.
		p.advance()
		expr = &elm.Unit{Src: tokenSpan(t)}
	}
	// Postfix record access binds tighter than application.
	for p.cur().Type == token.DOT && p.peek().Type == token.LOWER {
		p.advance()
		f := p.advance()
		expr = &elm.Access{
			Target:    expr,
			FieldName: f.Text,
			Src:       spanUnion(expr.Span(), tokenSpan(f)),
		}
	}
	return expr
}

func (p *parser) parseParen() elm.Expr {
	l := p.advance() // (
	if p.cur().Type == token.RPAREN {
		r := p.advance()
		return &elm.Unit{Src: spanUnion(tokenSpan(l), tokenSpan(r))}
	}
	// Operator section, (+), or tuple constructor, (,).
	if t := p.cur(); (t.Type == token.OPERATOR || t.Type == token.COMMA || t.Type == token.PIPE) &&
		p.operatorSectionAhead() {
		var b strings.Builder
		for p.cur().Type != token.RPAREN && !p.atEOF() {
			b.WriteString(p.advance().Text)
		}
		r := p.cur()
		if r.Type == token.RPAREN {
			p.advance()
		}
		return &elm.OperatorRef{Op: b.String(), Src: spanUnion(tokenSpan(l), tokenSpan(r))}
	}
	// Layout is suspended inside brackets.
	e := p.parseExpr(0)
	if p.cur().Type == token.COMMA {
		elems := []elm.Expr{e}
		for p.cur().Type == token.COMMA {
			p.advance()
			elems = append(elems, p.parseExpr(0))
		}
		r := p.cur()
		if r.Type == token.RPAREN {
			p.advance()
		}
		return &elm.Tuple{Elems: elems, Src: spanUnion(tokenSpan(l), tokenSpan(r))}
	}
	if p.cur().Type == token.RPAREN {
		p.advance()
	}
	return e
}

// operatorSectionAhead reports whether the parenthesized group holds only
// operator and comma tokens, i.e. (+) or (,).
func (p *parser) operatorSectionAhead() bool {
	for j := p.i; j < len(p.toks); j++ {
		switch p.toks[j].Type {
		case token.RPAREN:
			return j > p.i
		case token.OPERATOR, token.COMMA, token.PIPE:
			// keep looking
		default:
			return false
		}
	}
	return false
}

func (p *parser) parseList() elm.Expr {
	l := p.advance() // [
	lst := &elm.List{}
	for !p.atEOF() && p.cur().Type != token.RBRACK {
		lst.Elems = append(lst.Elems, p.parseExpr(0))
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	r := p.cur()
	if r.Type == token.RBRACK {
		p.advance()
	}
	lst.Src = spanUnion(tokenSpan(l), tokenSpan(r))
	return lst
}

func (p *parser) parseRecord() elm.Expr {
	l := p.advance() // {
	if p.cur().Type == token.RBRACE {
		r := p.advance()
		return &elm.Record{Src: spanUnion(tokenSpan(l), tokenSpan(r))}
	}
	if p.cur().Type == token.LOWER && p.peek().Type == token.PIPE {
		base := p.advance()
		p.advance() // |
		fields := p.parseFields()
		r := p.cur()
		if r.Type == token.RBRACE {
			p.advance()
		}
		return &elm.RecordUpdate{
			Base:   base.Text,
			Fields: fields,
			Src:    spanUnion(tokenSpan(l), tokenSpan(r)),
		}
	}
	fields := p.parseFields()
	r := p.cur()
	if r.Type == token.RBRACE {
		p.advance()
	}
	return &elm.Record{Fields: fields, Src: spanUnion(tokenSpan(l), tokenSpan(r))}
}

func (p *parser) parseFields() []*elm.Field {
	var fields []*elm.Field
	for !p.atEOF() && p.cur().Type == token.LOWER {
		name := p.advance()
		if p.cur().Type != token.EQUALS {
			break
		}
		p.advance()
		fields = append(fields, &elm.Field{Name: name.Text, Value: p.parseExpr(0)})
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return fields
}

func (p *parser) parseLet(min int) elm.Expr {
	letTok := p.advance() // let
	bindCol := p.cur().Source.Col
	let := &elm.Let{}
	for !p.atEOF() && !p.cur().IsKeyword("in") {
		if p.freshLine() && p.cur().Source.Col < bindCol {
			break
		}
		if b := p.parseLetBinding(bindCol); b != nil {
			let.Bindings = append(let.Bindings, b)
		}
		if !(p.freshLine() && p.cur().Source.Col == bindCol) {
			break
		}
	}
	if p.cur().IsKeyword("in") {
		p.advance()
	}
	let.Body = p.parseExpr(min)
	let.Src = spanUnion(tokenSpan(letTok), let.Body.Span())
	return let
}

// parseLetBinding parses one binding at bindCol. Annotation lines inside the
// let block are skipped and reported as nil.
func (p *parser) parseLetBinding(bindCol int) *elm.LetBinding {
	start := p.cur()
	if start.Type == token.LOWER && !isKeyword(start) && p.letAnnotationAhead(bindCol) {
		p.skipLetAnnotation(bindCol)
		return nil
	}
	b := &elm.LetBinding{}
	if start.Type == token.LOWER && !isKeyword(start) {
		b.Name = start.Text
		p.advance()
	}
	depth := 0
	for !p.atEOF() && !p.cur().IsKeyword("in") {
		t := p.cur()
		if depth == 0 && t.Type == token.EQUALS {
			break
		}
		if depth == 0 && p.freshLine() && t.Source.Col <= bindCol && t != start {
			break
		}
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.LOWER:
			if depth == 0 && !isKeyword(t) && t != start {
				b.Params = append(b.Params, t.Text)
			}
		}
		p.advance()
	}
	if p.cur().Type == token.EQUALS {
		p.advance()
		b.Body = p.parseExpr(bindCol)
	}
	b.Src = p.spanFrom(start)
	if b.Body == nil && b.Name == "" {
		return nil
	}
	return b
}

func (p *parser) letAnnotationAhead(bindCol int) bool {
	depth := 0
	for j := p.i + 1; j < len(p.toks); j++ {
		t := p.toks[j]
		if t.Type == token.EOF || t.IsKeyword("in") {
			return false
		}
		if p.toks[j-1].Source.Line < t.Source.Line && t.Source.Col <= bindCol {
			return false
		}
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.COLON:
			if depth == 0 {
				return true
			}
		case token.EQUALS:
			if depth == 0 {
				return false
			}
		}
	}
	return false
}

func (p *parser) skipLetAnnotation(bindCol int) {
	p.advance()
	for !p.atEOF() && !p.cur().IsKeyword("in") {
		if p.freshLine() && p.cur().Source.Col <= bindCol {
			return
		}
		p.advance()
	}
}

func (p *parser) parseIf(min int) elm.Expr {
	ifTok := p.advance() // if
	cond := p.parseExpr(min)
	if p.cur().IsKeyword("then") {
		p.advance()
	}
	thenE := p.parseExpr(min)
	if p.cur().IsKeyword("else") {
		p.advance()
	}
	elseE := p.parseExpr(min)
	return &elm.If{
		Cond: cond, Then: thenE, Else: elseE,
		Src: spanUnion(tokenSpan(ifTok), elseE.Span()),
	}
}

func (p *parser) parseCase(min int) elm.Expr {
	caseTok := p.advance() // case
	c := &elm.Case{Subject: p.parseExpr(min)}
	if p.cur().IsKeyword("of") {
		p.advance()
	}
	branchCol := p.cur().Source.Col
	for !p.atEOF() {
		t := p.cur()
		if p.freshLine() && t.Source.Col < branchCol {
			break
		}
		switch t.Type {
		case token.RPAREN, token.RBRACK, token.RBRACE, token.COMMA:
			// The case expression was nested inside brackets.
			c.Src = spanUnion(tokenSpan(caseTok), tokenSpan(p.prev()))
			return c
		}
		b := p.parseCaseBranch(branchCol)
		if b == nil {
			break
		}
		c.Branches = append(c.Branches, b)
		if !(p.freshLine() && p.cur().Source.Col == branchCol) {
			break
		}
	}
	c.Src = spanUnion(tokenSpan(caseTok), tokenSpan(p.prev()))
	return c
}

func (p *parser) parseCaseBranch(branchCol int) *elm.CaseBranch {
	start := p.cur()
	var pat []string
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if depth == 0 && t.Type == token.ARROW {
			break
		}
		if p.freshLine() && t.Source.Col < branchCol && t != start {
			return nil
		}
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		}
		pat = append(pat, t.Text)
		p.advance()
	}
	if p.cur().Type != token.ARROW {
		return nil
	}
	p.advance()
	body := p.parseExpr(branchCol)
	return &elm.CaseBranch{
		Pattern: strings.Join(pat, " "),
		Body:    body,
		Src:     p.spanFrom(start),
	}
}

func (p *parser) parseLambda(min int) elm.Expr {
	bs := p.advance() // backslash
	l := &elm.Lambda{}
	depth := 0
	for !p.atEOF() && p.cur().Type != token.ARROW {
		t := p.cur()
		switch t.Type {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth == 0 {
				// Unclosed lambda head; bail out.
				l.Body = &elm.Unit{Src: tokenSpan(t)}
				l.Src = p.spanFrom(bs)
				return l
			}
			depth--
		case token.LOWER:
			if depth == 0 && !isKeyword(t) {
				l.Params = append(l.Params, t.Text)
			}
		}
		p.advance()
	}
	if p.cur().Type == token.ARROW {
		p.advance()
	}
	l.Body = p.parseExpr(min)
	l.Src = spanUnion(tokenSpan(bs), l.Body.Span())
	return l
}
