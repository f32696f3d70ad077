// Copyright © 2026 The elmguard authors

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henriquecbuss/elmguard/elm"
)

func parse(t *testing.T, source string) *elm.Module {
	t.Helper()
	mod, err := ParseModuleBytes("test.elm", []byte(source))
	require.NoError(t, err)
	return mod
}

// collectRefs gathers every value reference in the tree in source order.
func collectRefs(e elm.Expr, out *[]*elm.VarRef) {
	switch e := e.(type) {
	case nil:
	case *elm.VarRef:
		*out = append(*out, e)
	case *elm.Apply:
		collectRefs(e.Fn, out)
		for _, a := range e.Args {
			collectRefs(a, out)
		}
	case *elm.BinOp:
		collectRefs(e.Left, out)
		collectRefs(e.Right, out)
	case *elm.Negate:
		collectRefs(e.Operand, out)
	case *elm.Lambda:
		collectRefs(e.Body, out)
	case *elm.Let:
		for _, b := range e.Bindings {
			collectRefs(b.Body, out)
		}
		collectRefs(e.Body, out)
	case *elm.If:
		collectRefs(e.Cond, out)
		collectRefs(e.Then, out)
		collectRefs(e.Else, out)
	case *elm.Case:
		collectRefs(e.Subject, out)
		for _, b := range e.Branches {
			collectRefs(b.Body, out)
		}
	case *elm.List:
		for _, el := range e.Elems {
			collectRefs(el, out)
		}
	case *elm.Tuple:
		for _, el := range e.Elems {
			collectRefs(el, out)
		}
	case *elm.Record:
		for _, f := range e.Fields {
			collectRefs(f.Value, out)
		}
	case *elm.RecordUpdate:
		for _, f := range e.Fields {
			collectRefs(f.Value, out)
		}
	case *elm.Access:
		collectRefs(e.Target, out)
	}
}

// refNames returns the written form of every reference in the module.
func refNames(m *elm.Module) []string {
	var refs []*elm.VarRef
	for _, d := range m.Decls {
		collectRefs(d.Body, &refs)
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		if len(r.ModulePath) > 0 {
			names[i] = r.ModulePath.String() + "." + r.Name
		} else {
			names[i] = r.Name
		}
	}
	return names
}

func TestParseHeader(t *testing.T) {
	mod := parse(t, `module Ui.Button exposing (view, init)


view =
    1
`)
	assert.Equal(t, elm.ModuleName{"Ui", "Button"}, mod.Name)
	assert.Equal(t, elm.Span{
		Start: elm.Pos{Line: 1, Col: 8},
		End:   elm.Pos{Line: 1, Col: 17},
	}, mod.NameSpan)
	require.Len(t, mod.Decls, 1)
	assert.Equal(t, "view", mod.Decls[0].Name)
}

func TestParseHeader_PortModule(t *testing.T) {
	mod := parse(t, `port module Ports exposing (alarm)


port alarm : String -> Cmd msg
`)
	assert.Equal(t, elm.ModuleName{"Ports"}, mod.Name)
	assert.Empty(t, mod.Decls)
}

func TestParseHeader_Headerless(t *testing.T) {
	mod := parse(t, `answer =
    42
`)
	assert.Equal(t, elm.ModuleName{"Main"}, mod.Name)
	require.Len(t, mod.Decls, 1)
	assert.Equal(t, "answer", mod.Decls[0].Name)
}

func TestParseImports(t *testing.T) {
	mod := parse(t, `module Page exposing (view)

import Html
import Html.Attributes as Attr
import Json.Decode as Decode exposing (Decoder, field, int)
import Browser exposing (..)


view =
    1
`)
	require.Len(t, mod.Imports, 4)

	assert.Equal(t, elm.ModuleName{"Html"}, mod.Imports[0].Module)
	assert.Nil(t, mod.Imports[0].Alias)
	assert.Nil(t, mod.Imports[0].Exposing)
	assert.Equal(t, "Html", mod.Imports[0].Qualifier())

	assert.Equal(t, elm.ModuleName{"Html", "Attributes"}, mod.Imports[1].Module)
	assert.Equal(t, "Attr", mod.Imports[1].Qualifier())

	imp := mod.Imports[2]
	assert.Equal(t, elm.ModuleName{"Json", "Decode"}, imp.Module)
	assert.Equal(t, "Decode", imp.Qualifier())
	require.NotNil(t, imp.Exposing)
	// Exposed types are not recorded; only plain values can collide with
	// qualified function names.
	assert.Equal(t, []string{"field", "int"}, imp.Exposing.Values)
	assert.False(t, imp.Exposing.All)
	assert.True(t, imp.Exposing.Exposes("field"))
	assert.False(t, imp.Exposing.Exposes("Decoder"))

	require.NotNil(t, mod.Imports[3].Exposing)
	assert.True(t, mod.Imports[3].Exposing.All)
	assert.True(t, mod.Imports[3].Exposing.Exposes("anything"))
}

func TestParseImport_ExposedOperator(t *testing.T) {
	mod := parse(t, `module Page exposing (view)

import Url.Parser exposing ((</>), map, s)


view =
    1
`)
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, []string{"map", "s"}, mod.Imports[0].Exposing.Values)
}

func TestParseDecl_Params(t *testing.T) {
	mod := parse(t, `module Page exposing (view)


view model count =
    count
`)
	require.Len(t, mod.Decls, 1)
	d := mod.Decls[0]
	assert.Equal(t, "view", d.Name)
	assert.Equal(t, []string{"model", "count"}, d.Params)
}

func TestParseDecl_AnnotationSkipped(t *testing.T) {
	mod := parse(t, `module Page exposing (view)


view : Model -> Html.Html Msg
view model =
    text "hi"
`)
	require.Len(t, mod.Decls, 1)
	assert.Equal(t, "view", mod.Decls[0].Name)
	// The annotation's Html.Html must not surface as a reference.
	assert.Equal(t, []string{"text"}, refNames(mod))
}

func TestParseDecl_TypesSkipped(t *testing.T) {
	mod := parse(t, `module Page exposing (view)


type Msg
    = Clicked
    | Ignored


type alias Model =
    { count : Int }


view =
    render
`)
	require.Len(t, mod.Decls, 1)
	assert.Equal(t, []string{"render"}, refNames(mod))
}

func TestParseVarRefSpans(t *testing.T) {
	mod := parse(t, `module Page exposing (view)


view =
    Html.input [] []
`)
	var refs []*elm.VarRef
	for _, d := range mod.Decls {
		collectRefs(d.Body, &refs)
	}
	require.Len(t, refs, 1)
	ref := refs[0]
	assert.Equal(t, elm.ModuleName{"Html"}, ref.ModulePath)
	assert.Equal(t, "input", ref.Name)
	assert.Equal(t, elm.Span{
		Start: elm.Pos{Line: 5, Col: 5},
		End:   elm.Pos{Line: 5, Col: 15},
	}, ref.Src)
}

func TestParseExpressions(t *testing.T) {
	mod := parse(t, `module Page exposing (view)


view model =
    let
        label : String
        label =
            toLabel model

        render count =
            viewCount count
    in
    if model.visible then
        div []
            [ render model.count
            , text label
            , Html.map Wrap (subview model)
            ]

    else
        case model.state of
            Loading ->
                spinner

            Loaded items ->
                List.map viewItem items
                    |> div []
`)
	assert.Equal(t, []string{
		"toLabel", "model",
		"viewCount", "count",
		"model",
		"div",
		"render", "model",
		"text", "label",
		"Html.map", "Wrap", "subview", "model",
		"model",
		"spinner",
		"List.map", "viewItem", "items", "div",
	}, refNames(mod))
}

func TestParseRecordForms(t *testing.T) {
	mod := parse(t, `module Page exposing (update)


update msg model =
    { model | count = succ model.count, label = render msg }
`)
	require.Len(t, mod.Decls, 1)
	upd, ok := mod.Decls[0].Body.(*elm.RecordUpdate)
	require.True(t, ok)
	assert.Equal(t, "model", upd.Base)
	require.Len(t, upd.Fields, 2)
	assert.Equal(t, "count", upd.Fields[0].Name)
	assert.Equal(t, []string{"succ", "model", "render", "msg"}, refNames(mod))
}

func TestParseLambdaAndOperators(t *testing.T) {
	mod := parse(t, `module Page exposing (total)


total items =
    List.foldl (+) 0 (List.map (\item -> item.price) items)
`)
	assert.Equal(t, []string{"List.foldl", "List.map", "item", "items"}, refNames(mod))
}

func TestParseTupleAndNegate(t *testing.T) {
	mod := parse(t, `module Page exposing (pair)


pair x =
    ( -x, scale x )
`)
	require.Len(t, mod.Decls, 1)
	tup, ok := mod.Decls[0].Body.(*elm.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
	_, ok = tup.Elems[0].(*elm.Negate)
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "scale", "x"}, refNames(mod))
}

func TestParseCaseBranchPatterns(t *testing.T) {
	mod := parse(t, `module Page exposing (describe)


describe result =
    case result of
        Ok ( value, _ ) ->
            show value

        Err _ ->
            fallback
`)
	require.Len(t, mod.Decls, 1)
	c, ok := mod.Decls[0].Body.(*elm.Case)
	require.True(t, ok)
	require.Len(t, c.Branches, 2)
	assert.True(t, strings.HasPrefix(c.Branches[0].Pattern, "Ok"))
	assert.True(t, strings.HasPrefix(c.Branches[1].Pattern, "Err"))
	assert.Equal(t, []string{"result", "show", "value", "fallback"}, refNames(mod))
}

func TestParseComments(t *testing.T) {
	mod := parse(t, `module Page exposing (view)

-- top comment


view =
    1 -- trailing

{- block
comment -}
`)
	require.Len(t, mod.Comments, 3)
	assert.Equal(t, "top comment", mod.Comments[0].Text)
	assert.Equal(t, 3, mod.Comments[0].Span.Start.Line)
	assert.Equal(t, "trailing", mod.Comments[1].Text)
	assert.Equal(t, 7, mod.Comments[1].Span.Start.Line)
	assert.Equal(t, "block\ncomment", mod.Comments[2].Text)
}

func TestParseError(t *testing.T) {
	_, err := ParseModuleBytes("bad.elm", []byte("view = #\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.elm:1:8")
}

func TestParseModuleReader(t *testing.T) {
	mod, err := ParseModule("test.elm", strings.NewReader("module A exposing (..)\n"))
	require.NoError(t, err)
	assert.Equal(t, elm.ModuleName{"A"}, mod.Name)
}
