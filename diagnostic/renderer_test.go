// Copyright © 2026 The elmguard authors

package diagnostic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = "view =\n    input [] []\n"

func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			src, ok := sources[name]
			if !ok {
				return nil, errors.New("no such file")
			}
			return []byte(src), nil
		},
	}
}

func sampleDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Message:  "`input` is used outside of the allowed modules",
		Spans: []Span{{
			File:   "test.elm",
			Line:   2,
			Col:    5,
			EndCol: 10,
		}},
		Notes: []string{
			"`input` may only be used in these modules:",
			"- `View.Input`",
		},
	}
}

func TestRenderPlain(t *testing.T) {
	r := testRenderer(map[string]string{"test.elm": sampleSource})
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleDiagnostic()))

	want := strings.Join([]string{
		"error: `input` is used outside of the allowed modules",
		"  --> test.elm:2:5",
		"   |",
		" 2 |      input [] []",
		"   |      ^^^^^",
		"   |",
		"   = note: `input` may only be used in these modules:",
		"   = note: - `View.Input`",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRenderDetectsEndColumn(t *testing.T) {
	// A span without an end column underlines to the end of the token.
	r := testRenderer(map[string]string{"test.elm": sampleSource})
	d := sampleDiagnostic()
	d.Spans[0].EndCol = 0
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "   |      ^^^^^\n")
}

func TestRenderLabel(t *testing.T) {
	r := testRenderer(map[string]string{"test.elm": sampleSource})
	d := sampleDiagnostic()
	d.Spans[0].Label = "forbidden here"
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "^^^^^ forbidden here\n")
}

func TestRenderWarningHeader(t *testing.T) {
	r := testRenderer(nil)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Diagnostic{
		Severity: SeverityWarning,
		Message:  "module Html is imported more than once",
	}))
	assert.Equal(t, "warning: module Html is imported more than once\n", buf.String())
}

func TestRenderUnreadableSource(t *testing.T) {
	// When the source cannot be read the location still prints, without a
	// snippet.
	r := testRenderer(nil)
	var buf bytes.Buffer
	d := sampleDiagnostic()
	require.NoError(t, r.Render(&buf, d))
	out := buf.String()
	assert.Contains(t, out, "  --> test.elm:2:5\n")
	assert.NotContains(t, out, "^")
}

func TestRenderStdin(t *testing.T) {
	r := testRenderer(map[string]string{"<stdin>": sampleSource})
	d := sampleDiagnostic()
	d.Spans[0].File = "<stdin>"
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "  --> <stdin>:2:5\n")
	assert.NotContains(t, buf.String(), "input [] []")
}

func TestRenderTabExpansion(t *testing.T) {
	r := testRenderer(map[string]string{"tab.elm": "view =\n\tinput [] []\n"})
	d := Diagnostic{
		Severity: SeverityError,
		Message:  "m",
		Spans:    []Span{{File: "tab.elm", Line: 2, Col: 2, EndCol: 7}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	// The tab renders as four spaces and the underline lines up under it.
	assert.Contains(t, buf.String(), " 2 |      input [] []\n")
	assert.Contains(t, buf.String(), "   |      ^^^^^\n")
}

func TestRenderAll(t *testing.T) {
	r := testRenderer(map[string]string{"test.elm": sampleSource})
	var buf bytes.Buffer
	require.NoError(t, r.RenderAll(&buf, []Diagnostic{sampleDiagnostic(), sampleDiagnostic()}))
	// Two rendered diagnostics, separated by a blank line.
	assert.Equal(t, 2, strings.Count(buf.String(), "error:"))
	assert.Contains(t, buf.String(), "note: - `View.Input`\n\nerror:")
}

func TestRenderColorAlways(t *testing.T) {
	r := testRenderer(map[string]string{"test.elm": sampleSource})
	r.Color = ColorAlways
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleDiagnostic()))
	assert.Contains(t, buf.String(), "\033[1;31m")
	assert.Contains(t, buf.String(), "\033[0m")
}

func TestRenderNeverColorIgnoresTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := testRenderer(nil)
	require.NoError(t, r.Render(&buf, Diagnostic{Severity: SeverityNote, Message: "m"}))
	assert.NotContains(t, buf.String(), "\033[")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "note", SeverityNote.String())
}

func TestDetectEndCol(t *testing.T) {
	r := &Renderer{}
	assert.Equal(t, 10, r.detectEndCol("    input [] []", 5))
	assert.Equal(t, 4, r.detectEndCol("foo)", 1))
	assert.Equal(t, 21, r.detectEndCol("    input", 20)) // past end of line
}
