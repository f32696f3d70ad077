// Copyright © 2026 The elmguard authors

package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testLinter() *Linter {
	return &Linter{Analyzers: Analyzers(Config{Bindings: []Binding{
		{Functions: []string{"Html.input"}, Modules: []string{"View.Input"}},
	}})}
}

func lintSource(t *testing.T, l *Linter, source string) []Diagnostic {
	t.Helper()
	diags, err := l.LintFile([]byte(source), "test.elm")
	require.NoError(t, err)
	return diags
}

func TestLintFile(t *testing.T) {
	diags := lintSource(t, testLinter(), `module Page exposing (view)

import Html exposing (input)


view =
    input [] []
`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "test.elm", d.File)
	assert.Equal(t, "forbidden-functions", d.Analyzer)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, "test.elm:7:5: `input` is used outside of the allowed modules (forbidden-functions)\n  = note: `input` may only be used in these modules:\n  = note: - `View.Input`", d.String())
}

func TestLintFile_NoFindings(t *testing.T) {
	diags := lintSource(t, testLinter(), `module Page exposing (view)


view =
    1
`)
	assert.Empty(t, diags)
}

func TestLintFile_ParseError(t *testing.T) {
	l := testLinter()
	_, err := l.LintFile([]byte("module Page exposing (view)\n\nview =\n    foo @ bar\n"), "bad.elm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.elm")
}

func TestLintFile_SourceOrder(t *testing.T) {
	diags := lintSource(t, testLinter(), `module Page exposing (a, b)

import Html
import Html exposing (input)


a =
    input [] []


b =
    Html.input [] []
`)
	// duplicate-import warning first, then the two uses in line order.
	require.Len(t, diags, 3)
	assert.Equal(t, "duplicate-import", diags[0].Analyzer)
	assert.Equal(t, 4, diags[0].Range.Start.Row)
	assert.Equal(t, 8, diags[1].Range.Start.Row)
	assert.Equal(t, 12, diags[2].Range.Start.Row)
}

func TestNolintSuppression(t *testing.T) {
	source := `module Page exposing (view)

import Html exposing (input)


view =
    input [] [] %s
`
	tests := []struct {
		name      string
		directive string
		want      int
	}{
		{"bare", "-- nolint", 0},
		{"named", "-- nolint:forbidden-functions", 0},
		{"named with others", "-- nolint:duplicate-import,forbidden-functions", 0},
		{"other check only", "-- nolint:duplicate-import", 1},
		{"unrelated comment", "-- see #42", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(source, "%s", tt.directive, 1)
			diags := lintSource(t, testLinter(), src)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestNolint_OtherLinesUnaffected(t *testing.T) {
	diags := lintSource(t, testLinter(), `module Page exposing (view)

import Html exposing (input)


view =
    input -- nolint
        [ input [] [] ]
        []
`)
	require.Len(t, diags, 1)
	assert.Equal(t, 8, diags[0].Range.Start.Row)
}

func TestDuplicateImportAnalyzer(t *testing.T) {
	l := &Linter{Analyzers: []*Analyzer{AnalyzerDuplicateImport}}
	diags := lintSource(t, l, `module Page exposing (view)

import Html
import Html.Attributes
import Html


view =
    1
`)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "module Html is imported more than once", diags[0].Message)
	assert.Equal(t, 5, diags[0].Range.Start.Row)
}

func TestSeverityJSON(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var got Severity
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, s, got)
	}

	data, err := json.Marshal(severityUnset)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))

	var s Severity
	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestFormatJSON(t *testing.T) {
	diags := lintSource(t, testLinter(), `module Page exposing (view)

import Html exposing (input)


view =
    input [] []
`)
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, diags))

	var decoded []Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, diags[0], decoded[0])
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, []Diagnostic{{
		File:     "a.elm",
		Range:    Range{Start: Position{Row: 3, Column: 7}},
		Message:  "problem",
		Analyzer: "forbidden-functions",
	}})
	assert.Equal(t, "a.elm:3:7: problem (forbidden-functions)\n", buf.String())
}

func TestAnalyzerNames(t *testing.T) {
	assert.Equal(t, []string{"duplicate-import", "forbidden-functions"}, AnalyzerNames())
}

func TestAnalyzerDoc(t *testing.T) {
	doc := AnalyzerDoc()
	assert.Contains(t, doc, "forbidden-functions")
	assert.Contains(t, doc, "duplicate-import")
}

func TestLinterTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background()) //nolint:errcheck // in-memory provider

	l := testLinter()
	l.Tracer = tp.Tracer("test")
	diags := lintSource(t, l, `module Page exposing (view)

import Html exposing (input)


view =
    input [] []
`)
	require.Len(t, diags, 1)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "elmguard.lint", span.Name())

	attrs := make(map[string]interface{})
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "test.elm", attrs["elmguard.file"])
	assert.Equal(t, int64(1), attrs["elmguard.diagnostics"])
}
