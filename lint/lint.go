// Copyright © 2026 The elmguard authors

// Package lint provides static analysis for Elm source files.
//
// The framework is modeled after go vet: each check is an independent
// Analyzer that receives a parsed module and reports diagnostics. The
// Linter handles parsing, running analyzers, collecting results, and
// formatting output. The built-in rules live in this package; embedders can
// run custom analyzers alongside them.
package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/henriquecbuss/elmguard/elm"
	"github.com/henriquecbuss/elmguard/parser"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Position identifies a point in source code. Row and Column are 1-based
// and count lines and runes respectively.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Range is a source region. End is exclusive on the column axis, so the
// range of a token covers exactly its runes.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// rangeOf converts an AST span to a diagnostic range.
func rangeOf(s elm.Span) Range {
	return Range{
		Start: Position{Row: s.Start.Line, Column: s.Start.Col},
		End:   Position{Row: s.End.Line, Column: s.End.Col},
	}
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// File is the source file the problem was found in. Filled in by the
	// Linter for diagnostics that do not set it.
	File string `json:"file"`

	// Range is the exact source region of the offending tokens.
	Range Range `json:"range"`

	// Message is a one-line description of the problem.
	Message string `json:"message"`

	// Details are optional explanatory lines, rendered as notes under the
	// message.
	Details []string `json:"details,omitempty"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`
}

// String returns the diagnostic in go vet style: file:row:col: message
// (analyzer), with detail lines appended as notes.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s:%d:%d: %s (%s)",
		d.File, d.Range.Start.Row, d.Range.Start.Column, d.Message, d.Analyzer)
	for _, line := range d.Details {
		s += "\n  = note: " + line
	}
	return s
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "forbidden-functions").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// Filename is the source file being analyzed.
	Filename string

	// Module is the parsed module under analysis.
	Module *elm.Module

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf is a convenience for reporting a diagnostic at a span.
func (p *Pass) Reportf(span elm.Span, format string, args ...interface{}) {
	p.Report(Diagnostic{
		Range:   rangeOf(span),
		Message: fmt.Sprintf(format, args...),
	})
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer

	// Tracer, when non-nil, records one span per analyzed file. Embedders
	// that already run an OpenTelemetry pipeline can pass their tracer; the
	// CLI leaves it nil.
	Tracer trace.Tracer
}

// LintFile parses and analyzes a single source file and returns all
// diagnostics in source order. An empty result is the normal no-findings
// case, not an error.
func (l *Linter) LintFile(source []byte, filename string) ([]Diagnostic, error) {
	return l.LintFileContext(context.Background(), source, filename)
}

// LintFileContext is LintFile with a caller-supplied context for tracing.
func (l *Linter) LintFileContext(ctx context.Context, source []byte, filename string) (diags []Diagnostic, err error) {
	if l.Tracer != nil {
		var span trace.Span
		_, span = l.Tracer.Start(ctx, "elmguard.lint",
			trace.WithAttributes(attribute.String("elmguard.file", filename)))
		defer func() {
			span.SetAttributes(attribute.Int("elmguard.diagnostics", len(diags)))
			span.End()
		}()
	}

	mod, err := parser.ParseModuleBytes(filename, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return l.lintParsed(mod, filename)
}

// LintModule analyzes an already-parsed module. Suppression comments are
// honored when the module carries its comments.
func (l *Linter) LintModule(mod *elm.Module, filename string) ([]Diagnostic, error) {
	return l.lintParsed(mod, filename)
}

func (l *Linter) lintParsed(mod *elm.Module, filename string) ([]Diagnostic, error) {
	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			Filename: filename,
			Module:   mod,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", filename, analyzer.Name, err)
		}
		for i := range pass.diagnostics {
			if pass.diagnostics[i].File == "" {
				pass.diagnostics[i].File = filename
			}
		}
		all = append(all, pass.diagnostics...)
	}

	all = filterSuppressed(all, mod.Comments)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].File != all[j].File {
			return all[i].File < all[j].File
		}
		if all[i].Range.Start.Row != all[j].Range.Start.Row {
			return all[i].Range.Start.Row < all[j].Range.Start.Row
		}
		return all[i].Range.Start.Column < all[j].Range.Start.Column
	})

	return all, nil
}

// filterSuppressed removes diagnostics on lines with `-- nolint` comments.
// A bare directive suppresses every check on the line; `-- nolint:a,b`
// suppresses only the named checks.
func filterSuppressed(diags []Diagnostic, comments []elm.Comment) []Diagnostic {
	if len(comments) == 0 {
		return diags
	}
	nolintLines := make(map[int]string)
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if !strings.HasPrefix(text, "nolint") {
			continue
		}
		rest := strings.TrimPrefix(text, "nolint")
		switch {
		case rest == "":
			nolintLines[c.Span.Start.Line] = ""
		case strings.HasPrefix(rest, ":"):
			nolintLines[c.Span.Start.Line] = strings.TrimPrefix(rest, ":")
		}
	}
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Range.Start.Row]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		if directive == "" {
			continue
		}
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			if strings.TrimSpace(name) == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

// Analyzers returns the built-in checks configured with cfg.
func Analyzers(cfg Config) []*Analyzer {
	return []*Analyzer{
		NewForbiddenFunctions(cfg),
		AnalyzerDuplicateImport,
	}
}

// AnalyzerNames returns a sorted list of built-in analyzer names.
func AnalyzerNames() []string {
	analyzers := Analyzers(Config{})
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for the built-in
// analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range Analyzers(Config{}) {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
