// Copyright © 2026 The elmguard authors

package cmd

import (
	"os"

	"github.com/henriquecbuss/elmguard/diagnostic"
	"github.com/henriquecbuss/elmguard/lint"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// renderLintDiagnostics prints findings as annotated source snippets on
// stderr.
func renderLintDiagnostics(diags []lint.Diagnostic) {
	r := newRenderer()
	rendered := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, lintToRenderable(d))
	}
	_ = r.RenderAll(os.Stderr, rendered)
}

func lintToRenderable(d lint.Diagnostic) diagnostic.Diagnostic {
	out := diagnostic.Diagnostic{
		Severity: renderSeverity(d.Severity),
		Message:  d.Message,
		Spans: []diagnostic.Span{{
			File:   d.File,
			Line:   d.Range.Start.Row,
			Col:    d.Range.Start.Column,
			EndCol: d.Range.End.Column,
		}},
		Notes: d.Details,
	}
	return out
}

func renderSeverity(s lint.Severity) diagnostic.Severity {
	switch s {
	case lint.SeverityError:
		return diagnostic.SeverityError
	case lint.SeverityInfo:
		return diagnostic.SeverityNote
	default:
		return diagnostic.SeverityWarning
	}
}
