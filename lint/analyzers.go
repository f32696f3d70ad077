// Copyright © 2026 The elmguard authors

package lint

// AnalyzerDuplicateImport warns when a module is imported more than once in
// one file. The compiler rejects this, but elmguard parses tolerantly and
// the resolver then has to pick which import wins, so the duplicate is
// worth surfacing on its own.
var AnalyzerDuplicateImport = &Analyzer{
	Name:     "duplicate-import",
	Doc:      "Warn when a module is imported more than once.\n\nDuplicate imports are invalid Elm. When elmguard encounters one anyway, resolution treats exposing clauses most-permissively across the duplicates, which may not be what the author intended.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		seen := make(map[string]bool)
		for _, imp := range pass.Module.Imports {
			name := imp.Module.String()
			if name == "" {
				continue
			}
			if seen[name] {
				pass.Reportf(imp.Span, "module %s is imported more than once", name)
			}
			seen[name] = true
		}
		return nil
	},
}
