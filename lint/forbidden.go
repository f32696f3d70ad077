// Copyright © 2026 The elmguard authors

package lint

import (
	"fmt"
	"strings"

	"github.com/henriquecbuss/elmguard/elm"
)

// Binding pairs a set of forbidden fully-qualified function names with the
// modules allowed to use them. Bindings are independent: the same function
// may appear in several bindings with different allow-lists, and all of
// them apply.
type Binding struct {
	// Functions are dot-separated fully-qualified names, e.g. "Html.input".
	Functions []string

	// Modules are the dotted names of the modules allowed to use them.
	Modules []string
}

// Config is the forbidden-functions rule configuration: an ordered list of
// bindings.
type Config struct {
	Bindings []Binding
}

// Validate rejects malformed configurations before any analysis runs. A
// binding with no functions, a function name without a module qualifier,
// or an empty allow-list is a configuration mistake, not something to
// discover mid-traversal.
func (c Config) Validate() error {
	for i, b := range c.Bindings {
		if len(b.Functions) == 0 {
			return fmt.Errorf("binding %d: no forbidden functions", i+1)
		}
		for _, fn := range b.Functions {
			path, bare := splitFunctionName(fn)
			if len(path) == 0 || bare == "" {
				return fmt.Errorf("binding %d: %q is not a module-qualified function name", i+1, fn)
			}
			for _, seg := range path {
				if seg == "" {
					return fmt.Errorf("binding %d: %q has an empty module segment", i+1, fn)
				}
			}
		}
		if len(b.Modules) == 0 {
			return fmt.Errorf("binding %d: no allowed modules for %s", i+1, strings.Join(b.Functions, ", "))
		}
	}
	return nil
}

// splitFunctionName splits a dotted function name into its defining module
// path and bare name. A name without dots yields an empty module path; the
// function is total so a malformed configuration fails validation instead
// of crashing here.
func splitFunctionName(name string) (modulePath []string, bare string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return nil, name
	}
	return strings.Split(name[:i], "."), name[i+1:]
}

// importStatus describes how a forbidden function is reachable by name in
// the module under analysis. It is re-derived from scratch for every module.
type importStatus int

const (
	// notImported: no import names the defining module. Only a literal
	// fully-qualified reference can still denote the function.
	notImported importStatus = iota

	// importedQualified: the defining module is imported (possibly
	// aliased); the function is reachable as qualifier.bareName.
	importedQualified

	// importedExposed: an exposing clause names the bare function or
	// exposes everything; the bare name alone resolves to it.
	importedExposed
)

// forbiddenFunc tracks one configured forbidden function while a single
// module is analyzed.
type forbiddenFunc struct {
	binding    int    // index into Config.Bindings
	moduleName string // dotted defining module
	bareName   string

	status    importStatus
	qualifier string // valid once status leaves notImported
}

// moduleContext is the per-module resolution state: built once from the
// module header and import list, read-only during the expression pass, and
// discarded afterwards.
type moduleContext struct {
	funcs []*forbiddenFunc
}

// newModuleContext folds the module header and imports into resolution
// state. Bindings that allow the current module are dropped up front; none
// of their functions can produce a diagnostic here.
func newModuleContext(cfg Config, mod *elm.Module) *moduleContext {
	name := mod.Name.String()
	ctx := &moduleContext{}
	for i, b := range cfg.Bindings {
		if moduleAllowed(name, b.Modules) {
			continue
		}
		for _, fn := range b.Functions {
			path, bare := splitFunctionName(fn)
			ctx.funcs = append(ctx.funcs, &forbiddenFunc{
				binding:    i,
				moduleName: strings.Join(path, "."),
				bareName:   bare,
			})
		}
	}
	if len(ctx.funcs) > 0 {
		for _, imp := range mod.Imports {
			ctx.applyImport(imp)
		}
	}
	return ctx
}

// moduleAllowed reports whether name appears verbatim in allowed. Equality
// only: no prefix or wildcard matching.
func moduleAllowed(name string, allowed []string) bool {
	for _, m := range allowed {
		if m == name {
			return true
		}
	}
	return false
}

// applyImport folds one import declaration into the resolution status of
// every tracked function defined by the imported module. Each descriptor is
// updated independently; imports of unrelated modules have no effect.
//
// Duplicate imports of one module resolve most-permissively: once a
// function is exposed it stays exposed for the whole file, while the
// qualifier follows the latest import seen. The compiler rejects duplicate
// imports, so this only matters for tolerant parses.
func (ctx *moduleContext) applyImport(imp *elm.Import) {
	impName := imp.Module.String()
	for _, f := range ctx.funcs {
		if f.moduleName != impName {
			continue
		}
		f.qualifier = imp.Qualifier()
		if imp.Exposing != nil && imp.Exposing.Exposes(f.bareName) {
			f.status = importedExposed
		} else if f.status != importedExposed {
			f.status = importedQualified
		}
	}
}

// matches classifies a reference with the given dotted prefix against this
// descriptor. The caller has already matched the bare name.
func (f *forbiddenFunc) matches(prefix string) bool {
	switch f.status {
	case notImported:
		// Qualified access does not require an import; honor a reference
		// written in the literal fully-qualified form.
		return prefix == f.moduleName
	case importedQualified:
		return prefix == f.qualifier
	case importedExposed:
		// The bare form resolves through the exposing clause, and the
		// qualified form remains valid alongside it.
		return prefix == "" || prefix == f.qualifier
	}
	return false
}

// Check runs the forbidden-functions rule over one parsed module and
// returns its diagnostics in traversal (source) order. It is a pure
// function of its inputs: no state survives between calls, and identical
// inputs produce identical output.
func Check(cfg Config, mod *elm.Module) []Diagnostic {
	ctx := newModuleContext(cfg, mod)
	if len(ctx.funcs) == 0 {
		return nil
	}
	var diags []Diagnostic
	WalkModule(mod, func(e elm.Expr) {
		ref, ok := e.(*elm.VarRef)
		if !ok {
			return
		}
		prefix := ref.ModulePath.String()
		var allowed []string
		for _, f := range ctx.funcs {
			if f.bareName != ref.Name || !f.matches(prefix) {
				continue
			}
			allowed = mergeModules(allowed, cfg.Bindings[f.binding].Modules)
		}
		if allowed == nil {
			return
		}
		diags = append(diags, forbiddenDiagnostic(ref, allowed))
	})
	return diags
}

// ModuleNameLookup resolves a reference to the module that defines it.
// Implementations typically wrap a whole-project index; when one is
// available it replaces import-based resolution entirely.
type ModuleNameLookup interface {
	// FullModuleName returns the defining module of the reference written
	// as prefix.name, or false when the reference is unknown.
	FullModuleName(prefix elm.ModuleName, name string) (elm.ModuleName, bool)
}

// CheckWithLookup is Check with resolution delegated to lookup. A reference
// violates a binding when the lookup maps it to a forbidden function's
// defining module; import declarations are not consulted. Where the lookup
// agrees with import-based resolution the two variants produce identical
// diagnostics.
func CheckWithLookup(cfg Config, mod *elm.Module, lookup ModuleNameLookup) []Diagnostic {
	name := mod.Name.String()
	byCanonical := make(map[string][]int) // canonical name -> binding indexes
	for i, b := range cfg.Bindings {
		if moduleAllowed(name, b.Modules) {
			continue
		}
		for _, fn := range b.Functions {
			byCanonical[fn] = append(byCanonical[fn], i)
		}
	}
	if len(byCanonical) == 0 {
		return nil
	}
	var diags []Diagnostic
	WalkModule(mod, func(e elm.Expr) {
		ref, ok := e.(*elm.VarRef)
		if !ok {
			return
		}
		defining, ok := lookup.FullModuleName(ref.ModulePath, ref.Name)
		if !ok {
			return
		}
		canonical := defining.String() + "." + ref.Name
		var allowed []string
		for _, i := range byCanonical[canonical] {
			allowed = mergeModules(allowed, cfg.Bindings[i].Modules)
		}
		if allowed == nil {
			return
		}
		diags = append(diags, forbiddenDiagnostic(ref, allowed))
	})
	return diags
}

// mergeModules appends the modules not already present, preserving
// configuration order.
func mergeModules(dst []string, src []string) []string {
	for _, m := range src {
		if !moduleAllowed(m, dst) {
			dst = append(dst, m)
		}
	}
	return dst
}

// forbiddenDiagnostic builds the diagnostic for one confirmed violation.
// The display name is the reference as the user wrote it, not the canonical
// configured form: a bare exposed use reads `input`, an aliased use reads
// `Foo.input`. One diagnostic covers every binding the reference violates,
// with the allow-lists merged.
func forbiddenDiagnostic(ref *elm.VarRef, allowed []string) Diagnostic {
	display := ref.Name
	if len(ref.ModulePath) > 0 {
		display = ref.ModulePath.String() + "." + ref.Name
	}
	details := make([]string, 0, len(allowed)+1)
	details = append(details, fmt.Sprintf("`%s` may only be used in these modules:", display))
	for _, m := range allowed {
		details = append(details, "- `"+m+"`")
	}
	return Diagnostic{
		Range:   rangeOf(ref.Src),
		Message: fmt.Sprintf("`%s` is used outside of the allowed modules", display),
		Details: details,
	}
}

// NewForbiddenFunctions wraps Check as an Analyzer for the lint framework.
func NewForbiddenFunctions(cfg Config) *Analyzer {
	return &Analyzer{
		Name:     "forbidden-functions",
		Doc:      "Flag uses of designated functions outside of allowed modules.\n\nEach configured binding names one or more fully-qualified functions and the modules permitted to use them. A reference counts as a use whether it is written bare via an exposing clause, qualified through the module name or an alias, or fully qualified without an import. Modules on a binding's allow-list are exempt from that binding only.",
		Severity: SeverityError,
		Run: func(pass *Pass) error {
			for _, d := range Check(cfg, pass.Module) {
				pass.Report(d)
			}
			return nil
		},
	}
}
