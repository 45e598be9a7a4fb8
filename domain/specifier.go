package domain

import "strings"

// SpecifierKind classifies an import/export/require specifier by the
// syntax of its literal text, per spec.md §3.
type SpecifierKind string

const (
	// SpecifierRelative starts with "./" or "../".
	SpecifierRelative SpecifierKind = "relative"

	// SpecifierAlias matches one of the configured alias patterns.
	SpecifierAlias SpecifierKind = "alias"

	// SpecifierBare is everything else, treated as external.
	SpecifierBare SpecifierKind = "bare"
)

// ClassifySpecifier determines a specifier's kind given the workspace's
// alias table. It does not resolve the specifier to a file; that is
// the path resolver's job.
func ClassifySpecifier(specifier string, aliases AliasTable) SpecifierKind {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return SpecifierRelative
	}
	if _, _, ok := aliases.Match(specifier); ok {
		return SpecifierAlias
	}
	return SpecifierBare
}

// ReferenceKind identifies the surrounding syntax of a specifier
// occurrence (design note "Polymorphism over AST kinds").
type ReferenceKind string

const (
	ReferenceImport       ReferenceKind = "import"        // import ... from '...'
	ReferenceExportFrom   ReferenceKind = "export_from"    // export ... from '...' / export * from '...'
	ReferenceDynamicImport ReferenceKind = "dynamic_import" // import('...')
	ReferenceRequire      ReferenceKind = "require"        // require('...')
	ReferenceImportEquals ReferenceKind = "import_equals"  // import x = require('...')
)

// Quote identifies which quote character wrapped a specifier literal
// in source text, so the rewriter can preserve the author's style.
type Quote byte

const (
	QuoteSingle Quote = '\''
	QuoteDouble Quote = '"'
)

// Reference is one occurrence of a specifier literal in a file: a
// tagged variant carrying just enough to let the rewriter splice the
// literal in place without touching surrounding bytes.
type Reference struct {
	// Kind is the surrounding syntactic form.
	Kind ReferenceKind

	// Specifier is the literal's decoded value (quotes stripped).
	Specifier string

	// Quote is the quote character used in the source.
	Quote Quote

	// LiteralStart/LiteralEnd are the byte offsets of the specifier
	// literal's content, excluding the quote characters themselves.
	LiteralStart int
	LiteralEnd   int

	// HasBindings is false for side-effect-only imports ("import '...';")
	// so the rewriter knows not to assume named bindings exist.
	HasBindings bool
}
