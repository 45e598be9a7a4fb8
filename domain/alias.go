package domain

import "strings"

// AliasEntry maps one alias pattern to the project it resolves into,
// with an optional subpath suffix the alias already encodes (e.g. a
// scoped package whose alias is a prefix of a deeper import path).
type AliasEntry struct {
	// Pattern is the literal alias string, e.g. "@w/a".
	Pattern string

	// Project is the name of the project this alias resolves to.
	Project string

	// Subpath is an optional suffix appended after Pattern to form
	// deep-import specifiers (rarely used; empty for plain barrel aliases).
	Subpath string
}

// AliasTable maps alias pattern strings to their entries. It is a
// static, external input for one engine invocation (spec.md §6).
type AliasTable map[string]AliasEntry

// Match returns the entry whose pattern is a prefix of specifier, and
// the remainder of specifier after the pattern, if one exists. Longest
// pattern wins when multiple patterns are prefixes.
func (t AliasTable) Match(specifier string) (AliasEntry, string, bool) {
	var best AliasEntry
	bestLen := -1
	found := false
	for pattern, entry := range t {
		if specifier == pattern || strings.HasPrefix(specifier, pattern+"/") {
			if len(pattern) > bestLen {
				best = entry
				bestLen = len(pattern)
				found = true
			}
		}
	}
	if !found {
		return AliasEntry{}, "", false
	}
	rest := strings.TrimPrefix(specifier, best.Pattern)
	rest = strings.TrimPrefix(rest, "/")
	return best, rest, true
}

// ForProject returns the alias pattern registered for a project name,
// or "" if the project has none.
func (t AliasTable) ForProject(project string) string {
	for pattern, entry := range t {
		if entry.Project == project && entry.Subpath == "" {
			return pattern
		}
	}
	return ""
}
