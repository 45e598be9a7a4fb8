// Package scanner implements the specifier scanner (spec.md §4.3): a
// cheap substring pre-filter followed by a structural confirmation
// pass, backed by the tree overlay's negative-scan cache.
package scanner

import (
	"bytes"
	"sort"
	"strings"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/parser"
	"github.com/dariusokafor/wsmove/internal/specref"
	"github.com/dariusokafor/wsmove/internal/tree"
)

// Scanner answers "does this file reference any of these specifiers"
// for one move's candidate set.
type Scanner struct {
	overlay *tree.Overlay
}

// New creates a Scanner over the given overlay, whose cache it shares.
func New(overlay *tree.Overlay) *Scanner {
	return &Scanner{overlay: overlay}
}

// Signature builds the cache key for a candidate set: a sorted,
// deduplicated, delimiter-joined signature so that two calls with the
// same candidates in different order still hit the same cache entry.
func Signature(candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}

// FileReferences reports whether fileRef contains a top-level or
// dynamic import/export/require whose specifier is one of candidates
// (spec.md §4.3 contract). Non-source files return false unread; files
// proven clean by the negative-scan cache return false without running
// the substring or structural pass again. A parse failure is swallowed: the file is treated as
// containing no reference, never as a fatal error.
func (s *Scanner) FileReferences(fileRef domain.FileRef, candidates []string) bool {
	if !fileRef.IsSourceFile() || len(candidates) == 0 {
		return false
	}

	content, ok := s.overlay.Read(fileRef)
	if !ok {
		return false
	}

	signature := Signature(candidates)
	if s.overlay.NegativeScanHit(fileRef, signature) {
		return false
	}

	if !CheapPass(content, candidates) {
		s.overlay.RecordNegativeScan(fileRef, signature)
		return false
	}

	found, err := StructuralPass(fileRef, content, candidates)
	if err != nil || !found {
		s.overlay.RecordNegativeScan(fileRef, signature)
		return false
	}
	return true
}

// CheapPass is the substring pre-filter (spec.md §4.3 step 1): it
// returns true only if at least one candidate appears anywhere in
// content as a raw substring. It is a necessary, not sufficient,
// condition for StructuralPass returning true (spec.md §8 property 6),
// so it is safe to run in parallel across files ahead of the rewriter.
func CheapPass(content []byte, candidates []string) bool {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if bytes.Contains(content, []byte(c)) {
			return true
		}
	}
	return false
}

// StructuralPass parses fileRef's content and confirms whether any
// import/export/require/dynamic-import specifier literal matches one
// of candidates, stopping at the first match (spec.md §4.3 step 2,
// "early-exit"). A parse error is returned to the caller, which must
// treat it as "no match", never as fatal (spec.md §4.8).
func StructuralPass(fileRef domain.FileRef, content []byte, candidates []string) (bool, error) {
	ast, err := parser.ParseForLanguage(fileRef.Base(), content)
	if err != nil {
		return false, domain.NewMoveError(domain.ParseError, fileRef, err.Error())
	}

	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}

	found := false
	specref.Walk(ast, func(r domain.Reference) bool {
		if set[r.Specifier] {
			found = true
			return false
		}
		return true
	})
	return found, nil
}
