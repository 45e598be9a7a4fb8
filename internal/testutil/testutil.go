// Package testutil provides helper functions for testing wsmove components.
package testutil

import (
	"sort"
	"testing"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/parser"
	"github.com/dariusokafor/wsmove/internal/tree"
)

// CreateTestAST creates a test AST from JavaScript/TypeScript source code.
func CreateTestAST(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// CreateTestASTNoFail creates a test AST, returning an error instead of
// failing the test.
func CreateTestASTNoFail(source string) (*parser.Node, error) {
	p := parser.NewParser()
	defer p.Close()
	return p.ParseString(source)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual.
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil.
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("Expected non-nil value")
	}
}

// AssertNil fails the test if value is not nil.
func AssertNil(t *testing.T, value any) {
	t.Helper()
	if value != nil {
		t.Errorf("Expected nil, got %v", value)
	}
}

// AssertContains fails the test if s does not contain substr.
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !contains(s, substr) {
		t.Errorf("Expected %q to contain %q", s, substr)
	}
}

// AssertNotContains fails the test if s contains substr.
func AssertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if contains(s, substr) {
		t.Errorf("Expected %q not to contain %q", s, substr)
	}
}

func contains(s, substr string) bool {
	return len(substr) == 0 || (len(s) >= len(substr) && indexOf(s, substr) >= 0)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// NewWorkspace builds an in-memory overlay pre-populated with the given
// files, keyed by workspace-relative POSIX path.
func NewWorkspace(t *testing.T, files map[string]string) *tree.Overlay {
	t.Helper()
	o := tree.New()
	for path, content := range files {
		o.Write(domain.FileRef(path), []byte(content))
	}
	return o
}

// RequireContent fails the test unless fileRef exists in overlay with
// exactly the expected content.
func RequireContent(t *testing.T, o *tree.Overlay, fileRef domain.FileRef, expected string) {
	t.Helper()
	got, ok := o.Read(fileRef)
	if !ok {
		t.Fatalf("expected %s to exist", fileRef)
	}
	if string(got) != expected {
		t.Fatalf("content of %s:\n--- got ---\n%s\n--- want ---\n%s", fileRef, got, expected)
	}
}

// RequireAbsent fails the test if fileRef still exists in overlay.
func RequireAbsent(t *testing.T, o *tree.Overlay, fileRef domain.FileRef) {
	t.Helper()
	if o.Exists(fileRef) {
		t.Fatalf("expected %s to be absent", fileRef)
	}
}

// SortedFileRefs returns refs sorted in ascending POSIX order, for
// assertions that need deterministic ordering.
func SortedFileRefs(refs []domain.FileRef) []domain.FileRef {
	out := make([]domain.FileRef, len(refs))
	copy(out, refs)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
