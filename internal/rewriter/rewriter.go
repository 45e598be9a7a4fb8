// Package rewriter implements the specifier rewriter (spec.md §4.4):
// given a file's content and an old-specifier-to-new-specifier map, it
// splices every matching specifier literal in place, leaving every
// other byte — including line endings and Unicode — untouched.
package rewriter

import (
	"bytes"
	"sort"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/parser"
	"github.com/dariusokafor/wsmove/internal/specref"
)

// Rewriter rewrites specifier literals in file content.
type Rewriter struct{}

// New creates a Rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Rewrite returns content with every specifier literal that has a key
// in specMap replaced by its mapped value, plus whether any
// replacement happened. Quote characters and every byte outside the
// rewritten literals are preserved exactly; template-literal
// specifiers are never touched (spec.md §9 open question (b)) because
// specref never reports them as References.
func (rw *Rewriter) Rewrite(fileRef domain.FileRef, content []byte, specMap map[string]string) ([]byte, bool, error) {
	if !fileRef.IsSourceFile() || len(specMap) == 0 {
		return content, false, nil
	}

	ast, err := parser.ParseForLanguage(fileRef.Base(), content)
	if err != nil {
		return content, false, domain.NewMoveError(domain.ParseError, fileRef, err.Error())
	}

	refs := specref.Collect(ast)

	type edit struct {
		start, end  int
		replacement string
	}
	var edits []edit
	for _, r := range refs {
		if replacement, ok := specMap[r.Specifier]; ok && replacement != r.Specifier {
			edits = append(edits, edit{r.LiteralStart, r.LiteralEnd, replacement})
		}
	}
	if len(edits) == 0 {
		return content, false, nil
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var out bytes.Buffer
	out.Grow(len(content))
	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.start])
		out.WriteString(e.replacement)
		cursor = e.end
	}
	out.Write(content[cursor:])
	return out.Bytes(), true, nil
}
