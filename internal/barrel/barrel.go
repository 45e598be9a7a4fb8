// Package barrel implements the barrel/export manager (spec.md §4.5):
// adding, removing, and detecting re-export statements in a project's
// barrel file.
package barrel

import (
	"fmt"
	"sort"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/parser"
)

// Manager mutates a project's barrel file through an overlay.
type Manager struct {
	overlay domain.Overlay
}

// New creates a Manager over the given overlay.
func New(overlay domain.Overlay) *Manager {
	return &Manager{overlay: overlay}
}

type exportEntry struct {
	specifier string
	startByte int
	endByte   int
}

// findExports parses barrel and returns every export-from statement it
// contains, matching both `export * from '...'` and named re-exports
// `export { a, b } from '...'` (SPEC_FULL.md §4's resolution of spec.md
// §9 open question (a): removal matches on resolved source path
// regardless of star vs. named form).
func (m *Manager) findExports(barrel domain.FileRef) ([]exportEntry, []byte, error) {
	content, ok := m.overlay.Read(barrel)
	if !ok {
		return nil, nil, nil
	}
	if len(content) == 0 {
		return nil, content, nil
	}

	ast, err := parser.ParseForLanguage(barrel.Base(), content)
	if err != nil {
		return nil, content, domain.NewMoveError(domain.ParseError, barrel, err.Error())
	}

	var out []exportEntry
	var walk func(n *parser.Node)
	walk = func(n *parser.Node) {
		if n == nil {
			return
		}
		switch n.Type {
		case parser.NodeExportNamedDeclaration, parser.NodeExportDefaultDeclaration, parser.NodeExportAllDeclaration:
			if n.Source != nil && n.Source.Type == parser.NodeStringLiteral {
				if len(n.Source.Raw) >= 2 {
					q := n.Source.Raw[0]
					if (q == '\'' || q == '"') && n.Source.Raw[len(n.Source.Raw)-1] == q {
						out = append(out, exportEntry{
							specifier: n.Source.Raw[1 : len(n.Source.Raw)-1],
							startByte: n.Location.StartByte,
							endByte:   n.Location.EndByte,
						})
					}
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(ast)
	return out, content, nil
}

// HasExport reports whether barrel already contains a re-export whose
// source resolves to relSpecifier.
func (m *Manager) HasExport(barrel domain.FileRef, relSpecifier string) bool {
	entries, _, err := m.findExports(barrel)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.specifier == relSpecifier {
			return true
		}
	}
	return false
}

// AddExport appends a single `export * from '<relSpecifier>';` line if
// one is not already present. Idempotent.
func (m *Manager) AddExport(barrel domain.FileRef, relSpecifier string) {
	if m.HasExport(barrel, relSpecifier) {
		return
	}
	content, _ := m.overlay.Read(barrel)
	line := fmt.Sprintf("export * from '%s';\n", relSpecifier)

	var out []byte
	switch {
	case len(content) == 0:
		out = []byte(line)
	case content[len(content)-1] == '\n':
		out = append(append([]byte{}, content...), []byte(line)...)
	default:
		out = append(append([]byte{}, content...), append([]byte("\n"), []byte(line)...)...)
	}
	m.overlay.Write(barrel, out)
}

// RemoveExport removes every re-export statement (star or named) whose
// source resolves to relSpecifier. If the removal leaves the barrel
// with no exports, the barrel is left as an (possibly empty) file —
// never deleted (spec.md §4.5).
func (m *Manager) RemoveExport(barrel domain.FileRef, relSpecifier string) {
	entries, content, err := m.findExports(barrel)
	if err != nil || len(entries) == 0 {
		return
	}

	var toRemove []exportEntry
	for _, e := range entries {
		if e.specifier == relSpecifier {
			toRemove = append(toRemove, e)
		}
	}
	if len(toRemove) == 0 {
		return
	}

	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i].startByte > toRemove[j].startByte })

	out := append([]byte(nil), content...)
	for _, e := range toRemove {
		end := e.endByte
		if end < len(out) && out[end] == '\n' {
			end++
		}
		out = append(out[:e.startByte], out[end:]...)
	}
	m.overlay.Write(barrel, out)
}
