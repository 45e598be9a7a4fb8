// Package specref extracts specifier References — the tagged variant
// from the design note "Polymorphism over AST kinds" — from a parsed
// AST. It is the single place that knows which tree-sitter-derived
// node shapes carry a specifier literal, shared by the scanner, the
// rewriter, and the barrel manager so none of them re-implements the
// walk.
package specref

import (
	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/parser"
)

// Collect returns every specifier Reference in ast, in document order.
func Collect(ast *parser.Node) []domain.Reference {
	var out []domain.Reference
	Walk(ast, func(r domain.Reference) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Walk visits every specifier Reference in ast in document order,
// stopping as soon as visit returns false. This is the structural
// pass's early-exit: a move with one matching import in a large file
// never has to walk the rest of its already-parsed tree (spec.md §4.3).
func Walk(ast *parser.Node, visit func(domain.Reference) bool) {
	var walk func(n *parser.Node) bool
	walk = func(n *parser.Node) bool {
		if n == nil {
			return true
		}

		switch n.Type {
		case parser.NodeImportDeclaration:
			if ref, ok := fromSource(n.Source, domain.ReferenceImport, len(n.Specifiers) > 0); ok {
				if !visit(ref) {
					return false
				}
			}

		case parser.NodeExportNamedDeclaration, parser.NodeExportDefaultDeclaration, parser.NodeExportAllDeclaration:
			if n.Source != nil {
				if ref, ok := fromSource(n.Source, domain.ReferenceExportFrom, true); ok {
					if !visit(ref) {
						return false
					}
				}
			}

		case parser.NodeImportEqualsDeclaration:
			if ref, ok := fromSource(n.Source, domain.ReferenceImportEquals, true); ok {
				if !visit(ref) {
					return false
				}
			}

		case parser.NodeCallExpression:
			if n.Callee != nil && n.Callee.Type == parser.NodeIdentifier &&
				len(n.Arguments) == 1 && n.Arguments[0].Type == parser.NodeStringLiteral {
				switch n.Callee.Name {
				case "require":
					if ref, ok := fromSource(n.Arguments[0], domain.ReferenceRequire, true); ok {
						if !visit(ref) {
							return false
						}
					}
				case "import":
					if ref, ok := fromSource(n.Arguments[0], domain.ReferenceDynamicImport, true); ok {
						if !visit(ref) {
							return false
						}
					}
				}
			}
		}

		for _, c := range n.Children {
			if !walk(c) {
				return false
			}
		}
		for _, a := range n.Arguments {
			if !walk(a) {
				return false
			}
		}
		// An exported declaration (`export const x = require('./y')`,
		// `export default require('./y')`) hangs off Declaration, not
		// Children, so a reference nested inside it is otherwise
		// invisible to the scanner and rewriter.
		if n.Declaration != nil {
			if !walk(n.Declaration) {
				return false
			}
		}
		return true
	}
	walk(ast)
}

// SpecifierValue extracts the decoded literal value (quotes stripped)
// from a string-literal node's raw source text, and reports whether it
// was quoted with a real quote character (template literals are never
// considered resolvable specifiers, per spec.md §4.4 and §9 open
// question (b)).
func SpecifierValue(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}
	q := raw[0]
	if q != '\'' && q != '"' {
		return "", false
	}
	if raw[len(raw)-1] != q {
		return "", false
	}
	return raw[1 : len(raw)-1], true
}

func fromSource(lit *parser.Node, kind domain.ReferenceKind, hasBindings bool) (domain.Reference, bool) {
	if lit == nil || lit.Type != parser.NodeStringLiteral {
		return domain.Reference{}, false
	}
	value, ok := SpecifierValue(lit.Raw)
	if !ok {
		return domain.Reference{}, false
	}
	return domain.Reference{
		Kind:         kind,
		Specifier:    value,
		Quote:        domain.Quote(lit.Raw[0]),
		LiteralStart: lit.Location.StartByte + 1,
		LiteralEnd:   lit.Location.EndByte - 1,
		HasBindings:  hasBindings,
	}, true
}
