package parser

import "fmt"

// NodeType represents the type of AST node. The set is trimmed to the
// JavaScript/TypeScript constructs a move engine needs to recognise:
// imports, exports, dynamic imports, require calls, TypeScript
// import-equals, and the structural nodes needed to walk down to them.
type NodeType string

const (
	// Program and structure
	NodeProgram NodeType = "Program"

	// Module system (ESM)
	NodeImportDeclaration        NodeType = "ImportDeclaration"
	NodeImportSpecifier          NodeType = "ImportSpecifier"
	NodeImportDefaultSpecifier   NodeType = "ImportDefaultSpecifier"
	NodeImportNamespaceSpecifier NodeType = "ImportNamespaceSpecifier"
	NodeImportEqualsDeclaration  NodeType = "ImportEqualsDeclaration"
	NodeExportNamedDeclaration   NodeType = "ExportNamedDeclaration"
	NodeExportDefaultDeclaration NodeType = "ExportDefaultDeclaration"
	NodeExportAllDeclaration     NodeType = "ExportAllDeclaration"
	NodeExportSpecifier          NodeType = "ExportSpecifier"

	// Expressions that can carry a require(...) or dynamic import(...)
	NodeCallExpression   NodeType = "CallExpression"
	NodeMemberExpression NodeType = "MemberExpression"
	NodeIdentifier       NodeType = "Identifier"

	// Literals
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeTemplateLiteral NodeType = "TemplateLiteral"

	// NodeOther is every tree-sitter node kind this package does not
	// special-case. Its children are still walked so that imports,
	// dynamic imports and require calls nested inside functions,
	// classes, and blocks remain reachable.
	NodeOther NodeType = "Other"
)

// Location represents the position of a node in the source code, both
// as line/column (for diagnostics) and as byte offsets (for the
// rewriter's splice operations).
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	StartByte int
	EndByte   int
}

// String returns a string representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node.
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name holds an identifier's text or a specifier's local binding.
	Name string

	// Raw holds a string/template literal's raw source text, quotes
	// included.
	Raw string

	// Arguments holds a call expression's argument list.
	Arguments []*Node
	// Callee is the expression being called.
	Callee *Node

	// Object/Property describe a member expression (module.exports).
	Object   *Node
	Property *Node

	// Import/export fields.
	Source      *Node   // module specifier literal
	Specifiers  []*Node // individual imported/exported bindings
	Declaration *Node   // export declaration (re-export target)
	Imported    *Node   // imported name in a specifier
	Local       *Node   // local binding name in a specifier

	IsDefault  bool
	IsWildcard bool
	IsTypeOnly bool
}

// NewNode creates a new AST node.
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild adds a child node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls visitor for each node.
// Returning false from visitor stops traversal of that branch.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	for _, spec := range n.Specifiers {
		spec.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	if n.Property != nil {
		n.Property.Walk(visitor)
	}
	if n.Source != nil {
		n.Source.Walk(visitor)
	}
	if n.Declaration != nil {
		n.Declaration.Walk(visitor)
	}
	if n.Imported != nil {
		n.Imported.Walk(visitor)
	}
	if n.Local != nil {
		n.Local.Walk(visitor)
	}
}

// String returns a string representation of the node.
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}
