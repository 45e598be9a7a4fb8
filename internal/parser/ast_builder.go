package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from a tree-sitter CST, keeping
// only the node kinds a move engine needs: imports, exports, dynamic
// imports, require calls, and TypeScript import-equals. Every other
// node kind collapses to NodeOther with its children preserved, so a
// require() buried inside a function body is still reachable.
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder.
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node.
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node.
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode)
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return b.buildIdentifier(tsNode)
	case "string", "template_string":
		return b.buildLiteral(tsNode)
	case "import_statement":
		return b.buildImportStatement(tsNode)
	case "import_alias":
		return b.buildImportEqualsDeclaration(tsNode)
	case "export_statement":
		return b.buildExportStatement(tsNode)
	default:
		return b.buildGenericNode(tsNode)
	}
}

// buildProgram builds the top-level program node.
func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProgram)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			if childNode := b.buildNode(child); childNode != nil {
				node.AddChild(childNode)
			}
		}
	}

	return node
}

// buildExpressionStatement unwraps to the inner expression; a move
// engine never cares that a require(...) call sits in a statement.
func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != ";" {
			return b.buildNode(child)
		}
	}
	node := NewNode(NodeOther)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildCallExpression builds a call expression node: require(...),
// dynamic import(...), or any other call. Callers distinguish which by
// inspecting Callee.
func (b *ASTBuilder) buildCallExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCallExpression)
	node.Location = b.getLocation(tsNode)

	if funcNode := b.getChildByFieldName(tsNode, "function"); funcNode != nil && funcNode.Type() != "import" {
		node.Callee = b.buildNode(funcNode)
	} else {
		// `import(...)` is a call_expression whose callee is the bare
		// "import" keyword token (whether or not it sits in the
		// "function" field); it becomes an identifier named "import".
		for i := 0; i < int(tsNode.ChildCount()); i++ {
			child := tsNode.Child(i)
			if child != nil && child.Type() == "import" {
				callee := NewNode(NodeIdentifier)
				callee.Location = b.getLocation(child)
				callee.Name = "import"
				node.Callee = callee
				break
			}
		}
	}

	if argsNode := b.getChildByFieldName(tsNode, "arguments"); argsNode != nil {
		for i := 0; i < int(argsNode.ChildCount()); i++ {
			child := argsNode.Child(i)
			if child != nil && !b.isTrivia(child) && child.Type() != "(" && child.Type() != ")" && child.Type() != "," {
				if argNode := b.buildNode(child); argNode != nil {
					node.Arguments = append(node.Arguments, argNode)
				}
			}
		}
	}

	return node
}

// buildMemberExpression builds a member expression node (used to
// recognise module.exports assignments).
func (b *ASTBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMemberExpression)
	node.Location = b.getLocation(tsNode)

	if objNode := b.getChildByFieldName(tsNode, "object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if propNode := b.getChildByFieldName(tsNode, "property"); propNode != nil {
		node.Property = b.buildNode(propNode)
	}

	return node
}

// buildIdentifier builds an identifier node.
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildLiteral builds a string or template-string literal node,
// keeping the raw source text (quotes included) for the rewriter's
// byte-exact splicing.
func (b *ASTBuilder) buildLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStringLiteral)
	if tsNode.Type() == "template_string" {
		node.Type = NodeTemplateLiteral
	}
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

// buildImportStatement builds an ESM import declaration node.
func (b *ASTBuilder) buildImportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportDeclaration)
	node.Location = b.getLocation(tsNode)

	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "import_clause":
			b.extractImportClause(child, node)

		case "import_require_clause":
			// `import x = require("mod")` is an import_statement holding
			// an import_require_clause; it becomes an import-equals node.
			node.Type = NodeImportEqualsDeclaration
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild != nil && grandchild.Type() == "identifier" {
					node.Name = grandchild.Content(b.source)
					break
				}
			}
			if sourceNode := b.getChildByFieldName(child, "source"); sourceNode != nil {
				node.Source = b.buildNode(sourceNode)
			}

		case "namespace_import":
			specNode := NewNode(NodeImportNamespaceSpecifier)
			specNode.Location = b.getLocation(child)
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild != nil && grandchild.Type() == "identifier" {
					specNode.Name = grandchild.Content(b.source)
				}
			}
			node.Specifiers = append(node.Specifiers, specNode)

		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				importSpec := child.Child(j)
				if importSpec != nil && importSpec.Type() == "import_specifier" {
					if specNode := b.buildImportSpecifier(importSpec); specNode != nil {
						node.Specifiers = append(node.Specifiers, specNode)
					}
				}
			}
		}
	}

	return node
}

// extractImportClause extracts specifiers from an import_clause node:
// the default and/or namespace/named portion of an import statement.
func (b *ASTBuilder) extractImportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "identifier":
			specNode := NewNode(NodeImportDefaultSpecifier)
			specNode.Location = b.getLocation(child)
			specNode.Name = child.Content(b.source)
			node.Specifiers = append(node.Specifiers, specNode)

		case "namespace_import":
			specNode := NewNode(NodeImportNamespaceSpecifier)
			specNode.Location = b.getLocation(child)
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild != nil && grandchild.Type() == "identifier" {
					specNode.Name = grandchild.Content(b.source)
				}
			}
			node.Specifiers = append(node.Specifiers, specNode)

		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				importSpec := child.Child(j)
				if importSpec != nil && importSpec.Type() == "import_specifier" {
					if specNode := b.buildImportSpecifier(importSpec); specNode != nil {
						node.Specifiers = append(node.Specifiers, specNode)
					}
				}
			}
		}
	}
}

// buildImportSpecifier builds a single "name" or "name as alias" entry
// inside a named-import clause.
func (b *ASTBuilder) buildImportSpecifier(tsNode *sitter.Node) *Node {
	specNode := NewNode(NodeImportSpecifier)
	specNode.Location = b.getLocation(tsNode)

	var identifiers []*sitter.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && child.Type() == "identifier" {
			identifiers = append(identifiers, child)
		}
	}

	switch len(identifiers) {
	case 1:
		specNode.Name = identifiers[0].Content(b.source)
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = specNode.Name
	case 2:
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = identifiers[0].Content(b.source)
		specNode.Name = identifiers[1].Content(b.source)
	}

	return specNode
}

// buildImportEqualsDeclaration builds an import_alias statement into an
// import-equals node, recording a string source only when its value
// field is an external_module_reference. The common
// `import x = require("mod")` form is handled in buildImportStatement.
func (b *ASTBuilder) buildImportEqualsDeclaration(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportEqualsDeclaration)
	node.Location = b.getLocation(tsNode)

	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}

	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil && valueNode.Type() == "external_module_reference" {
		for i := 0; i < int(valueNode.ChildCount()); i++ {
			child := valueNode.Child(i)
			if child != nil && child.Type() == "string" {
				node.Source = b.buildNode(child)
			}
		}
	}

	return node
}

// buildExportStatement builds an ESM export declaration node: named,
// default, or export-all (wildcard), with or without a re-export
// source.
func (b *ASTBuilder) buildExportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExportNamedDeclaration)
	node.Location = b.getLocation(tsNode)

	hasDefault := false
	hasWildcard := false

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "default":
			hasDefault = true
		case "*":
			hasWildcard = true
		case "export_clause":
			b.extractExportClause(child, node)
		}
	}

	if hasDefault {
		node.Type = NodeExportDefaultDeclaration
		node.IsDefault = true
	} else if hasWildcard {
		node.Type = NodeExportAllDeclaration
		node.IsWildcard = true
	}

	if declNode := b.getChildByFieldName(tsNode, "declaration"); declNode != nil {
		node.Declaration = b.buildNode(declNode)
	}
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Declaration = b.buildNode(valueNode)
	}
	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	return node
}

// extractExportClause extracts specifiers from an export_clause node:
// `export { foo, bar }` or `export { foo as bar }`, including the
// re-export form `export { foo } from './mod'`.
func (b *ASTBuilder) extractExportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil || child.Type() != "export_specifier" {
			continue
		}

		specNode := NewNode(NodeExportSpecifier)
		specNode.Location = b.getLocation(child)

		var identifiers []*sitter.Node
		for j := 0; j < int(child.ChildCount()); j++ {
			grandchild := child.Child(j)
			if grandchild != nil && grandchild.Type() == "identifier" {
				identifiers = append(identifiers, grandchild)
			}
		}

		switch len(identifiers) {
		case 1:
			specNode.Name = identifiers[0].Content(b.source)
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = specNode.Name
		case 2:
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = identifiers[0].Content(b.source)
			specNode.Name = identifiers[1].Content(b.source)
		}

		node.Specifiers = append(node.Specifiers, specNode)
	}
}

// buildGenericNode builds a generic node for node kinds this package
// does not special-case, recursing into its children so that imports,
// dynamic imports, and require calls nested inside functions, classes,
// and blocks stay reachable.
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeOther)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			if childNode := b.buildNode(child); childNode != nil {
				node.AddChild(childNode)
			}
		}
	}

	return node
}

// getLocation extracts line/column and byte-offset location
// information from a tree-sitter node.
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
		StartByte: int(tsNode.StartByte()),
		EndByte:   int(tsNode.EndByte()),
	}
}

// getChildByFieldName gets a child node by field name.
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (comments, etc.).
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" || nodeType == "line_comment" || nodeType == "block_comment" || nodeType == ""
}
