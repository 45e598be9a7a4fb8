package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Parser wraps a tree-sitter parser for JavaScript/TypeScript.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	isTS     bool
}

// NewParser creates a new JavaScript parser.
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := javascript.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     false,
	}
}

// NewTypeScriptParser creates a new TypeScript/TSX parser.
func NewTypeScriptParser() *Parser {
	parser := sitter.NewParser()
	lang := tsx.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     true,
	}
}

// ParseFile parses a JavaScript/TypeScript file into our trimmed AST.
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}
	if rootNode.HasError() {
		return nil, fmt.Errorf("syntax errors in %s", filename)
	}

	builder := NewASTBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Parse parses JavaScript/TypeScript source code.
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript/TypeScript source code from a string.
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// IsTypeScript returns true if this parser is configured for TypeScript.
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close closes the parser and frees resources.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseForLanguage picks a JavaScript or TypeScript parser based on
// filename extension, parses source, and closes the parser.
func ParseForLanguage(filename string, source []byte) (*Node, error) {
	isTS := false
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if len(filename) >= len(ext) && filename[len(filename)-len(ext):] == ext {
			isTS = true
			break
		}
	}

	var p *Parser
	if isTS {
		p = NewTypeScriptParser()
	} else {
		p = NewParser()
	}
	defer p.Close()

	return p.ParseFile(filename, source)
}
