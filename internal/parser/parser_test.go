package parser

import "testing"

func TestParseNamedImport(t *testing.T) {
	code := `import { useState, useEffect as useFx } from 'react';`

	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ast.Children) == 0 {
		t.Fatal("expected at least one top-level statement")
	}

	imp := ast.Children[0]
	if imp.Type != NodeImportDeclaration {
		t.Fatalf("expected NodeImportDeclaration, got %s", imp.Type)
	}
	if imp.Source == nil || imp.Source.Raw != "'react'" {
		t.Errorf("expected source 'react', got %+v", imp.Source)
	}
	if len(imp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(imp.Specifiers))
	}
	if imp.Specifiers[0].Name != "useState" {
		t.Errorf("expected useState, got %s", imp.Specifiers[0].Name)
	}
	if imp.Specifiers[1].Name != "useFx" || imp.Specifiers[1].Imported.Name != "useEffect" {
		t.Errorf("expected useEffect renamed to useFx, got %+v", imp.Specifiers[1])
	}
}

func TestParseDefaultAndNamespaceImport(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`import React, * as ReactNS from 'react';`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	imp := ast.Children[0]
	if len(imp.Specifiers) != 2 {
		t.Fatalf("expected default + namespace specifiers, got %d", len(imp.Specifiers))
	}
	if imp.Specifiers[0].Type != NodeImportDefaultSpecifier || imp.Specifiers[0].Name != "React" {
		t.Errorf("expected default specifier React, got %+v", imp.Specifiers[0])
	}
	if imp.Specifiers[1].Type != NodeImportNamespaceSpecifier || imp.Specifiers[1].Name != "ReactNS" {
		t.Errorf("expected namespace specifier ReactNS, got %+v", imp.Specifiers[1])
	}
}

func TestParseReExportFrom(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`export { a, b as c } from './lib';`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportNamedDeclaration {
		t.Fatalf("expected NodeExportNamedDeclaration, got %s", exp.Type)
	}
	if exp.Source == nil || exp.Source.Raw != "'./lib'" {
		t.Errorf("expected source './lib', got %+v", exp.Source)
	}
	if len(exp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(exp.Specifiers))
	}
	if exp.Specifiers[1].Local.Name != "b" || exp.Specifiers[1].Name != "c" {
		t.Errorf("expected b renamed to c, got %+v", exp.Specifiers[1])
	}
}

func TestParseExportAll(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`export * from './lib';`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportAllDeclaration || !exp.IsWildcard {
		t.Fatalf("expected NodeExportAllDeclaration, got %s", exp.Type)
	}
	if exp.Source == nil || exp.Source.Raw != "'./lib'" {
		t.Errorf("expected source './lib', got %+v", exp.Source)
	}
}

func TestParseExportDefault(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`export default foo;`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	exp := ast.Children[0]
	if exp.Type != NodeExportDefaultDeclaration || !exp.IsDefault {
		t.Fatalf("expected NodeExportDefaultDeclaration, got %s", exp.Type)
	}
}

func TestParseRequireCall(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`const lib = require('./lib');`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var call *Node
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeCallExpression && n.Callee != nil && n.Callee.Name == "require" {
			call = n
			return false
		}
		return true
	})

	if call == nil {
		t.Fatal("expected to find a require() call")
	}
	if len(call.Arguments) != 1 || call.Arguments[0].Raw != "'./lib'" {
		t.Errorf("expected single './lib' argument, got %+v", call.Arguments)
	}
}

func TestParseDynamicImport(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`async function load() { const m = await import('./lib'); }`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var call *Node
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeCallExpression && n.Callee != nil && n.Callee.Name == "import" {
			call = n
			return false
		}
		return true
	})

	if call == nil {
		t.Fatal("expected to find a dynamic import() call nested inside the function body")
	}
	if len(call.Arguments) != 1 || call.Arguments[0].Raw != "'./lib'" {
		t.Errorf("expected single './lib' argument, got %+v", call.Arguments)
	}
}

func TestParseImportEquals(t *testing.T) {
	p := NewTypeScriptParser()
	defer p.Close()

	ast, err := p.ParseString(`import fs = require('fs');`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var decl *Node
	ast.Walk(func(n *Node) bool {
		if n.Type == NodeImportEqualsDeclaration {
			decl = n
			return false
		}
		return true
	})

	if decl == nil {
		t.Fatal("expected to find an import-equals declaration")
	}
	if decl.Name != "fs" {
		t.Errorf("expected binding name fs, got %q", decl.Name)
	}
	if decl.Source == nil || decl.Source.Raw != "'fs'" {
		t.Errorf("expected source 'fs', got %+v", decl.Source)
	}
}

func TestByteOffsetsCoverLiteralIncludingQuotes(t *testing.T) {
	p := NewParser()
	defer p.Close()

	code := `import a from "./a";`
	ast, err := p.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	source := ast.Children[0].Source
	if source == nil {
		t.Fatal("expected a source literal")
	}
	got := code[source.Location.StartByte:source.Location.EndByte]
	if got != `"./a"` {
		t.Errorf("expected byte range to cover the quoted literal, got %q", got)
	}
}
