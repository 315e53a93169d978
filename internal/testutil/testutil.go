// Package testutil provides helper functions for testing pyreview components
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// CreateTestAST creates a test AST from Python source code
func CreateTestAST(t *testing.T, source string) *parser.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	ast, err := p.ParseFile("test.py", []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// CreateTestSource parses source and returns it with its SourceFile
func CreateTestSource(t *testing.T, source string) (*parser.Node, *domain.SourceFile) {
	t.Helper()
	return CreateTestAST(t, source), domain.NewSourceFile("test.py", []byte(source))
}

// CreateTestASTNoFail creates a test AST, returning the error instead of failing
func CreateTestASTNoFail(source string) (*parser.Node, error) {
	p := parser.NewParser()
	defer p.Close()
	return p.ParseString(source)
}

// FindFunctionInAST finds a function node by name in the AST
func FindFunctionInAST(ast *parser.Node, name string) *parser.Node {
	return findFirst(ast, func(n *parser.Node) bool {
		return n.IsFunction() && n.Name == name
	})
}

// FindClassInAST finds a class node by name in the AST
func FindClassInAST(ast *parser.Node, name string) *parser.Node {
	return findFirst(ast, func(n *parser.Node) bool {
		return n.IsClass() && n.Name == name
	})
}

// CountNodesOfType counts nodes of a specific type in an AST
func CountNodesOfType(ast *parser.Node, nodeType parser.NodeType) int {
	count := 0
	ast.Each(func(n *parser.Node) {
		if n.Type == nodeType {
			count++
		}
	})
	return count
}

// WriteFiles writes files relative to dir, creating parent directories
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func findFirst(ast *parser.Node, match func(*parser.Node) bool) *parser.Node {
	var found *parser.Node
	ast.Walk(func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
