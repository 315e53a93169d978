package parser

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SyntaxError describes the first syntax problem found in a file
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Parser wraps tree-sitter parser for Python. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new Python parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := python.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses a Python file. Sources that are not valid UTF-8, contain
// NUL bytes or have any syntax error are rejected with a *SyntaxError.
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	source = bytes.TrimPrefix(source, utf8BOM)

	if !utf8.Valid(source) {
		return nil, &SyntaxError{File: filename, Message: "source is not valid UTF-8"}
	}
	if i := bytes.IndexByte(source, 0); i >= 0 {
		line := bytes.Count(source[:i], []byte("\n")) + 1
		return nil, &SyntaxError{File: filename, Line: line, Message: "source contains a null byte"}
	}

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}
	if rootNode.HasError() {
		return nil, firstSyntaxError(filename, rootNode)
	}

	// Build our internal AST from tree-sitter CST
	builder := NewASTBuilder(filename, source)
	ast := builder.Build(rootNode)

	return ast, nil
}

// Parse parses Python source code
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses Python source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseSource parses one file with a short-lived parser
func ParseSource(filename string, source []byte) (*Node, error) {
	parser := NewParser()
	defer parser.Close()

	return parser.ParseFile(filename, source)
}

// firstSyntaxError locates the first ERROR or MISSING node in document order
func firstSyntaxError(filename string, root *sitter.Node) *SyntaxError {
	var found *sitter.Node
	var search func(n *sitter.Node)
	search = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			search(n.Child(i))
		}
	}
	search(root)

	if found == nil {
		return &SyntaxError{File: filename, Message: "invalid syntax"}
	}

	msg := "invalid syntax"
	if found.IsMissing() {
		msg = fmt.Sprintf("missing %q", found.Type())
	}
	return &SyntaxError{
		File:    filename,
		Line:    int(found.StartPoint().Row) + 1,
		Column:  int(found.StartPoint().Column),
		Message: msg,
	}
}
