package frontend

import (
	"fmt"
	"os"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"classbridge/internal/source"
)

// Parser turns C++ files into SourceUnits.
type Parser struct {
	parser   *tree_sitter.Parser
	language *tree_sitter.Language
}

// NewParser creates a parser with the C++ grammar loaded.
func NewParser() (*Parser, error) {
	language := tree_sitter.NewLanguage(tree_sitter_cpp.Language())

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("loading C++ grammar: %w", err)
	}

	return &Parser{parser: parser, language: language}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// ParseFile reads and parses one file.
func (p *Parser) ParseFile(path string) (*source.SourceUnit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return p.Parse(path, content)
}

// Parse parses one file's content into an immutable SourceUnit.
func (p *Parser) Parse(path string, content []byte) (*source.SourceUnit, error) {
	// Tree-sitter mutates input buffers through CGO; parse a copy.
	buf := make([]byte, len(content))
	copy(buf, content)

	tree := p.parser.Parse(buf, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s: tree-sitter returned no tree", path)
	}
	defer tree.Close()

	unit := &source.SourceUnit{Path: path}

	root := tree.RootNode()
	p.collectTypes(root, nil, path, buf, unit)

	return unit, nil
}

// collectTypes walks declarations, tracking the namespace path.
func (p *Parser) collectTypes(node *tree_sitter.Node, ns source.NamespacePath, path string, content []byte, unit *source.SourceUnit) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "namespace_definition":
			childNS := ns

			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				for _, segment := range strings.Split(text(nameNode, content), "::") {
					childNS = childNS.Child(segment)
				}
			}

			if body := child.ChildByFieldName("body"); body != nil {
				p.collectTypes(body, childNS, path, content, unit)
			}

		case "class_specifier", "struct_specifier":
			if decl := p.buildType(child, ns, path, content); decl != nil {
				unit.Types = append(unit.Types, decl)
			}

		case "declaration", "expression_statement":
			// A "class X { ... };" at top level parses as a declaration
			// wrapping the specifier.
			for j := uint(0); j < child.ChildCount(); j++ {
				inner := child.Child(j)
				if inner.Kind() == "class_specifier" || inner.Kind() == "struct_specifier" {
					if decl := p.buildType(inner, ns, path, content); decl != nil {
						unit.Types = append(unit.Types, decl)
					}
				}
			}
		}
	}
}

// buildType extracts one class or struct declaration. Forward
// declarations (no body) are skipped.
func (p *Parser) buildType(node *tree_sitter.Node, ns source.NamespacePath, path string, content []byte) *source.TypeDeclaration {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	decl := &source.TypeDeclaration{
		Name: source.QualifiedName{
			Namespace: ns,
			Name:      text(nameNode, content),
		},
		Loc: location(node, path),
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "base_class_clause" {
			decl.Bases = parseBases(child, content)
		}
	}

	// Members default to private in classes, public in structs.
	access := "private"
	if node.Kind() == "struct_specifier" {
		access = "public"
	}

	var borrowed []string

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)

		switch child.Kind() {
		case "access_specifier":
			access = strings.TrimSuffix(text(child, content), ":")

		case "field_declaration", "function_definition", "declaration":
			member, borrowedField, ok := p.parseMember(child, decl.Name.Name, access, path, content)
			if !ok {
				continue
			}

			decl.Members = append(decl.Members, member)
			if borrowedField != "" {
				borrowed = append(borrowed, borrowedField)
			}
		}
	}

	for _, m := range decl.Members {
		if m.IsPureVirtual {
			decl.IsAbstract = true

			break
		}
	}

	markOwnership(decl, borrowed)

	return decl
}

// parseBases extracts base type references from a base_class_clause.
func parseBases(node *tree_sitter.Node, content []byte) []source.QualifiedName {
	var bases []source.QualifiedName

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "type_identifier", "qualified_identifier", "template_type":
			bases = append(bases, source.ParseQualifiedName(text(child, content)))
		}
	}

	return bases
}

// text returns a node's source text.
func text(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// location converts a node position to a 1-based source location.
func location(node *tree_sitter.Node, path string) source.Location {
	point := node.StartPosition()

	return source.Location{
		File:   path,
		Line:   uint32(point.Row) + 1,
		Column: uint32(point.Column) + 1,
	}
}
