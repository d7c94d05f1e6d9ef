package frontend

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"classbridge/internal/source"
)

// parseMember extracts one data or function member. The string return
// names a field handed out by a borrowing accessor, if the member is
// one. The final return is false for nodes that carry no member
// (friend declarations, using declarations, bare semicolons).
func (p *Parser) parseMember(node *tree_sitter.Node, typeName, access, path string, content []byte) (source.MemberDeclaration, string, bool) {
	member := source.MemberDeclaration{
		Access: access,
		Loc:    location(node, path),
	}

	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return member, "", false
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "virtual":
			member.IsVirtual = true
		case "storage_class_specifier":
			if text(child, content) == "static" {
				member.IsStatic = true
			}
		case "default_method_clause":
			member.IsDefaulted = true
		}
	}

	funcDecl := findFunctionDeclarator(declarator)
	if funcDecl == nil {
		m, ok := parseField(member, node, declarator, content)

		return m, "", ok
	}

	nameNode := funcDecl.ChildByFieldName("declarator")
	if nameNode == nil {
		return member, "", false
	}

	member.Name = text(nameNode, content)
	member.Params = parseParams(funcDecl.ChildByFieldName("parameters"), content)

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		// "virtual ... = 0;" marks a pure virtual method.
		if child.Kind() == "number_literal" && text(child, content) == "0" {
			member.IsPureVirtual = true
		}
	}

	for i := uint(0); i < funcDecl.ChildCount(); i++ {
		child := funcDecl.Child(i)
		if child.Kind() == "virtual_specifier" && text(child, content) == "override" {
			member.IsOverride = true
		}
	}

	// Constructors and destructors have no return type node.
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		member.ReturnType = typeRef(node, typeNode, declarator, content)
	}

	borrowed := ""
	if body := node.ChildByFieldName("body"); body != nil {
		member.HasBody = true
		borrowed = recordBodyFacts(&member, typeName, text(body, content))
	}

	if member.IsDefaulted && strings.HasPrefix(member.Name, "~") {
		// A defaulted destructor behaves as if it had an empty body.
		member.HasBody = true
	}

	return member, borrowed, true
}

// parseField finishes a data member.
func parseField(member source.MemberDeclaration, node, declarator *tree_sitter.Node, content []byte) (source.MemberDeclaration, bool) {
	name, isPointer, isReference := unwrapDeclarator(declarator, content)
	if name == "" {
		return member, false
	}

	member.Name = name
	member.IsFieldDecl = true

	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return member, false
	}

	member.FieldType = typeRef(node, typeNode, declarator, content)
	member.FieldType.IsPointer = isPointer
	member.FieldType.IsReference = isReference

	return member, true
}

// typeRef builds a TypeRef from a member's type node and declarator
// shape.
func typeRef(node, typeNode, declarator *tree_sitter.Node, content []byte) source.TypeRef {
	ref := source.TypeRef{Spelling: text(typeNode, content)}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "type_qualifier" && text(child, content) == "const" {
			ref.IsConst = true
		}
	}

	_, ref.IsPointer, ref.IsReference = unwrapDeclarator(declarator, content)

	return ref
}

// findFunctionDeclarator digs through pointer and reference wrappers to
// the function_declarator, if the declarator describes a function.
func findFunctionDeclarator(node *tree_sitter.Node) *tree_sitter.Node {
	switch node.Kind() {
	case "function_declarator":
		return node
	case "pointer_declarator", "reference_declarator":
		if inner := node.ChildByFieldName("declarator"); inner != nil {
			return findFunctionDeclarator(inner)
		}

		// reference_declarator has no declarator field; the wrapped
		// node is a plain child.
		for i := uint(0); i < node.ChildCount(); i++ {
			if found := findFunctionDeclarator(node.Child(i)); found != nil {
				return found
			}
		}
	}

	return nil
}

// unwrapDeclarator strips pointer, reference, array, and initializer
// wrappers off a field declarator, returning the identifier plus the
// pointer and reference flags it passed through.
func unwrapDeclarator(node *tree_sitter.Node, content []byte) (name string, isPointer, isReference bool) {
	for node != nil {
		switch node.Kind() {
		case "identifier", "field_identifier", "destructor_name", "operator_name":
			return text(node, content), isPointer, isReference

		case "pointer_declarator":
			isPointer = true
		case "reference_declarator":
			isReference = true
		case "array_declarator":
			isPointer = true
		case "init_declarator":
			// fall through to the wrapped declarator
		default:
			return "", isPointer, isReference
		}

		next := node.ChildByFieldName("declarator")
		if next == nil {
			next = lastNamedChild(node)
		}

		node = next
	}

	return "", isPointer, isReference
}

// lastNamedChild returns the last named child, used for declarator
// kinds without a declarator field.
func lastNamedChild(node *tree_sitter.Node) *tree_sitter.Node {
	for i := node.ChildCount(); i > 0; i-- {
		child := node.Child(i - 1)
		if child.IsNamed() {
			return child
		}
	}

	return nil
}

// parseParams extracts the ordered parameter list.
func parseParams(node *tree_sitter.Node, content []byte) []source.Param {
	if node == nil {
		return nil
	}

	var params []source.Param

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "parameter_declaration" && child.Kind() != "optional_parameter_declaration" {
			continue
		}

		param := source.Param{}

		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			param.Type.Spelling = text(typeNode, content)
		}

		for j := uint(0); j < child.ChildCount(); j++ {
			if child.Child(j).Kind() == "type_qualifier" && text(child.Child(j), content) == "const" {
				param.Type.IsConst = true
			}
		}

		if declNode := child.ChildByFieldName("declarator"); declNode != nil {
			param.Name, param.Type.IsPointer, param.Type.IsReference = unwrapDeclarator(declNode, content)
		}

		params = append(params, param)
	}

	return params
}
