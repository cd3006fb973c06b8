package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/testid/syntax"
)

// builder converts tree-sitter nodes into syntax nodes
type builder struct {
	src []byte
}

func (b *builder) convert(n *sitter.Node) *syntax.Node {
	if n == nil || n.IsNull() {
		return nil
	}
	switch n.Type() {
	case "program":
		node := b.newNode(n, syntax.KindProgram)
		node.Children = b.convertChildren(n)
		return node
	case "function_declaration", "generator_function_declaration":
		return b.function(n, syntax.KindFunctionDeclaration)
	case "function", "function_expression", "generator_function":
		return b.function(n, syntax.KindFunctionExpression)
	case "arrow_function":
		return b.function(n, syntax.KindArrowFunction)
	case "variable_declarator":
		return b.declarator(n)
	case "export_statement":
		node := b.newNode(n, syntax.KindOther)
		node.Children = b.convertChildren(n)
		for _, child := range node.Children {
			// export default function Name() {} declares Name
			if child.Kind == syntax.KindFunctionExpression && child.Name != "" {
				child.Kind = syntax.KindFunctionDeclaration
			}
		}
		return node
	case "jsx_element":
		return b.element(n)
	case "jsx_fragment":
		node := b.newNode(n, syntax.KindFragment)
		node.Children = b.convertChildren(n)
		return node
	case "jsx_self_closing_element":
		node := b.newNode(n, syntax.KindElement)
		b.openingElement(n, node)
		return node
	}

	children := b.convertChildren(n)
	if len(children) == 0 {
		return nil
	}
	node := b.newNode(n, syntax.KindOther)
	node.Children = children
	return node
}

func (b *builder) newNode(n *sitter.Node, kind syntax.Kind) *syntax.Node {
	return &syntax.Node{
		Kind:  kind,
		Type:  n.Type(),
		Start: n.StartByte(),
		End:   n.EndByte(),
	}
}

func (b *builder) convertChildren(n *sitter.Node) []*syntax.Node {
	var children []*syntax.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := b.convert(n.NamedChild(i)); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// function handles declarations, expressions and arrows alike; the body and any
// parameter defaults become children
func (b *builder) function(n *sitter.Node, kind syntax.Kind) *syntax.Node {
	node := b.newNode(n, kind)
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		node.Name = nameNode.Content(b.src)
	}
	if paramNode := n.ChildByFieldName("parameter"); paramNode != nil {
		node.Params = b.params(paramNode)
	}
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		node.Params = b.params(paramsNode)
		if params := b.convert(paramsNode); params != nil {
			node.Children = append(node.Children, params)
		}
	}
	if bodyNode := n.ChildByFieldName("body"); bodyNode != nil {
		if body := b.convert(bodyNode); body != nil {
			node.Children = append(node.Children, body)
		}
	}
	return node
}

// params collects plain identifier parameters; destructured, defaulted and rest
// parameters are not plain identifiers
func (b *builder) params(n *sitter.Node) []string {
	switch n.Type() {
	case "identifier":
		return []string{n.Content(b.src)}
	case "required_parameter", "optional_parameter":
		if pattern := n.ChildByFieldName("pattern"); pattern != nil && pattern.Type() == "identifier" {
			if n.ChildByFieldName("value") == nil {
				return []string{pattern.Content(b.src)}
			}
		}
		return nil
	case "formal_parameters":
		var result []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			result = append(result, b.params(n.NamedChild(i))...)
		}
		return result
	}
	return nil
}

func (b *builder) declarator(n *sitter.Node) *syntax.Node {
	node := b.newNode(n, syntax.KindVariableDeclarator)
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		if nameNode.Type() == "identifier" {
			node.Name = nameNode.Content(b.src)
		} else if pattern := b.convert(nameNode); pattern != nil {
			node.Children = append(node.Children, pattern)
		}
	}
	if valueNode := n.ChildByFieldName("value"); valueNode != nil {
		node.Init = b.convert(valueNode)
	}
	return node
}

// element converts jsx_element; a nameless opening tag (<>) denotes a fragment
func (b *builder) element(n *sitter.Node) *syntax.Node {
	var opening *sitter.Node
	var children []*syntax.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "jsx_opening_element":
			opening = child
		case "jsx_closing_element":
		default:
			if converted := b.convert(child); converted != nil {
				children = append(children, converted)
			}
		}
	}

	if opening == nil || opening.ChildByFieldName("name") == nil {
		node := b.newNode(n, syntax.KindFragment)
		node.Children = children
		return node
	}
	node := b.newNode(n, syntax.KindElement)
	b.openingElement(opening, node)
	node.Children = children
	return node
}

// openingElement reads the tag name and attributes of an opening or self-closing tag
func (b *builder) openingElement(n *sitter.Node, node *syntax.Node) {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		node.Name = nameNode.Content(b.src)
		node.NameType = nameNode.Type()
		node.InsertAt = nameNode.EndByte()
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "jsx_attribute":
			node.Attributes = append(node.Attributes, b.attribute(child))
		case "jsx_expression":
			node.Attributes = append(node.Attributes, &syntax.Attribute{
				Spread:     true,
				Expression: b.convert(child),
				Start:      child.StartByte(),
				End:        child.EndByte(),
			})
		case "type_arguments":
		default:
			continue
		}
		if end := child.EndByte(); end > node.InsertAt {
			node.InsertAt = end
		}
	}
}

func (b *builder) attribute(n *sitter.Node) *syntax.Attribute {
	attr := &syntax.Attribute{Start: n.StartByte(), End: n.EndByte()}
	if n.NamedChildCount() == 0 {
		return attr
	}
	attr.Name = n.NamedChild(0).Content(b.src)
	if n.NamedChildCount() < 2 {
		return attr
	}
	value := n.NamedChild(1)
	if value.Type() == "string" {
		attr.Value = unquote(value.Content(b.src))
		return attr
	}
	attr.Expression = b.convert(value)
	return attr
}

func unquote(literal string) string {
	if len(literal) >= 2 {
		quote := literal[0]
		if (quote == '"' || quote == '\'') && literal[len(literal)-1] == quote {
			return literal[1 : len(literal)-1]
		}
	}
	return strings.TrimSpace(literal)
}
