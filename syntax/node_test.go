package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/testid/syntax"
)

func TestNode_AppendAttribute(t *testing.T) {
	node := &syntax.Node{
		Kind:     syntax.KindElement,
		Name:     "Card",
		InsertAt: 5,
		Attributes: []*syntax.Attribute{
			{Spread: true},
			{Name: "className", Value: "card"},
		},
	}

	assert.False(t, node.HasAttribute("data-testid"))
	attr := node.AppendAttribute("data-testid", "Card")
	assert.True(t, node.HasAttribute("data-testid"))
	assert.True(t, attr.Injected)
	assert.EqualValues(t, 5, attr.Start)
	assert.Equal(t, "className", node.Attributes[1].Name)
	assert.Same(t, attr, node.Attributes[2])
}

func TestNode_Walk(t *testing.T) {
	icon := &syntax.Node{Kind: syntax.KindElement, Name: "Icon"}
	label := &syntax.Node{Kind: syntax.KindElement, Name: "Label"}
	button := &syntax.Node{
		Kind:       syntax.KindElement,
		Name:       "Button",
		Attributes: []*syntax.Attribute{{Name: "icon", Expression: icon}},
		Children:   []*syntax.Node{label},
	}
	decl := &syntax.Node{Kind: syntax.KindVariableDeclarator, Name: "Toolbar", Init: button}

	var names []string
	decl.Walk(func(node *syntax.Node) bool {
		if node.Kind == syntax.KindElement {
			names = append(names, node.Name)
		}
		return true
	})
	assert.Equal(t, []string{"Button", "Icon", "Label"}, names)

	names = names[:0]
	decl.Walk(func(node *syntax.Node) bool {
		if node.Kind == syntax.KindElement {
			names = append(names, node.Name)
			return false
		}
		return true
	})
	assert.Equal(t, []string{"Button"}, names)
}

func TestTree_Position(t *testing.T) {
	tree := &syntax.Tree{Source: []byte("ab\ncd\nef")}
	tests := []struct {
		offset uint32
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
	}
	for _, tt := range tests {
		line, column := tree.Position(tt.offset)
		assert.Equal(t, tt.line, line, "line of %d", tt.offset)
		assert.Equal(t, tt.column, column, "column of %d", tt.offset)
	}
	assert.Equal(t, "2:1", tree.Location(3))
}

func TestNode_HasPlainName(t *testing.T) {
	tests := []struct {
		nameType string
		expect   bool
	}{
		{"identifier", true},
		{"", true},
		{"member_expression", false},
		{"nested_identifier", false},
		{"jsx_namespace_name", false},
	}
	for _, tt := range tests {
		t.Run(tt.nameType, func(t *testing.T) {
			node := &syntax.Node{Kind: syntax.KindElement, NameType: tt.nameType}
			assert.Equal(t, tt.expect, node.HasPlainName())
		})
	}
}
