package transform

import "github.com/viant/testid/syntax"

// Tag records one attribute injected by a pass
type Tag struct {
	Component string `json:"component" yaml:"component"` // Enclosing component or RenderComponent
	Element   string `json:"element" yaml:"element"`     // Tag name of the annotated element
	Offset    uint32 `json:"offset" yaml:"offset"`       // Byte offset of the element
}

// maybeTag is consulted on element entry, before the depth increment
func (p *pass) maybeTag(node *syntax.Node) {
	current := p.scopes.active()
	if current == nil || current.depth != 0 || p.scopes.blocked() {
		return
	}
	if !node.HasPlainName() {
		// qualified tags are left alone and do not satisfy a fragment
		return
	}
	if node.HasAttribute(p.attributeName) {
		// an author supplied value satisfies the fragment too
		p.scopes.fire()
		return
	}
	node.AppendAttribute(p.attributeName, current.name)
	p.tags = append(p.tags, Tag{Component: current.name, Element: node.Name, Offset: node.Start})
	p.scopes.fire()
}
