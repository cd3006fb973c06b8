package transform

import "github.com/viant/testid/syntax"

// Transformer injects component test ids into markup trees. The configuration is
// immutable; pass state is allocated per call, so a Transformer can serve
// concurrent passes over distinct trees.
type Transformer struct {
	config Config
}

// New creates a Transformer, filling in missing options
func New(config Config) *Transformer {
	return &Transformer{config: config.WithDefaults()}
}

// AttributeName returns the configured attribute name
func (t *Transformer) AttributeName() string {
	return t.config.AttributeName
}

// Transform annotates the tree in place and returns it
func (t *Transformer) Transform(tree *syntax.Tree) *syntax.Tree {
	t.Annotate(tree)
	return tree
}

// Annotate annotates the tree in place and returns the injected tags in document order
func (t *Transformer) Annotate(tree *syntax.Tree) []Tag {
	if tree == nil || tree.Root == nil {
		return nil
	}
	p := &pass{attributeName: t.config.AttributeName}
	p.visit(tree.Root)
	if !p.scopes.empty() {
		panic("component scopes left open after pass")
	}
	return p.tags
}

// Transform annotates the tree with the given configuration
func Transform(tree *syntax.Tree, config Config) *syntax.Tree {
	return New(config).Transform(tree)
}

// Process is the host entry point: it decodes a raw options blob, falling back to
// defaults, and transforms the tree
func Process(tree *syntax.Tree, rawOptions string) *syntax.Tree {
	return Transform(tree, ParseConfig(rawOptions))
}

// pass holds the state of one traversal
type pass struct {
	attributeName string
	scopes        scopes
	tags          []Tag
}

func (p *pass) visit(node *syntax.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case syntax.KindFunctionDeclaration:
		if isComponentName(node.Name) {
			handle := p.scopes.enter(node.Name)
			p.visitChildren(node)
			p.scopes.exit(handle)
			return
		}
	case syntax.KindFunctionExpression, syntax.KindArrowFunction:
		if isRenderCallback(node) {
			handle := p.scopes.enter(RenderComponentName)
			p.visitChildren(node)
			p.scopes.exit(handle)
			return
		}
	case syntax.KindVariableDeclarator:
		p.visitChildren(node)
		if node.Init != nil && isComponentName(node.Name) &&
			(node.Init.Kind == syntax.KindArrowFunction || node.Init.Kind == syntax.KindFunctionExpression) {
			handle := p.scopes.enter(node.Name)
			p.visit(node.Init)
			p.scopes.exit(handle)
			return
		}
		p.visit(node.Init)
		return
	case syntax.KindElement:
		p.maybeTag(node)
		restore := p.scopes.descend()
		p.visitChildren(node)
		restore()
		return
	case syntax.KindFragment:
		restore := p.scopes.arm()
		p.visitChildren(node)
		restore()
		return
	}
	p.visitChildren(node)
}

// visitChildren visits attribute expressions and children; declarator
// initializers are handled by visit
func (p *pass) visitChildren(node *syntax.Node) {
	for _, attr := range node.Attributes {
		p.visit(attr.Expression)
	}
	for _, child := range node.Children {
		p.visit(child)
	}
}
