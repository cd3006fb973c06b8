package syntax

// Kind classifies a syntax node. The set is closed: anything the transform does not
// reason about is KindOther and only contributes children.
type Kind string

const (
	KindProgram             Kind = "Program"
	KindFunctionDeclaration Kind = "FunctionDeclaration"
	KindFunctionExpression  Kind = "FunctionExpression"
	KindArrowFunction       Kind = "ArrowFunction"
	KindVariableDeclarator  Kind = "VariableDeclarator"
	KindElement             Kind = "Element"
	KindFragment            Kind = "Fragment"
	KindOther               Kind = "Other"
)

// Node represents a parsed source element
type Node struct {
	Kind       Kind         // Node kind
	Type       string       // Grammar node type, e.g. "jsx_self_closing_element"
	Name       string       // Binding name (functions, declarators) or tag name (elements)
	NameType   string       // Element: grammar type of the tag name, e.g. "member_expression"
	Params     []string     // Plain identifier parameters of functions
	Attributes []*Attribute // Element attributes in source order
	Init       *Node        // Declarator initializer
	Children   []*Node      // Child nodes in source order
	Start      uint32       // Start byte offset
	End        uint32       // End byte offset
	InsertAt   uint32       // Element: offset where new attributes are spliced
}

// Attribute represents a markup attribute
type Attribute struct {
	Name       string // Attribute name, empty for spread attributes
	Value      string // Unquoted string literal value, if any
	Spread     bool   // {...props}
	Expression *Node  // Expression or markup value, e.g. icon={<Icon/>}
	Start      uint32
	End        uint32
	Injected   bool // Added by a transform pass
}

// HasPlainName reports whether an element's tag is a bare identifier such as div or
// Button, as opposed to Tabs.Panel or svg:rect
func (n *Node) HasPlainName() bool {
	switch n.NameType {
	case "member_expression", "nested_identifier", "jsx_namespace_name":
		return false
	}
	return true
}

// LookupAttribute returns the first attribute with the given name
func (n *Node) LookupAttribute(name string) *Attribute {
	for _, attr := range n.Attributes {
		if attr.Spread {
			continue
		}
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// HasAttribute checks if the node carries an attribute with the given name
func (n *Node) HasAttribute(name string) bool {
	return n.LookupAttribute(name) != nil
}

// AppendAttribute adds an injected string attribute after existing ones
func (n *Node) AppendAttribute(name, value string) *Attribute {
	attr := &Attribute{
		Name:     name,
		Value:    value,
		Start:    n.InsertAt,
		End:      n.InsertAt,
		Injected: true,
	}
	n.Attributes = append(n.Attributes, attr)
	return attr
}

// Walk visits the node and its descendants in document order. Returning false from
// fn skips the node's descendants.
func (n *Node) Walk(fn func(node *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, attr := range n.Attributes {
		attr.Expression.Walk(fn)
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
	n.Init.Walk(fn)
}
