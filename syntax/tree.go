package syntax

import "fmt"

// Dialect identifies the source grammar of a tree
type Dialect string

const (
	DialectJavaScript Dialect = "javascript" // .js, .jsx, .mjs, .cjs
	DialectTSX        Dialect = "tsx"        // .tsx
)

// Tree represents one parsed source unit
type Tree struct {
	Source  []byte
	Dialect Dialect
	Root    *Node
}

// Injected returns nodes carrying attributes added by a transform pass, in document order
func (t *Tree) Injected() []*Node {
	var result []*Node
	t.Root.Walk(func(node *Node) bool {
		for _, attr := range node.Attributes {
			if attr.Injected {
				result = append(result, node)
				break
			}
		}
		return true
	})
	return result
}

// Position returns the 1-based line and column of a byte offset
func (t *Tree) Position(offset uint32) (line, column int) {
	line, column = 1, 1
	for i := 0; i < len(t.Source) && i < int(offset); i++ {
		if t.Source[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// Location formats an offset as line:column
func (t *Tree) Location(offset uint32) string {
	line, column := t.Position(offset)
	return fmt.Sprintf("%d:%d", line, column)
}
