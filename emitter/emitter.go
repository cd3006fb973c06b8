package emitter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/testid/syntax"
)

// Emitter is responsible for converting a syntax tree back to source code
type Emitter interface {
	Emit(tree *syntax.Tree) ([]byte, error)
}

// Splicer re-emits the original source and splices in attributes added by a
// transform pass. Everything else is reproduced byte for byte.
type Splicer struct{}

type insertion struct {
	offset uint32
	text   string
}

// Emit implements Emitter
func (s *Splicer) Emit(tree *syntax.Tree) ([]byte, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree was nil")
	}
	var insertions []insertion
	var err error
	tree.Root.Walk(func(node *syntax.Node) bool {
		for _, attr := range node.Attributes {
			if !attr.Injected {
				continue
			}
			if int(node.InsertAt) > len(tree.Source) || node.InsertAt < node.Start {
				err = fmt.Errorf("invalid insert offset %d for <%s> at %s", node.InsertAt, node.Name, tree.Location(node.Start))
				return false
			}
			insertions = append(insertions, insertion{offset: node.InsertAt, text: " " + Attribute(attr.Name, attr.Value)})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(insertions) == 0 {
		return tree.Source, nil
	}

	sort.SliceStable(insertions, func(i, j int) bool {
		return insertions[i].offset < insertions[j].offset
	})
	buffer := bytes.Buffer{}
	buffer.Grow(len(tree.Source) + 32*len(insertions))
	var offset uint32
	for _, ins := range insertions {
		buffer.Write(tree.Source[offset:ins.offset])
		buffer.WriteString(ins.text)
		offset = ins.offset
	}
	buffer.Write(tree.Source[offset:])
	return buffer.Bytes(), nil
}

// Attribute formats a string-literal JSX attribute
func Attribute(name, value string) string {
	quote := `"`
	if strings.Contains(value, `"`) {
		quote = `'`
	}
	return name + "=" + quote + value + quote
}

// Emit re-emits a tree with the default Splicer
func Emit(tree *syntax.Tree) ([]byte, error) {
	return (&Splicer{}).Emit(tree)
}
