package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/viant/testid/syntax"
)

const (
	// RenderComponentName names scopes opened by render callbacks
	RenderComponentName = "RenderComponent"
	renderPrefix        = "render"
)

// isRenderCallback reports whether an inline function takes a plain identifier
// parameter named render..., e.g. (renderItem) => <Row/>
func isRenderCallback(node *syntax.Node) bool {
	if node.Kind != syntax.KindArrowFunction && node.Kind != syntax.KindFunctionExpression {
		return false
	}
	for _, param := range node.Params {
		if strings.HasPrefix(param, renderPrefix) {
			return true
		}
	}
	return false
}

// isComponentName checks the component naming convention
func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
