package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/viant/testid/syntax"
)

var extensions = map[string]syntax.Dialect{
	".js":  syntax.DialectJavaScript,
	".jsx": syntax.DialectJavaScript,
	".mjs": syntax.DialectJavaScript,
	".cjs": syntax.DialectJavaScript,
	".tsx": syntax.DialectTSX,
}

// DialectFor returns the dialect for a file name based on its extension
func DialectFor(filename string) (syntax.Dialect, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if dialect, ok := extensions[ext]; ok {
		return dialect, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, ext)
}

// Supported reports whether the file name has a supported extension
func Supported(filename string) bool {
	_, err := DialectFor(filename)
	return err == nil
}

func language(dialect syntax.Dialect) (*sitter.Language, error) {
	switch dialect {
	case syntax.DialectJavaScript:
		return javascript.GetLanguage(), nil
	case syntax.DialectTSX:
		return tsx.GetLanguage(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
}
