package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/testid/syntax"
)

var (
	// ErrSyntax is returned when the grammar reports an error or missing node
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupportedDialect is returned for file types without a grammar
	ErrUnsupportedDialect = errors.New("unsupported dialect")
	// ErrTooLarge is returned when the source exceeds the configured size limit
	ErrTooLarge = errors.New("source too large")
)

// DefaultMaxFileSize is the largest source accepted unless WithMaxFileSize overrides it
const DefaultMaxFileSize = 10 * 1024 * 1024

// Option configures a Parser
type Option func(*Parser)

// WithMaxFileSize sets the maximum source size accepted by Parse
func WithMaxFileSize(bytes int) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithTolerant keeps trees that contain grammar errors instead of failing
func WithTolerant() Option {
	return func(p *Parser) {
		p.tolerant = true
	}
}

// Parser builds syntax trees from JSX and TSX source with tree-sitter.
// A Parser is safe for concurrent use: every Parse call allocates its own tree-sitter parser.
type Parser struct {
	maxFileSize int
	tolerant    bool
}

// New creates a Parser
func New(opts ...Option) *Parser {
	p := &Parser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses source code of the given dialect
func (p *Parser) Parse(ctx context.Context, src []byte, dialect syntax.Dialect) (*syntax.Tree, error) {
	if len(src) > p.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(src), p.maxFileSize)
	}
	lang, err := language(dialect)
	if err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return &syntax.Tree{Source: src, Dialect: dialect, Root: &syntax.Node{Kind: syntax.KindProgram, Type: "program"}}, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() && !p.tolerant {
		if errNode := findError(rootNode); errNode != nil {
			point := errNode.StartPoint()
			return nil, fmt.Errorf("%w at %d:%d", ErrSyntax, point.Row+1, point.Column+1)
		}
		return nil, ErrSyntax
	}

	result := &syntax.Tree{Source: src, Dialect: dialect}
	b := &builder{src: src}
	result.Root = b.convert(rootNode)
	if result.Root == nil {
		result.Root = &syntax.Node{Kind: syntax.KindProgram, Type: rootNode.Type(), End: uint32(len(src))}
	}
	return result, nil
}

// ParseFile parses source selecting the dialect by file name
func (p *Parser) ParseFile(ctx context.Context, src []byte, filename string) (*syntax.Tree, error) {
	dialect, err := DialectFor(filename)
	if err != nil {
		return nil, err
	}
	tree, err := p.Parse(ctx, src, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return tree, nil
}

// findError returns the first ERROR or MISSING node in document order
func findError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := findError(child); found != nil {
			return found
		}
	}
	return nil
}
