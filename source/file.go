package source

import (
	"fmt"
	"path"

	"github.com/viant/testid/parser"
	"github.com/viant/testid/syntax"
)

// File represents one JSX or TSX source unit
type File struct {
	URL     string         // Storage URL or path
	Name    string         // Base name
	Dialect syntax.Dialect // Grammar selected by extension
	Content []byte         // Raw content
	Hash    uint64         // Content fingerprint
}

// NewFile creates a File, selecting the dialect and fingerprinting the content
func NewFile(URL string, content []byte) (*File, error) {
	name := path.Base(URL)
	dialect, err := parser.DialectFor(name)
	if err != nil {
		return nil, err
	}
	hash, err := Hash(content)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", URL, err)
	}
	return &File{
		URL:     URL,
		Name:    name,
		Dialect: dialect,
		Content: content,
		Hash:    hash,
	}, nil
}

// Changed reports whether content differs from the file's fingerprint
func (f *File) Changed(content []byte) (bool, error) {
	hash, err := Hash(content)
	if err != nil {
		return false, err
	}
	return hash != f.Hash, nil
}
