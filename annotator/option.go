package annotator

import (
	"log/slog"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/testid/cache"
	"github.com/viant/testid/parser"
)

type Option func(*Annotator)

// MatcherFn decides whether a walked file or directory is processed; returning false
// for a directory skips it
type MatcherFn func(info os.FileInfo) bool

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(a *Annotator) {
		a.fs = fs
	}
}

// WithMatcher sets the file matcher used by AnnotateDir
func WithMatcher(matcher MatcherFn) Option {
	return func(a *Annotator) {
		a.match = matcher
	}
}

// WithConcurrency sets the number of files processed in parallel
func WithConcurrency(n int) Option {
	return func(a *Annotator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithDryRun computes results without writing any file or cache entry
func WithDryRun() Option {
	return func(a *Annotator) {
		a.dryRun = true
	}
}

// WithOutput writes annotated files under baseURL, mirroring the source layout,
// instead of rewriting them in place
func WithOutput(baseURL string) Option {
	return func(a *Annotator) {
		a.outputURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCache enables skipping files recorded as already annotated
func WithCache(store *cache.Store) Option {
	return func(a *Annotator) {
		a.cache = store
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Annotator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithContinueOnError records failing files in the report instead of aborting the run
func WithContinueOnError() Option {
	return func(a *Annotator) {
		a.continueOnError = true
	}
}

// WithParser sets the parser
func WithParser(p *parser.Parser) Option {
	return func(a *Annotator) {
		if p != nil {
			a.parser = p
		}
	}
}

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".next":        true,
}

// JSXFiles matches JSX/TSX capable sources and skips dependency and build directories
func JSXFiles(info os.FileInfo) bool {
	name := info.Name()
	if info.IsDir() {
		return !skipDirs[name]
	}
	if strings.HasSuffix(name, ".d.ts") || strings.Contains(name, ".min.") {
		return false
	}
	return parser.Supported(name)
}
