// Package annotator applies the test id transform to source files held in any afs
// supported storage.
package annotator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/testid/cache"
	"github.com/viant/testid/emitter"
	"github.com/viant/testid/parser"
	"github.com/viant/testid/source"
	"github.com/viant/testid/transform"
	"golang.org/x/sync/errgroup"
)

// ErrNoSources is returned when a walk matched no source file
var ErrNoSources = errors.New("no JSX sources found")

const fileMode = 0o644

// Annotator parses, transforms and writes back JSX sources
type Annotator struct {
	fs              afs.Service
	parser          *parser.Parser
	transformer     *transform.Transformer
	emitter         emitter.Emitter
	match           MatcherFn
	concurrency     int
	dryRun          bool
	outputURL       string
	cache           *cache.Store
	logger          *slog.Logger
	continueOnError bool
}

// New creates an Annotator for the given configuration
func New(config transform.Config, opts ...Option) *Annotator {
	ret := &Annotator{
		fs:          afs.New(),
		parser:      parser.New(),
		transformer: transform.New(config),
		emitter:     &emitter.Splicer{},
		match:       JSXFiles,
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// AttributeName returns the injected attribute name
func (a *Annotator) AttributeName() string {
	return a.transformer.AttributeName()
}

// AnnotateSource transforms in-memory source; filename selects the dialect
func (a *Annotator) AnnotateSource(ctx context.Context, src []byte, filename string) (*FileResult, error) {
	file, err := source.NewFile(filename, src)
	if err != nil {
		return nil, err
	}
	return a.annotate(ctx, file)
}

func (a *Annotator) annotate(ctx context.Context, file *source.File) (*FileResult, error) {
	result := &FileResult{URL: file.URL, Dialect: file.Dialect, Status: StatusUnchanged, Output: file.Content}
	tree, err := a.parser.Parse(ctx, file.Content, file.Dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.URL, err)
	}
	result.Tags = a.transformer.Annotate(tree)
	if len(result.Tags) == 0 {
		return result, nil
	}
	if result.Output, err = a.emitter.Emit(tree); err != nil {
		return nil, fmt.Errorf("failed to emit %s: %w", file.URL, err)
	}
	result.Status = StatusAnnotated
	return result, nil
}

// AnnotateFile annotates a single file. The file is rewritten in place when it changes,
// or copied under the output URL when one is set.
func (a *Annotator) AnnotateFile(ctx context.Context, URL string) (*FileResult, error) {
	return a.annotateFile(ctx, URL, path.Base(URL))
}

func (a *Annotator) annotateFile(ctx context.Context, URL, relative string) (*FileResult, error) {
	content, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	file, err := source.NewFile(URL, content)
	if err != nil {
		return nil, err
	}
	useCache := a.cache != nil && a.outputURL == ""
	if useCache {
		entry, ok, err := a.cache.Lookup(ctx, URL, a.AttributeName())
		if err != nil {
			a.logger.Warn("cache lookup failed", "url", URL, "error", err)
		} else if ok && entry.Hash == file.Hash {
			a.logger.Debug("skipping cached source", "url", URL)
			return &FileResult{URL: URL, Dialect: file.Dialect, Status: StatusCached, Output: content}, nil
		}
	}

	result, err := a.annotate(ctx, file)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("annotated source", "url", URL, "tags", len(result.Tags))
	if a.dryRun {
		return result, nil
	}

	destURL := URL
	if a.outputURL != "" {
		destURL = url.Join(a.outputURL, relative)
	}
	if result.Status == StatusAnnotated || destURL != URL {
		if err := a.fs.Upload(ctx, destURL, fileMode, bytes.NewReader(result.Output)); err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", destURL, err)
		}
		result.Destination = destURL
	}
	if useCache {
		hash := file.Hash
		if result.Status == StatusAnnotated {
			if hash, err = source.Hash(result.Output); err != nil {
				return nil, fmt.Errorf("failed to hash %s: %w", URL, err)
			}
		}
		entry := &cache.Entry{Path: URL, Attribute: a.AttributeName(), Hash: hash, Tags: len(result.Tags)}
		if err := a.cache.Record(ctx, entry); err != nil {
			a.logger.Warn("cache record failed", "url", URL, "error", err)
		}
	}
	return result, nil
}

// AnnotateDir annotates every matching file under root
func (a *Annotator) AnnotateDir(ctx context.Context, root string) (*Report, error) {
	root = strings.TrimRight(root, "/")
	type candidate struct {
		URL      string
		relative string
	}
	var candidates []candidate
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !a.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		candidates = append(candidates, candidate{
			URL:      url.Join(baseURL, parent, info.Name()),
			relative: path.Join(parent, info.Name()),
		})
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoSources, root)
	}

	results := make([]*FileResult, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for i, item := range candidates {
		group.Go(func() error {
			result, err := a.annotateFile(groupCtx, item.URL, item.relative)
			if err != nil {
				if !a.continueOnError {
					return err
				}
				a.logger.Warn("failed to annotate source", "url", item.URL, "error", err)
				result = &FileResult{URL: item.URL, Status: StatusFailed, Err: err}
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].URL < results[j].URL
	})
	return &Report{Root: root, DryRun: a.dryRun, Files: results}, nil
}
