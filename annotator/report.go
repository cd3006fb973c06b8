package annotator

import (
	"github.com/viant/testid/syntax"
	"github.com/viant/testid/transform"
)

// Status describes what happened to a file
type Status string

const (
	StatusAnnotated Status = "annotated"
	StatusUnchanged Status = "unchanged"
	StatusCached    Status = "cached"
	StatusFailed    Status = "failed"
)

// FileResult is the outcome of annotating one file
type FileResult struct {
	URL         string
	Destination string // Written location, empty when nothing was written
	Dialect     syntax.Dialect
	Status      Status
	Tags        []transform.Tag
	Output      []byte
	Err         error
}

// Changed reports whether annotation produced new content
func (r *FileResult) Changed() bool {
	return r.Status == StatusAnnotated
}

// Report aggregates the results of a directory run
type Report struct {
	Root   string
	DryRun bool
	Files  []*FileResult
}

// Add appends results, used when a run spans several roots
func (r *Report) Add(results ...*FileResult) {
	r.Files = append(r.Files, results...)
}

// Changed returns the number of files that received at least one attribute
func (r *Report) Changed() int {
	return r.count(StatusAnnotated)
}

// Cached returns the number of files skipped through the cache
func (r *Report) Cached() int {
	return r.count(StatusCached)
}

// Failed returns the number of files that could not be processed
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

// Tagged returns the total number of injected attributes
func (r *Report) Tagged() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Tags)
	}
	return total
}

func (r *Report) count(status Status) int {
	total := 0
	for _, file := range r.Files {
		if file.Status == status {
			total++
		}
	}
	return total
}
