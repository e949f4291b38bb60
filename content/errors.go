package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoreUnavailable is returned when the content directory cannot be read.
	ErrStoreUnavailable = errors.New("content: store unavailable")
	// ErrNotFound is returned when no post file matches an identifier.
	ErrNotFound = errors.New("content: post not found")
	// ErrMalformedFrontMatter is returned when a post lacks required metadata.
	ErrMalformedFrontMatter = errors.New("content: malformed front matter")
	// ErrDuplicateID is returned when two files map to the same identifier.
	ErrDuplicateID = errors.New("content: duplicate post identifier")
)

// FrontMatterError describes why one post file was rejected.
type FrontMatterError struct {
	ID    string
	Path  string
	Field string // empty when the block itself could not be decoded
	Err   error
}

func (e *FrontMatterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("post %q (%s): field %q: %v", e.ID, e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("post %q (%s): %v", e.ID, e.Path, e.Err)
}

func (e *FrontMatterError) Unwrap() error { return e.Err }

// Is reports malformed front matter regardless of the underlying cause.
func (e *FrontMatterError) Is(target error) bool {
	return target == ErrMalformedFrontMatter
}

// ScanError collects the per-file failures of one directory scan.
type ScanError struct {
	Errs []error
}

func (e *ScanError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("content: %d post(s) rejected: %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *ScanError) Unwrap() []error { return e.Errs }
