// Package diag tracks where in a document an error occurred and routes
// errors to a caller-chosen Reporter.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ContextError is an error annotated with the file and document path it
// occurred at. Either may be empty.
type ContextError struct {
	File string
	Path string
	Err  error
}

func (e *ContextError) Error() string {
	switch {
	case e.File == "" && e.Path == "":
		return e.Err.Error()
	case e.File == "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Path == "":
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.File, e.Path, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// Tracker records the current position inside a nested document as a stack
// of object keys and array indexes.
type Tracker struct {
	File string
	path []any
}

// Push descends into key, which must be a string or an int.
func (t *Tracker) Push(key any) {
	t.path = append(t.path, key)
}

// Extend pushes several keys at once.
func (t *Tracker) Extend(keys ...any) {
	t.path = append(t.path, keys...)
}

// Pop removes the last n keys; n is clamped to [1, depth].
func (t *Tracker) Pop(n int) {
	n = min(max(n, 1), len(t.path))
	t.path = t.path[:len(t.path)-n]
}

// Depth returns the number of keys on the path.
func (t *Tracker) Depth() int { return len(t.path) }

// Path renders the current location, e.g. ".tables[0].rows[2]".
func (t *Tracker) Path() string {
	if len(t.path) == 0 {
		return "."
	}
	var b strings.Builder
	for _, key := range t.path {
		switch k := key.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(k))
			b.WriteByte(']')
		default:
			b.WriteByte('.')
			fmt.Fprint(&b, k)
		}
	}
	s := b.String()
	if s[0] != '.' {
		s = "." + s
	}
	return s
}

// Wrap annotates err with the tracker's current location. Errors that
// already carry a location are returned unchanged.
func (t *Tracker) Wrap(err error) error {
	var ctxErr *ContextError
	if errors.As(err, &ctxErr) {
		return err
	}
	return &ContextError{File: t.File, Path: t.Path(), Err: err}
}

// Reporter decides what happens to a recoverable error. Returning a non-nil
// error aborts the current operation; returning nil lets it continue.
type Reporter interface {
	Report(t *Tracker, err error) error
}

// Raiser aborts on the first error.
type Raiser struct{}

func (Raiser) Report(t *Tracker, err error) error {
	return t.Wrap(err)
}

// Writer prints each error to W and continues.
type Writer struct {
	W io.Writer
}

func (w Writer) Report(t *Tracker, err error) error {
	fmt.Fprintln(w.W, t.Wrap(err))
	return nil
}

// Discard ignores every error.
type Discard struct{}

func (Discard) Report(*Tracker, error) error { return nil }

// Collector accumulates every error and continues.
type Collector struct {
	Errors []error
}

func (c *Collector) Report(t *Tracker, err error) error {
	c.Errors = append(c.Errors, t.Wrap(err))
	return nil
}

// Err joins the collected errors, or returns nil when there were none.
func (c *Collector) Err() error {
	return errors.Join(c.Errors...)
}
