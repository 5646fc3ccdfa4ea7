// Package errors provides structured error handling for the Ember toolkit.
//
// Malformed but well-typed input (over-long inserts, out-of-range cursor
// moves, unparsable validation text) is handled as a policy no-op by the
// widget layer and never produces an error. The types here cover the cases
// that do fail: configuration parsing, fail-closed widget-store lookups,
// and renderer faults propagated out of a paint pass.
package errors

import "fmt"

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a theme/configuration parsing error.
	KindConfig
	// KindStore indicates a widget-store lookup or mutation error.
	KindStore
	// KindRender indicates a rendering-backend error surfaced during paint.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindStore:
		return "store"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// UIError represents a structured error in the toolkit.
type UIError struct {
	// Op is the operation that failed (e.g., "theme.Parse").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *UIError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// Handler receives errors reported by the toolkit. Hosts that want
// centralized reporting install one with SetHandler; by default errors are
// only returned to callers, never reported twice.
type Handler interface {
	HandleError(err *UIError)
}

var handler Handler

// SetHandler installs the process-wide error handler. Pass nil to remove it.
func SetHandler(h Handler) {
	handler = h
}

// Report forwards err to the installed handler, if any, and returns err so
// call sites can report and return in one expression.
func Report(err *UIError) *UIError {
	if handler != nil && err != nil {
		handler.HandleError(err)
	}
	return err
}
