// Package definitions looks up human-authored column definitions in a
// central SQL store so they can be folded into the generated documentation.
// Two backends share the same read contract; which one is used is decided
// by configuration, never by runtime type inspection.
package definitions

import (
	"context"
	"errors"
	"fmt"
)

// Record is one (column, definition) pair returned by the store.
type Record struct {
	Column     string
	Definition string
}

// Store fetches definition records whose table name matches a SQL LIKE
// pattern. Zero matching rows is success: an empty, non-nil-safe slice.
type Store interface {
	Fetch(ctx context.Context, pattern string) ([]Record, error)
}

// FetchKind classifies a definitions fetch failure.
type FetchKind int

const (
	KindConnection FetchKind = iota
	KindQuery
)

func (k FetchKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// FetchError is a connection or query failure against the definitions store.
// An empty result set is not a FetchError.
type FetchError struct {
	Kind FetchKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("definitions %s failure: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrNotImplemented marks the Azure SQL backend, which is configured but not
// yet built. Selecting it is a legitimate terminal state for a run.
var ErrNotImplemented = errors.New("azure definitions store is not implemented")
