package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound       = errors.New("catalog: product not found")
	ErrInvalidDraft          = errors.New("catalog: invalid product draft")
	ErrDependencyUnavailable = errors.New("catalog: dependency unavailable")
)

// DraftError reports a draft rejected before any remote call was made.
type DraftError struct {
	Err error
}

func (e *DraftError) Error() string { return "Validation failed: " + e.Err.Error() }

func (e *DraftError) Unwrap() []error { return []error{ErrInvalidDraft, e.Err} }

// DependencyError reports that products were installed unjoined because some
// dependency collections have never been loaded. Err holds the fetch failures.
type DependencyError struct {
	Missing []Collection
	Err     error
}

func (e *DependencyError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	msg := fmt.Sprintf("catalog: dependency unavailable: %s", strings.Join(names, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DependencyError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDependencyUnavailable}
	}
	return []error{ErrDependencyUnavailable, e.Err}
}
