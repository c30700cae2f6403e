package service

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrNotFound          = eris.New("not found")
	ErrInvalidInput      = eris.New("invalid input")
	ErrSourceUnavailable = eris.New("map data service unavailable")
)

// ValidationError carries per-field messages for a rejected form
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// SourceError marks a failed call to the POI source or the geocoder. It
// matches ErrSourceUnavailable and unwraps to the upstream cause.
type SourceError struct {
	Err error
}

func unavailable(err error) error {
	return &SourceError{Err: err}
}

func (e *SourceError) Error() string {
	return ErrSourceUnavailable.Error() + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSourceUnavailable
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
