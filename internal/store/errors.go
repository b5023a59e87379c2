package store

import (
	"errors"
	"fmt"
)

var (
	ErrCorruptManifest = errors.New("manifest is corrupt")
	ErrManifestIO      = errors.New("manifest i/o failure")
)

// StoreError reports a failed manifest or caption file operation.
// Kind is one of the sentinels above; Cause is the underlying error.
type StoreError struct {
	Op    string
	Path  string
	Kind  error
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *StoreError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
