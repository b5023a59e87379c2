package tags

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText       = errors.New("tag text cannot be empty")
	ErrDuplicateTag    = errors.New("a tag with the specified text already exists")
	ErrCategoryFull    = errors.New("category already holds its only tag")
	ErrUnknownCategory = errors.New("unknown tag category")
	ErrOutOfRange      = errors.New("tag index out of range")
)

// RejectError describes a tag that was refused. The set it was offered to
// is left unchanged.
type RejectError struct {
	Text     string
	Category Category
	Err      error
}

func (e *RejectError) Error() string {
	if errors.Is(e.Err, ErrCategoryFull) {
		return fmt.Sprintf("can only add one %s tag (rejected %q)", e.Category, e.Text)
	}
	return fmt.Sprintf("%s tag %q: %v", e.Category, e.Text, e.Err)
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

func reject(err error, text string, c Category) error {
	return &RejectError{Text: text, Category: c, Err: err}
}
