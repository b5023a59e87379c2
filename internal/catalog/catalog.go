package catalog

import (
	"strings"

	"github.com/ivlev/datasettag/internal/tags"
)

// Catalog holds, per category, the tags a user can pick from. It mirrors
// the default_categories section of the config file.
type Catalog struct {
	lists map[tags.Category][]string
}

// New builds a catalog from configured lists. Blank entries and
// case-insensitive repeats are dropped.
func New(defaults map[tags.Category][]string) *Catalog {
	c := &Catalog{lists: make(map[tags.Category][]string)}
	for _, cat := range tags.All() {
		for _, text := range defaults[cat] {
			_ = c.Add(cat, text)
		}
	}
	return c
}

// Add appends a tag to a category list.
func (c *Catalog) Add(cat tags.Category, text string) error {
	text = strings.TrimSpace(text)
	if !cat.Valid() {
		return &tags.RejectError{Text: text, Category: cat, Err: tags.ErrUnknownCategory}
	}
	if text == "" {
		return &tags.RejectError{Text: text, Category: cat, Err: tags.ErrEmptyText}
	}
	if c.index(cat, text) >= 0 {
		return &tags.RejectError{Text: text, Category: cat, Err: tags.ErrDuplicateTag}
	}
	c.lists[cat] = append(c.lists[cat], text)
	return nil
}

// Remove deletes a tag from a category list, ignoring case.
func (c *Catalog) Remove(cat tags.Category, text string) bool {
	i := c.index(cat, strings.TrimSpace(text))
	if i < 0 {
		return false
	}
	list := c.lists[cat]
	c.lists[cat] = append(list[:i], list[i+1:]...)
	return true
}

// Rename changes the text of the tag at position i of a category list.
func (c *Catalog) Rename(cat tags.Category, i int, text string) error {
	list := c.lists[cat]
	if i < 0 || i >= len(list) {
		return tags.ErrOutOfRange
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &tags.RejectError{Text: text, Category: cat, Err: tags.ErrEmptyText}
	}
	if j := c.index(cat, text); j >= 0 && j != i {
		return &tags.RejectError{Text: text, Category: cat, Err: tags.ErrDuplicateTag}
	}
	list[i] = text
	return nil
}

// At returns the tag at position i of a category list.
func (c *Catalog) At(cat tags.Category, i int) (string, bool) {
	list := c.lists[cat]
	if i < 0 || i >= len(list) {
		return "", false
	}
	return list[i], true
}

// Available returns a copy of a category list.
func (c *Catalog) Available(cat tags.Category) []string {
	out := make([]string, len(c.lists[cat]))
	copy(out, c.lists[cat])
	return out
}

// Snapshot returns a copy of every non-empty list, for persisting.
func (c *Catalog) Snapshot() map[tags.Category][]string {
	out := make(map[tags.Category][]string, len(c.lists))
	for cat, list := range c.lists {
		if len(list) == 0 {
			continue
		}
		out[cat] = c.Available(cat)
	}
	return out
}

func (c *Catalog) index(cat tags.Category, text string) int {
	for i, existing := range c.lists[cat] {
		if strings.EqualFold(existing, text) {
			return i
		}
	}
	return -1
}
