package tags

import (
	"sort"
	"strings"
)

// Tag is a single caption tag.
type Tag struct {
	Text     string
	Category Category
}

// Group is the tags of one category in insertion order.
type Group struct {
	Category Category
	Tags     []string
}

// Selection is the ordered set of tags chosen for one image.
// It is not safe for concurrent use.
type Selection struct {
	tags []Tag
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// TryAdd validates and inserts a tag, then re-sorts the selection by
// category rank. Tags of the same category keep their insertion order.
func (s *Selection) TryAdd(text string, c Category) error {
	text = strings.TrimSpace(text)
	if !c.Valid() {
		return reject(ErrUnknownCategory, text, c)
	}
	if text == "" {
		return reject(ErrEmptyText, text, c)
	}
	if s.indexOf(c, text, -1) >= 0 {
		return reject(ErrDuplicateTag, text, c)
	}
	if c.IsSingleValued() && s.count(c) > 0 {
		return reject(ErrCategoryFull, text, c)
	}

	s.tags = append(s.tags, Tag{Text: text, Category: c})
	sort.SliceStable(s.tags, func(i, j int) bool {
		return Rank(s.tags[i].Category) < Rank(s.tags[j].Category)
	})
	return nil
}

// Remove deletes the first tag equal to t. Order of the rest is kept.
func (s *Selection) Remove(t Tag) bool {
	for i := range s.tags {
		if s.tags[i] == t {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAt deletes the tag at position i.
func (s *Selection) RemoveAt(i int) (Tag, bool) {
	if i < 0 || i >= len(s.tags) {
		return Tag{}, false
	}
	t := s.tags[i]
	s.tags = append(s.tags[:i], s.tags[i+1:]...)
	return t, true
}

// Edit replaces the text of the tag at position i. The category and the
// position do not change.
func (s *Selection) Edit(i int, text string) error {
	if i < 0 || i >= len(s.tags) {
		return ErrOutOfRange
	}
	c := s.tags[i].Category
	text = strings.TrimSpace(text)
	if text == "" {
		return reject(ErrEmptyText, text, c)
	}
	if s.indexOf(c, text, i) >= 0 {
		return reject(ErrDuplicateTag, text, c)
	}
	s.tags[i].Text = text
	return nil
}

// ReplaceAll rebuilds the selection from stored groups. The stored order is
// kept as is and no cardinality rule is applied.
func (s *Selection) ReplaceAll(groups []Group) {
	s.tags = s.tags[:0]
	for _, g := range groups {
		for _, text := range g.Tags {
			if strings.TrimSpace(text) == "" {
				continue
			}
			s.tags = append(s.tags, Tag{Text: text, Category: g.Category})
		}
	}
}

// Grouped returns the tags grouped by category in rank order. Categories
// without tags are omitted.
func (s *Selection) Grouped() []Group {
	byCategory := make(map[Category][]string)
	for _, t := range s.tags {
		byCategory[t.Category] = append(byCategory[t.Category], t.Text)
	}

	groups := make([]Group, 0, len(byCategory))
	for _, c := range All() {
		if texts, ok := byCategory[c]; ok {
			groups = append(groups, Group{Category: c, Tags: texts})
		}
	}
	return groups
}

// Tags returns a copy of the selection in its current order.
func (s *Selection) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *Selection) Len() int {
	return len(s.tags)
}

func (s *Selection) Clear() {
	s.tags = nil
}

func (s *Selection) count(c Category) int {
	n := 0
	for _, t := range s.tags {
		if t.Category == c {
			n++
		}
	}
	return n
}

// indexOf finds a tag of category c whose text equals text ignoring case,
// skipping position skip.
func (s *Selection) indexOf(c Category, text string, skip int) int {
	for i, t := range s.tags {
		if i == skip {
			continue
		}
		if t.Category == c && strings.EqualFold(t.Text, text) {
			return i
		}
	}
	return -1
}
