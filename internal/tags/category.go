package tags

import (
	"fmt"
	"strings"
)

// Category is a tag category. Declaration order is the caption order.
type Category int

const (
	Type Category = iota
	Subject
	Shot
	Perspective
	Pose
	Location
	Action
	Gaze
	Mouth
	MouthAction
	Hair
	Limbs
	SubjectDescription
	Scenery
	SceneDescription
	Lighting
	Miscellaneous
)

type categoryInfo struct {
	name         string
	singleValued bool
}

// categoryTable drives every per-category decision: naming, ordering and
// the at-most-one rule.
var categoryTable = [...]categoryInfo{
	Type:               {"Type", true},
	Subject:            {"Subject", true},
	Shot:               {"Shot", true},
	Perspective:        {"Perspective", true},
	Pose:               {"Pose", false},
	Location:           {"Location", false},
	Action:             {"Action", false},
	Gaze:               {"Gaze", true},
	Mouth:              {"Mouth", true},
	MouthAction:        {"MouthAction", true},
	Hair:               {"Hair", true},
	Limbs:              {"Limbs", false},
	SubjectDescription: {"SubjectDescription", false},
	Scenery:            {"Scenery", true},
	SceneDescription:   {"SceneDescription", false},
	Lighting:           {"Lighting", false},
	Miscellaneous:      {"Miscellaneous", false},
}

// All returns every category in rank order.
func All() []Category {
	out := make([]Category, len(categoryTable))
	for i := range categoryTable {
		out[i] = Category(i)
	}
	return out
}

// Rank returns the position of c in the caption order.
func Rank(c Category) int {
	return int(c)
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryTable)
}

// IsSingleValued reports whether a selection may hold at most one tag of c.
func (c Category) IsSingleValued() bool {
	return c.Valid() && categoryTable[c].singleValued
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryTable[c].name
}

// Parse maps an exact category name, as written to captions.json, back to
// its Category.
func Parse(name string) (Category, error) {
	for i, info := range categoryTable {
		if info.name == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ParseFold is Parse for interactive input: it ignores case.
func ParseFold(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for i, info := range categoryTable {
		if strings.EqualFold(info.name, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
