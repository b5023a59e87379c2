package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ivlev/datasettag/internal/tags"
)

func TestNewDropsBlanksAndRepeats(t *testing.T) {
	c := New(map[tags.Category][]string{
		tags.Type:     {"photo", " ", "Photo", "painting"},
		tags.Lighting: {"soft light"},
	})

	if got := c.Available(tags.Type); !reflect.DeepEqual(got, []string{"photo", "painting"}) {
		t.Errorf("Unexpected Type list %v", got)
	}
	if got := c.Available(tags.Hair); len(got) != 0 {
		t.Errorf("Expected empty Hair list, got %v", got)
	}
}

func TestAddRemoveRename(t *testing.T) {
	c := New(nil)

	if err := c.Add(tags.Pose, "standing"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := c.Add(tags.Pose, "STANDING"); !errors.Is(err, tags.ErrDuplicateTag) {
		t.Errorf("Expected ErrDuplicateTag, got %v", err)
	}
	if err := c.Add(tags.Pose, ""); !errors.Is(err, tags.ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
	// single-valued categories may still list many options
	c.Add(tags.Type, "photo")
	if err := c.Add(tags.Type, "painting"); err != nil {
		t.Errorf("Catalog should accept several Type options: %v", err)
	}

	c.Add(tags.Pose, "sitting")
	if err := c.Rename(tags.Pose, 1, "Standing"); !errors.Is(err, tags.ErrDuplicateTag) {
		t.Errorf("Expected ErrDuplicateTag on rename, got %v", err)
	}
	if err := c.Rename(tags.Pose, 1, "kneeling"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if err := c.Rename(tags.Pose, 7, "x"); !errors.Is(err, tags.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}

	if !c.Remove(tags.Pose, "Standing") {
		t.Error("Remove should ignore case")
	}
	if got := c.Available(tags.Pose); !reflect.DeepEqual(got, []string{"kneeling"}) {
		t.Errorf("Unexpected Pose list %v", got)
	}

	text, ok := c.At(tags.Pose, 0)
	if !ok || text != "kneeling" {
		t.Errorf("At(0) = %q, %v", text, ok)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(map[tags.Category][]string{tags.Gaze: {"looking at viewer"}})
	snap := c.Snapshot()
	snap[tags.Gaze][0] = "changed"

	if got, _ := c.At(tags.Gaze, 0); got != "looking at viewer" {
		t.Errorf("Snapshot shares memory with catalog: %q", got)
	}
	c.Remove(tags.Gaze, "looking at viewer")
	if _, ok := c.Snapshot()[tags.Gaze]; ok {
		t.Error("Empty lists should be left out of the snapshot")
	}
}
