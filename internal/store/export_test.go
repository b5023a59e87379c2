package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/tags"
)

func TestExportCaptions(t *testing.T) {
	dir := t.TempDir()
	images := map[string]string{
		"a": filepath.Join(dir, "a.png"),
		"b": filepath.Join(dir, "b.jpg"),
		"c": filepath.Join(dir, "c.webp"),
	}

	m := &Manifest{}
	m = Upsert(m, "a", "tok", []tags.Group{
		{Category: tags.Subject, Tags: []string{"girl"}},
		{Category: tags.Type, Tags: []string{"photo"}},
	})
	m = Upsert(m, "b", "", []tags.Group{{Category: tags.Lighting, Tags: []string{"soft light"}}})
	m = Upsert(m, "gone", "", []tags.Group{{Category: tags.Subject, Tags: []string{"cat"}}})
	m.Images = append(m.Images, ImageInfo{
		ImageName:  "c",
		Categories: []CategoryTags{{CategoryName: "Mood", Tags: []string{"x"}}},
	})

	res, err := ExportCaptions(context.Background(), m, images, 4, zap.NewNop())
	if err != nil {
		t.Fatalf("ExportCaptions failed: %v", err)
	}

	if len(res.Missing) != 1 || res.Missing[0] != "gone" {
		t.Errorf("Expected missing [gone], got %v", res.Missing)
	}
	if len(res.Invalid) != 1 || res.Invalid[0] != "c" {
		t.Errorf("Expected invalid [c], got %v", res.Invalid)
	}
	if len(res.Written) != 2 {
		t.Fatalf("Expected 2 written captions, got %v", res.Written)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(data) != "tok, photo of a girl" {
		t.Errorf("Unexpected caption for a: %q", data)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "b.txt"))
	if string(data) != "soft light" {
		t.Errorf("Unexpected caption for b: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "c.txt")); !os.IsNotExist(err) {
		t.Error("Invalid entry must not produce a caption file")
	}
}
