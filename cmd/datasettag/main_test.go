package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/datasettag/internal/tags"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "dt.yaml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseTagFlag(t *testing.T) {
	c, text, err := parseTagFlag("lighting=soft light")
	if err != nil || c != tags.Lighting || text != "soft light" {
		t.Errorf("parseTagFlag = %v, %q, %v", c, text, err)
	}
	if _, _, err := parseTagFlag("girl"); err == nil {
		t.Error("Expected error without '='")
	}
	if _, _, err := parseTagFlag("Mood=happy"); !errors.Is(err, tags.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestSaveRenderExport(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img_001.png")
	os.WriteFile(img, []byte("img"), 0644)

	out, err := runCLI(t, "save", img, "--trigger", "tok", "--tag", "Subject=girl", "--tag", "Type=photo")
	if err != nil {
		t.Fatalf("save failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "tok, photo of a girl") {
		t.Errorf("Unexpected save output:\n%s", out)
	}

	out, err = runCLI(t, "render", img)
	if err != nil || strings.TrimSpace(out) != "tok, photo of a girl" {
		t.Errorf("render = %q, %v", out, err)
	}

	os.Remove(filepath.Join(dir, "img_001.txt"))
	if _, err := runCLI(t, "export", dir); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "img_001.txt"))
	if err != nil || string(data) != "tok, photo of a girl" {
		t.Errorf("Exported caption = %q, %v", data, err)
	}
}

func TestSaveRejectsSecondType(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	os.WriteFile(img, []byte("img"), 0644)

	_, err := runCLI(t, "save", img, "--tag", "Type=photo", "--tag", "Type=painting")
	if !errors.Is(err, tags.ErrCategoryFull) {
		t.Errorf("Expected ErrCategoryFull, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Error("Nothing should be written after a rejected tag")
	}
}

func TestSaveTwiceNeedsReplace(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	os.WriteFile(img, []byte("img"), 0644)

	if _, err := runCLI(t, "save", img, "--tag", "Subject=girl"); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	_, err := runCLI(t, "save", img, "--tag", "Subject=girl")
	if !errors.Is(err, tags.ErrDuplicateTag) || !strings.Contains(err.Error(), "--replace") {
		t.Errorf("Expected duplicate error mentioning --replace, got %v", err)
	}

	out, err := runCLI(t, "save", img, "--replace", "--tag", "Subject=girl", "--tag", "Pose=sitting")
	if err != nil {
		t.Fatalf("save --replace failed: %v", err)
	}
	if !strings.Contains(out, "girl, sitting") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}
