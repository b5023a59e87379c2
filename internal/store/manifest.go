package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/datasettag/internal/tags"
)

// ManifestFileName is the per-directory caption manifest.
const ManifestFileName = "captions.json"

// Manifest is the content of captions.json.
type Manifest struct {
	Images []ImageInfo `json:"Images"`
}

// ImageInfo is the stored annotation of one image. ImageName is the file
// name without extension.
type ImageInfo struct {
	ImageName   string         `json:"ImageName"`
	TriggerWord *string        `json:"TriggerWord"`
	Categories  []CategoryTags `json:"Categories"`
}

type CategoryTags struct {
	CategoryName string   `json:"CategoryName"`
	Tags         []string `json:"Tags"`
}

// NewImageInfo builds an entry from grouped tags.
func NewImageInfo(name, trigger string, groups []tags.Group) ImageInfo {
	categories := make([]CategoryTags, 0, len(groups))
	for _, g := range groups {
		texts := make([]string, len(g.Tags))
		copy(texts, g.Tags)
		categories = append(categories, CategoryTags{
			CategoryName: g.Category.String(),
			Tags:         texts,
		})
	}
	return ImageInfo{
		ImageName:   name,
		TriggerWord: &trigger,
		Categories:  categories,
	}
}

// Trigger returns the trigger word or "" when none is stored.
func (i ImageInfo) Trigger() string {
	if i.TriggerWord == nil {
		return ""
	}
	return *i.TriggerWord
}

// Groups converts the stored categories back to tag groups, keeping the
// stored order.
func (i ImageInfo) Groups() ([]tags.Group, error) {
	groups := make([]tags.Group, 0, len(i.Categories))
	for _, ct := range i.Categories {
		c, err := tags.Parse(ct.CategoryName)
		if err != nil {
			return nil, err
		}
		groups = append(groups, tags.Group{Category: c, Tags: ct.Tags})
	}
	return groups, nil
}

// ManifestPath returns the manifest location for a directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}

// CaptionPath returns the caption file that belongs to an image: the same
// path with the extension replaced by .txt.
func CaptionPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".txt"
}

// ImageName returns the manifest key of an image file.
func ImageName(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadManifest reads captions.json from dir. A missing file yields an empty
// manifest; a file that cannot be parsed yields ErrCorruptManifest.
func LoadManifest(dir string) (*Manifest, error) {
	path := ManifestPath(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{Images: []ImageInfo{}}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "load", Path: path, Kind: ErrManifestIO, Cause: err}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &StoreError{Op: "load", Path: path, Kind: ErrCorruptManifest, Cause: err}
	}
	if m.Images == nil {
		m.Images = []ImageInfo{}
	}
	return &m, nil
}

// Lookup finds the entry for an image name. Names are compared exactly.
func Lookup(m *Manifest, name string) (ImageInfo, bool) {
	for _, info := range m.Images {
		if info.ImageName == name {
			return info, true
		}
	}
	return ImageInfo{}, false
}

// Upsert returns a copy of m in which the entry for name carries the given
// trigger word and tags. An existing entry is replaced in place, otherwise
// a new one is appended.
func Upsert(m *Manifest, name, trigger string, groups []tags.Group) *Manifest {
	info := NewImageInfo(name, trigger, groups)

	out := &Manifest{Images: make([]ImageInfo, 0, len(m.Images)+1)}
	replaced := false
	for _, existing := range m.Images {
		if !replaced && existing.ImageName == name {
			out.Images = append(out.Images, info)
			replaced = true
			continue
		}
		out.Images = append(out.Images, existing)
	}
	if !replaced {
		out.Images = append(out.Images, info)
	}
	return out
}

// SaveManifest writes m to captions.json in dir. The file is replaced
// atomically so a failed write leaves the previous manifest intact.
func SaveManifest(dir string, m *Manifest) error {
	path := ManifestPath(dir)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Path: path, Kind: ErrManifestIO, Cause: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &StoreError{Op: "save", Path: path, Kind: ErrManifestIO, Cause: err}
	}
	return nil
}

// SaveCaptionFile writes the caption next to the image, overwriting any
// previous caption.
func SaveCaptionFile(imagePath, text string) error {
	path := CaptionPath(imagePath)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &StoreError{Op: "write caption", Path: path, Kind: ErrManifestIO, Cause: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".captions-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
