package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
}

// Image is one candidate file of a dataset directory.
type Image struct {
	Path    string
	Name    string // file name without extension, the manifest key
	ModTime time.Time
}

// IsImage reports whether the file name has a supported image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan lists the images directly inside dir, sorted by file name.
func Scan(dir string) ([]Image, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []Image
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		img := Image{
			Path: filepath.Join(dir, entry.Name()),
			Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
		}
		if info, err := entry.Info(); err == nil {
			img.ModTime = info.ModTime()
		}
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool {
		return filepath.Base(images[i].Path) < filepath.Base(images[j].Path)
	})
	return images, nil
}

// ImageSource is the browsable image list of one directory.
type ImageSource struct {
	dir    string
	images []Image
}

func NewImageSource(dir string) (*ImageSource, error) {
	s := &ImageSource{dir: dir}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh rescans the directory.
func (s *ImageSource) Refresh() error {
	images, err := Scan(s.dir)
	if err != nil {
		return err
	}
	s.images = images
	return nil
}

func (s *ImageSource) Dir() string {
	return s.dir
}

func (s *ImageSource) Count() int {
	return len(s.images)
}

func (s *ImageSource) Images() []Image {
	out := make([]Image, len(s.images))
	copy(out, s.images)
	return out
}

// At returns the image at index i of the sorted list.
func (s *ImageSource) At(i int) (Image, bool) {
	if i < 0 || i >= len(s.images) {
		return Image{}, false
	}
	return s.images[i], true
}

// Find looks an image up by file name or by name without extension.
func (s *ImageSource) Find(name string) (Image, bool) {
	for _, img := range s.images {
		if filepath.Base(img.Path) == name || img.Name == name {
			return img, true
		}
	}
	return Image{}, false
}

// Latest returns the most recently modified image.
func (s *ImageSource) Latest() (Image, bool) {
	var latest Image
	found := false
	for _, img := range s.images {
		if !found || img.ModTime.After(latest.ModTime) {
			latest = img
			found = true
		}
	}
	return latest, found
}

// NameIndex maps manifest keys to image paths. When two files share a
// name the first in sort order wins.
func (s *ImageSource) NameIndex() map[string]string {
	out := make(map[string]string, len(s.images))
	for _, img := range s.images {
		if _, ok := out[img.Name]; !ok {
			out[img.Name] = img.Path
		}
	}
	return out
}
