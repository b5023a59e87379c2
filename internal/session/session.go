package session

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/caption"
	"github.com/ivlev/datasettag/internal/catalog"
	"github.com/ivlev/datasettag/internal/store"
	"github.com/ivlev/datasettag/internal/tags"
)

var (
	ErrNoImageSelected = errors.New("no image selected")
	ErrNoTagsSpecified = errors.New("no tags specified")
)

// SaveResult describes what a successful Save wrote.
type SaveResult struct {
	Caption      string
	CaptionPath  string
	ManifestPath string
}

// Session is the tagging state of one user: the active image, its tag
// selection and the trigger word.
type Session struct {
	mu        sync.Mutex
	imagePath string
	selection *tags.Selection
	trigger   string
	catalog   *catalog.Catalog
	logger    *zap.Logger
}

func New(cat *catalog.Catalog, logger *zap.Logger) *Session {
	if cat == nil {
		cat = catalog.New(nil)
	}
	return &Session{
		selection: tags.NewSelection(),
		catalog:   cat,
		logger:    logger,
	}
}

// Select makes imagePath the active image and loads its stored tags. The
// trigger word is taken from the manifest only when none is set yet. On a
// corrupt manifest the image stays selected with an empty set.
func (s *Session) Select(imagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imagePath = imagePath
	s.selection.Clear()

	m, err := store.LoadManifest(filepath.Dir(imagePath))
	if err != nil {
		s.logger.Warn("manifest not loaded", zap.String("image", imagePath), zap.Error(err))
		return err
	}
	info, ok := store.Lookup(m, store.ImageName(imagePath))
	if !ok {
		return nil
	}
	groups, err := info.Groups()
	if err != nil {
		s.logger.Warn("stored entry skipped", zap.String("image", imagePath), zap.Error(err))
		return err
	}
	s.selection.ReplaceAll(groups)
	if s.trigger == "" {
		s.trigger = info.Trigger()
	}
	s.logger.Debug("image selected", zap.String("image", imagePath), zap.Int("tags", s.selection.Len()))
	return nil
}

// Image returns the active image path, or "" when none is selected.
func (s *Session) Image() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imagePath
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Add puts a free-text tag into the selection.
func (s *Session) Add(c tags.Category, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.TryAdd(text, c)
}

// Pick adds the catalog entry at index i of category c.
func (s *Session) Pick(c tags.Category, i int) (string, error) {
	text, ok := s.catalog.At(c, i)
	if !ok {
		return "", tags.ErrOutOfRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return text, s.selection.TryAdd(text, c)
}

func (s *Session) Remove(i int) (tags.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.selection.RemoveAt(i)
	if !ok {
		return tags.Tag{}, tags.ErrOutOfRange
	}
	return t, nil
}

func (s *Session) Edit(i int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Edit(i, text)
}

func (s *Session) SetTrigger(trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger = strings.TrimSpace(trigger)
}

func (s *Session) Trigger() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger
}

func (s *Session) Tags() []tags.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Tags()
}

// Caption renders the current caption.
func (s *Session) Caption() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return caption.Render(s.trigger, s.selection)
}

// Clear empties the selection and the trigger word.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.trigger = ""
}

func (s *Session) ready() error {
	if s.imagePath == "" {
		return ErrNoImageSelected
	}
	if s.selection.Len() == 0 {
		return ErrNoTagsSpecified
	}
	return nil
}

// Save writes the caption file next to the active image and records the
// entry in the directory manifest. The manifest is read before anything
// is written, so a corrupt manifest leaves the directory untouched.
func (s *Session) Save() (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(s.imagePath)
	m, err := store.LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	text := caption.Render(s.trigger, s.selection)
	if err := store.SaveCaptionFile(s.imagePath, text); err != nil {
		return nil, err
	}

	m = store.Upsert(m, store.ImageName(s.imagePath), s.trigger, s.selection.Grouped())
	if err := store.SaveManifest(dir, m); err != nil {
		return nil, err
	}

	s.logger.Info("caption saved", zap.String("image", s.imagePath), zap.String("caption", text))
	return &SaveResult{
		Caption:      text,
		CaptionPath:  store.CaptionPath(s.imagePath),
		ManifestPath: store.ManifestPath(dir),
	}, nil
}

// Copy returns the clipboard payload of the current state.
func (s *Session) Copy() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return "", err
	}
	info := store.NewImageInfo(store.ImageName(s.imagePath), s.trigger, s.selection.Grouped())
	return store.EncodeClipboard(info)
}

// Paste replaces the selection and trigger word with a clipboard payload.
// A payload that does not parse is ignored and reports false.
func (s *Session) Paste(text string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.imagePath == "" {
		return false, ErrNoImageSelected
	}
	info, groups, ok := store.DecodeClipboard(text)
	if !ok {
		s.logger.Debug("clipboard payload ignored")
		return false, nil
	}
	s.selection.ReplaceAll(groups)
	s.trigger = info.Trigger()
	return true, nil
}
