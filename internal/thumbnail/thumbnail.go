package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/datasettag/internal/source"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
)

// Thumb is a downscaled preview of one image.
type Thumb struct {
	Image  source.Image
	Width  int // original size
	Height int
	Img    image.Image
}

type Generator struct {
	size    int
	workers int
	logger  *zap.Logger
	cache   *cache.Cache
	decode  func(path string) (image.Image, error)
}

func New(size, workers int, logger *zap.Logger) *Generator {
	if size < 1 {
		size = 256
	}
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		size:    size,
		workers: workers,
		logger:  logger,
		cache:   cache.New(defaultCacheExpiration, cacheCleanupInterval),
		decode:  source.Decode,
	}
}

// Generate builds thumbnails in parallel. The result keeps input order;
// images that fail to decode are logged and left out.
func (g *Generator) Generate(ctx context.Context, images []source.Image) ([]Thumb, error) {
	slots := make([]*Thumb, len(images))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, img := range images {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			th, err := g.thumb(img)
			if err != nil {
				g.logger.Warn("skipping image", zap.String("path", img.Path), zap.Error(err))
				return nil
			}
			slots[i] = th
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Thumb, 0, len(slots))
	for _, th := range slots {
		if th != nil {
			out = append(out, *th)
		}
	}
	return out, nil
}

func (g *Generator) thumb(img source.Image) (*Thumb, error) {
	key, err := g.cacheKey(img.Path)
	if err != nil {
		return nil, err
	}
	if cached, ok := g.cache.Get(key); ok {
		th := cached.(Thumb)
		th.Image = img
		return &th, nil
	}

	src, err := g.decode(img.Path)
	if err != nil {
		return nil, err
	}
	th := Thumb{
		Image:  img,
		Width:  src.Bounds().Dx(),
		Height: src.Bounds().Dy(),
		Img:    Fit(src, g.size),
	}
	g.cache.Set(key, th, cache.DefaultExpiration)
	g.logger.Debug("thumbnail built", zap.String("path", img.Path))
	return &th, nil
}

func (g *Generator) cacheKey(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", path, fi.ModTime().UnixNano(), g.size), nil
}

// Fit scales img down to fit a size x size box, keeping the aspect ratio.
// Images that already fit are returned unchanged.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}

	var tw, th int
	if w >= h {
		tw = size
		th = max(1, h*size/w)
	} else {
		th = size
		tw = max(1, w*size/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// WritePNG stores thumbnails as <name>.png in dir and returns the paths.
func WritePNG(dir string, thumbs []Thumb) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(thumbs))
	for _, th := range thumbs {
		path := filepath.Join(dir, th.Image.Name+".png")
		if err := writePNG(path, th.Img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
