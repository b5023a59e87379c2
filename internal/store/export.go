package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/datasettag/internal/caption"
)

// ExportResult summarizes a batch caption export.
type ExportResult struct {
	Written []string // caption file paths
	Missing []string // manifest entries without an image on disk
	Invalid []string // entries with unknown category names
}

// ExportCaptions re-renders every manifest entry and rewrites its caption
// file. images maps manifest names to image paths. A write failure aborts
// the export; missing images and invalid entries are skipped.
func ExportCaptions(ctx context.Context, m *Manifest, images map[string]string, workers int, logger *zap.Logger) (*ExportResult, error) {
	if workers < 1 {
		workers = 1
	}

	res := &ExportResult{}
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, info := range m.Images {
		imagePath, ok := images[info.ImageName]
		if !ok {
			logger.Warn("manifest entry has no image", zap.String("image", info.ImageName))
			res.Missing = append(res.Missing, info.ImageName)
			continue
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			groups, err := info.Groups()
			if err != nil {
				logger.Warn("skipping entry", zap.String("image", info.ImageName), zap.Error(err))
				mu.Lock()
				res.Invalid = append(res.Invalid, info.ImageName)
				mu.Unlock()
				return nil
			}

			text := caption.RenderGroups(info.Trigger(), groups)
			if err := SaveCaptionFile(imagePath, text); err != nil {
				return err
			}
			logger.Debug("caption written", zap.String("image", info.ImageName), zap.String("caption", text))

			mu.Lock()
			res.Written = append(res.Written, CaptionPath(imagePath))
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return res, err
	}

	sort.Strings(res.Written)
	sort.Strings(res.Invalid)
	return res, nil
}
