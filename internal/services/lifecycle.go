package services

import (
	"context"
	"log"

	"github.com/arabianblog/backend/internal/storage"
)

// Namespaces under which blobs are stored, one per payload role
const (
	nsMediaFiles      = "media_files"
	nsMediaThumbnails = "media_thumbnails"
	nsNewsImages      = "news_images"
)

// cleanups collects compensating deletes for blobs written during a
// multi-step operation. When a later step fails, run removes them in
// reverse order so the operation leaves no orphans behind. Cleanup
// failures are logged and never change the error being reported.
type cleanups struct {
	store storage.Store
	locs  []storage.Locator
}

func newCleanups(store storage.Store) *cleanups {
	return &cleanups{store: store}
}

func (c *cleanups) add(loc storage.Locator) {
	c.locs = append(c.locs, loc)
}

func (c *cleanups) run(ctx context.Context, reason string) {
	for i := len(c.locs) - 1; i >= 0; i-- {
		if err := c.store.Delete(ctx, c.locs[i]); err != nil {
			log.Printf("[Cleanup] failed to remove blob after %s: %v", reason, err)
		}
	}
}
