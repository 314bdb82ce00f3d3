package processing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/tubepulse/internal/models"
)

// VideoSearcher resolves a free-text query to video results.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoRef, error)
}

type VideoDiscoverer struct {
	searcher   VideoSearcher
	maxResults int
}

func NewVideoDiscoverer(searcher VideoSearcher, maxResults int) *VideoDiscoverer {
	if maxResults <= 0 {
		maxResults = models.MaxThemeVideos
	}
	return &VideoDiscoverer{searcher: searcher, maxResults: maxResults}
}

// DiscoverVideos runs a single search for theme and returns the hits in
// upstream relevance order.
func (d *VideoDiscoverer) DiscoverVideos(ctx context.Context, theme string) ([]models.VideoRef, error) {
	videos, err := d.searcher.SearchVideos(ctx, theme, d.maxResults)
	if err != nil {
		slog.Error("[VideoDiscoverer] Search failed",
			slog.String("theme", theme),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: theme %q: %w", ErrDiscovery, theme, err)
	}

	if len(videos) > d.maxResults {
		videos = videos[:d.maxResults]
	}

	slog.Info("[VideoDiscoverer] Discovered videos",
		slog.String("theme", theme),
		slog.Int("count", len(videos)))
	return videos, nil
}
