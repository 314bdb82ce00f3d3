package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/tubepulse/internal/models"
)

// CommentSource returns one page of top-level comment threads for a video.
type CommentSource interface {
	CommentThreads(ctx context.Context, videoID, pageToken string, pageSize int) (models.CommentPage, error)
}

type CommentFetcher struct {
	source   CommentSource
	limit    int
	pageSize int
}

func NewCommentFetcher(source CommentSource, limit, pageSize int) *CommentFetcher {
	if limit <= 0 {
		limit = models.MaxCommentsPerVideo
	}
	if pageSize <= 0 {
		pageSize = models.CommentsPageSize
	}
	return &CommentFetcher{source: source, limit: limit, pageSize: pageSize}
}

func (f *CommentFetcher) Limit() int {
	return f.limit
}

// FetchComments pages through a video's comment threads until the fetcher's
// limit is reached or the upstream runs out of pages. It never returns more
// than the limit.
func (f *CommentFetcher) FetchComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	start := time.Now()
	comments := make([]models.Comment, 0, f.limit)
	pageToken := ""
	pages := 0

	for len(comments) < f.limit {
		page, err := f.source.CommentThreads(ctx, videoID, pageToken, f.pageSize)
		if err != nil {
			slog.Error("[CommentFetcher] Failed to fetch comment page",
				slog.String("video_id", videoID),
				slog.Int("page", pages+1),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: video %s: %w", ErrFetch, videoID, err)
		}
		pages++

		comments = append(comments, page.Comments...)
		// An empty page ends the loop even with a cursor, so an upstream that
		// keeps handing out tokens without data cannot spin forever.
		if page.NextPageToken == "" || len(page.Comments) == 0 {
			break
		}
		pageToken = page.NextPageToken
	}

	if len(comments) > f.limit {
		comments = comments[:f.limit]
	}

	slog.Info("[CommentFetcher] Fetched comments",
		slog.String("video_id", videoID),
		slog.Int("count", len(comments)),
		slog.Int("pages", pages),
		slog.Duration("elapsed", time.Since(start)))

	return comments, nil
}
