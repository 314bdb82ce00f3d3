package clients

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/spacesedan/tubepulse/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// QuotaRecorder accounts upstream API cost units.
type QuotaRecorder interface {
	RecordQuota(ctx context.Context, api string, units int64) error
}

type YouTubeConfig struct {
	APIKey            string
	OAuthToken        string
	Endpoint          string
	RequestsPerSecond float64
}

type YouTubeClient struct {
	service *youtube.Service
	limiter *rate.Limiter
	quota   QuotaRecorder
}

func NewYouTubeClient(ctx context.Context, cfg YouTubeConfig, quota QuotaRecorder) (*YouTubeClient, error) {
	opts := []option.ClientOption{option.WithUserAgent(USER_AGENT)}

	switch {
	case cfg.OAuthToken != "":
		opts = append(opts, option.WithTokenSource(
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.OAuthToken})))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		slog.Error("[YouTubeClient] Missing YOUTUBE_API_KEY or YOUTUBE_OAUTH_TOKEN")
		return nil, errors.New("[YouTubeClient] missing YouTube credentials")
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	return newYouTubeClient(ctx, cfg.RequestsPerSecond, quota, opts...)
}

func newYouTubeClient(ctx context.Context, rps float64, quota QuotaRecorder, opts ...option.ClientOption) (*YouTubeClient, error) {
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] failed to create service: %w", err)
	}

	if rps <= 0 {
		rps = YOUTUBE_DEFAULT_RPS
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	slog.Info("[YouTubeClient] YouTube client initialized", slog.Float64("rps", rps))

	return &YouTubeClient{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		quota:   quota,
	}, nil
}

// CommentThreads fetches one page of top-level comments in plain text form.
func (yc *YouTubeClient) CommentThreads(ctx context.Context, videoID, pageToken string, pageSize int) (models.CommentPage, error) {
	if err := yc.limiter.Wait(ctx); err != nil {
		return models.CommentPage{}, err
	}

	call := yc.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(int64(pageSize)).
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	yc.recordQuota(ctx, YOUTUBE_COMMENT_THREADS_UNITS)
	if err != nil {
		return models.CommentPage{}, fmt.Errorf("[YouTubeClient] commentThreads.list failed: %w", err)
	}

	page := models.CommentPage{
		Comments:      make([]models.Comment, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := item.Snippet.TopLevelComment.Snippet
		page.Comments = append(page.Comments, models.Comment{
			Username: snippet.AuthorDisplayName,
			Text:     snippet.TextDisplay,
			Likes:    snippet.LikeCount,
		})
	}

	return page, nil
}

// SearchVideos runs a video-only search and returns id/title pairs in
// relevance order.
func (yc *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoRef, error) {
	if err := yc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := yc.service.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(int64(maxResults)).
		Type("video").
		Context(ctx).
		Do()
	yc.recordQuota(ctx, YOUTUBE_SEARCH_UNITS)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] search.list failed: %w", err)
	}

	videos := make([]models.VideoRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ref := models.VideoRef{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			ref.Title = html.UnescapeString(item.Snippet.Title)
		}
		videos = append(videos, ref)
	}

	return videos, nil
}

func (yc *YouTubeClient) recordQuota(ctx context.Context, units int64) {
	if yc.quota == nil {
		return
	}
	// Bounded: quota accounting is best effort.
	ctx, cancel := context.WithTimeout(ctx, YOUTUBE_QUOTA_RECORD_TIMEOUT)
	defer cancel()

	if err := yc.quota.RecordQuota(ctx, YOUTUBE_API_NAME, units); err != nil {
		slog.Warn("[YouTubeClient] Failed to record quota usage",
			slog.Int64("units", units),
			slog.String("error", err.Error()))
	}
}
