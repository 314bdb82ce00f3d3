package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/tubepulse/internal/keywords"
	"github.com/spacesedan/tubepulse/internal/models"
	"github.com/spacesedan/tubepulse/internal/sentiment"
	"github.com/spacesedan/tubepulse/internal/summarizer"
	"golang.org/x/sync/errgroup"
)

type CommentFetcher interface {
	FetchComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

type VideoDiscoverer interface {
	DiscoverVideos(ctx context.Context, theme string) ([]models.VideoRef, error)
}

// EVENT_PUBLISH_TIMEOUT bounds a single background publish.
const EVENT_PUBLISH_TIMEOUT = 5 * time.Second

// EventPublisher receives a telemetry event after every successful analysis.
type EventPublisher interface {
	PublishAnalysisEvent(ctx context.Context, event models.AnalysisEvent) error
}

type Pipeline struct {
	fetcher    CommentFetcher
	discoverer VideoDiscoverer
	summarizer summarizer.Summarizer
	events     EventPublisher
	now        func() time.Time

	inflight sync.WaitGroup
}

type Option func(*Pipeline)

func WithEventPublisher(events EventPublisher) Option {
	return func(p *Pipeline) {
		p.events = events
	}
}

func New(fetcher CommentFetcher, discoverer VideoDiscoverer, s summarizer.Summarizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:    fetcher,
		discoverer: discoverer,
		summarizer: s,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AnalyzeVideo runs the pipeline over a single video's comments.
func (p *Pipeline) AnalyzeVideo(ctx context.Context, videoID string) (*models.AnalysisResult, error) {
	slog.Info("[Pipeline] Analyzing video", slog.String("video_id", videoID))

	corpus, err := p.fetcher.FetchComments(ctx, videoID)
	if err != nil {
		return nil, err
	}
	corpus = capCorpus(corpus, models.MaxCommentsPerVideo)

	result, err := p.analyze(ctx, corpus)
	if err != nil {
		return nil, err
	}

	p.publish(ctx, models.AnalysisModeVideo, videoID, 1, result)
	return result, nil
}

// AnalyzeTheme discovers videos for theme, fetches them concurrently and
// merges their comments in discovery order. Any single fetch failure fails
// the whole request.
func (p *Pipeline) AnalyzeTheme(ctx context.Context, theme string) (*models.AnalysisResult, error) {
	slog.Info("[Pipeline] Analyzing theme", slog.String("theme", theme))

	videos, err := p.discoverer.DiscoverVideos(ctx, theme)
	if err != nil {
		return nil, err
	}
	if len(videos) > models.MaxThemeVideos {
		videos = videos[:models.MaxThemeVideos]
	}

	perVideo, err := p.fetchAll(ctx, videos)
	if err != nil {
		return nil, err
	}

	corpus := make([]models.Comment, 0)
	videosUsed := make([]models.VideoLink, 0, len(videos))
	for i, video := range videos {
		if len(perVideo[i]) == 0 {
			slog.Info("[Pipeline] Video contributed no comments",
				slog.String("video_id", video.VideoID))
			continue
		}
		corpus = append(corpus, perVideo[i]...)
		videosUsed = append(videosUsed, video.Link())
	}
	corpus = capCorpus(corpus, models.MaxCorpusComments)

	result, err := p.analyze(ctx, corpus)
	if err != nil {
		return nil, err
	}
	result.VideosUsed = videosUsed

	p.publish(ctx, models.AnalysisModeTheme, theme, len(videosUsed), result)
	return result, nil
}

// fetchAll fetches every video in parallel; results are indexed by discovery
// position so completion order never affects the merge.
func (p *Pipeline) fetchAll(ctx context.Context, videos []models.VideoRef) ([][]models.Comment, error) {
	results := make([][]models.Comment, len(videos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(models.MaxThemeVideos)

	for i, video := range videos {
		g.Go(func() error {
			comments, err := p.fetcher.FetchComments(gctx, video.VideoID)
			if err != nil {
				return err
			}
			results[i] = comments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) analyze(ctx context.Context, corpus []models.Comment) (*models.AnalysisResult, error) {
	texts := models.Texts(corpus)

	summary := ""
	if len(texts) > 0 {
		var err error
		summary, err = p.summarizer.Summarize(ctx, texts)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Warn("[Pipeline] Empty corpus, skipping summarization")
	}

	return &models.AnalysisResult{
		Comments: sentiment.ScoreSentiment(corpus),
		Summary:  summary,
		Keywords: keywords.Top(keywords.ExtractKeywords(strings.Join(texts, " ")), models.MaxKeywords),
	}, nil
}

// publish hands the event to the publisher in the background; the request
// never waits on it.
func (p *Pipeline) publish(ctx context.Context, mode models.AnalysisMode, query string, videoCount int, result *models.AnalysisResult) {
	if p.events == nil {
		return
	}

	positive, neutral, negative := sentiment.Distribution(result.Comments)
	event := models.AnalysisEvent{
		EventID:      uuid.NewString(),
		Mode:         mode,
		Query:        query,
		VideoCount:   videoCount,
		CommentCount: len(result.Comments),
		Positive:     positive,
		Neutral:      neutral,
		Negative:     negative,
		KeywordCount: len(result.Keywords),
		CreatedAt:    p.now().UTC(),
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), EVENT_PUBLISH_TIMEOUT)
		defer cancel()

		if err := p.events.PublishAnalysisEvent(pubCtx, event); err != nil {
			slog.Warn("[Pipeline] Failed to publish analysis event",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until background event publishes have finished.
func (p *Pipeline) Wait() {
	p.inflight.Wait()
}

func capCorpus(corpus []models.Comment, limit int) []models.Comment {
	if len(corpus) > limit {
		return corpus[:limit]
	}
	return corpus
}
