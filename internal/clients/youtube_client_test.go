package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type recordedQuota struct {
	mu    sync.Mutex
	units map[string]int64
}

func (r *recordedQuota) RecordQuota(_ context.Context, api string, units int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.units == nil {
		r.units = map[string]int64{}
	}
	r.units[api] += units
	return nil
}

func newTestYouTubeClient(t *testing.T, handler http.HandlerFunc, quota QuotaRecorder) *YouTubeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	yc, err := newYouTubeClient(context.Background(), 100, quota,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return yc
}

func TestCommentThreads(t *testing.T) {
	quota := &recordedQuota{}
	yc := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/commentThreads", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "vid123", q.Get("videoId"))
		assert.Equal(t, "50", q.Get("maxResults"))
		assert.Equal(t, "plainText", q.Get("textFormat"))
		assert.Equal(t, "tok-1", q.Get("pageToken"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"nextPageToken": "tok-2",
			"items": [
				{"snippet": {"topLevelComment": {"snippet": {"authorDisplayName": "@alice", "textDisplay": "great video", "likeCount": 12}}}},
				{"snippet": {}},
				{"snippet": {"topLevelComment": {"snippet": {"authorDisplayName": "@bob", "textDisplay": "meh", "likeCount": 0}}}}
			]
		}`))
	}, quota)

	page, err := yc.CommentThreads(context.Background(), "vid123", "tok-1", 50)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", page.NextPageToken)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, "@alice", page.Comments[0].Username)
	assert.Equal(t, "great video", page.Comments[0].Text)
	assert.Equal(t, int64(12), page.Comments[0].Likes)
	assert.Equal(t, "@bob", page.Comments[1].Username)
	assert.Equal(t, int64(YOUTUBE_COMMENT_THREADS_UNITS), quota.units[YOUTUBE_API_NAME])
}

func TestCommentThreadsUpstreamError(t *testing.T) {
	yc := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "commentsDisabled"}}`))
	}, nil)

	_, err := yc.CommentThreads(context.Background(), "vid", "", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commentThreads.list")
}

func TestSearchVideos(t *testing.T) {
	quota := &recordedQuota{}
	yc := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "synthwave", q.Get("q"))
		assert.Equal(t, "5", q.Get("maxResults"))
		assert.Equal(t, "video", q.Get("type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"kind": "youtube#video", "videoId": "aaa"}, "snippet": {"title": "Retro &amp; Chill"}},
				{"id": {"kind": "youtube#channel"}, "snippet": {"title": "A channel"}},
				{"id": {"kind": "youtube#video", "videoId": "bbb"}, "snippet": {"title": "Night Drive"}}
			]
		}`))
	}, quota)

	videos, err := yc.SearchVideos(context.Background(), "synthwave", 5)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "aaa", videos[0].VideoID)
	assert.Equal(t, "Retro & Chill", videos[0].Title)
	assert.Equal(t, "bbb", videos[1].VideoID)
	assert.Equal(t, int64(YOUTUBE_SEARCH_UNITS), quota.units[YOUTUBE_API_NAME])
}

func TestNewYouTubeClientRequiresCredentials(t *testing.T) {
	_, err := NewYouTubeClient(context.Background(), YouTubeConfig{}, nil)
	require.Error(t, err)
}

// stuckQuota never finishes on its own, like a meter whose backend is down.
type stuckQuota struct{}

func (stuckQuota) RecordQuota(ctx context.Context, _ string, _ int64) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSlowQuotaRecorderDoesNotStallFetch(t *testing.T) {
	yc := newTestYouTubeClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}, stuckQuota{})

	start := time.Now()
	_, err := yc.CommentThreads(context.Background(), "vid", "", 50)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), YOUTUBE_QUOTA_RECORD_TIMEOUT+time.Second)
}
