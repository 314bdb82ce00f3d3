package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spacesedan/tubepulse/internal/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

// messageText accepts both the plain string and the content-parts encoding.
func messageText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	_ = json.Unmarshal(raw, &parts)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

func newTestSummarizer(t *testing.T, handler http.HandlerFunc) *LLMSummarizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := clients.NewOpenAIClient(clients.LLMConfig{
		APIKey:  "hf_test",
		BaseURL: srv.URL + "/",
		Model:   "mistralai/Mistral-Small-3.1-24B-Instruct-2503:nebius",
	})
	require.NoError(t, err)
	return NewLLMSummarizer(c)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, SummaryPrompt, BuildPrompt(nil))
	assert.Equal(t, SummaryPrompt+"a\nb", BuildPrompt([]string{"a", "b"}))

	texts := make([]string, 80)
	for i := range texts {
		texts[i] = fmt.Sprintf("c%d", i)
	}
	prompt := BuildPrompt(texts)
	assert.True(t, strings.HasSuffix(prompt, "\nc49"))
	assert.NotContains(t, prompt, "c50")
	assert.Equal(t, 50, len(strings.Split(strings.TrimPrefix(prompt, SummaryPrompt), "\n")))
}

func TestSummarize(t *testing.T) {
	var calls atomic.Int32
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistralai/Mistral-Small-3.1-24B-Instruct-2503:nebius", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, SummaryPrompt+"love it\nhate it", messageText(req.Messages[0].Content))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1", "object": "chat.completion", "created": 1, "model": "m",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "Viewers are split."}}]
		}`))
	})

	summary, err := s.Summarize(context.Background(), []string{"love it", "hate it"})
	require.NoError(t, err)
	assert.Equal(t, "Viewers are split.", summary)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSummarizeFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded"}}`))
	})

	summary, err := s.Summarize(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSummarization))
	assert.Empty(t, summary)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSummarizeNoChoices(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := s.Summarize(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrSummarization)
}

func TestHealthCheck(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	})

	assert.True(t, s.HealthCheck(context.Background()))
	healthy.Store(false)
	assert.False(t, s.HealthCheck(context.Background()))
}
