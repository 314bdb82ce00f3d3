package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/spacesedan/tubepulse/internal/clients"
	"github.com/spacesedan/tubepulse/internal/models"
)

const SummaryPrompt = "Summarize these YouTube comments with emotional and public opinion insights for a writer:\n\n"

var ErrSummarization = errors.New("summarization failed")

// Summarizer turns comment texts into a short narrative.
type Summarizer interface {
	Summarize(ctx context.Context, texts []string) (string, error)
}

// BuildPrompt joins at most MaxSummaryInputs texts, in order, under the
// instruction header.
func BuildPrompt(texts []string) string {
	if len(texts) > models.MaxSummaryInputs {
		texts = texts[:models.MaxSummaryInputs]
	}
	return SummaryPrompt + strings.Join(texts, "\n")
}

type LLMSummarizer struct {
	client *openai.Client
	model  string
}

func NewLLMSummarizer(c *clients.OpenAIClient) *LLMSummarizer {
	return &LLMSummarizer{client: c.Client, model: c.Model}
}

// Summarize makes exactly one chat completion request and returns the first
// choice's content.
func (s *LLMSummarizer) Summarize(ctx context.Context, texts []string) (string, error) {
	start := time.Now()
	slog.Info("[Summarizer] Requesting summary from completion service",
		slog.String("model", s.model),
		slog.Int("inputs", min(len(texts), models.MaxSummaryInputs)))

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(texts)),
		}),
		Model: openai.F(openai.ChatModel(s.model)),
	})
	if err != nil {
		slog.Error("[Summarizer] Summary request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", ErrSummarization, err)
	}

	if len(completion.Choices) == 0 {
		slog.Error("[Summarizer] Completion service returned no choices")
		return "", fmt.Errorf("%w: empty completion", ErrSummarization)
	}

	slog.Info("[Summarizer] Summary request successful",
		slog.Duration("elapsed", time.Since(start)))

	return completion.Choices[0].Message.Content, nil
}

// HealthCheck reports whether the completion service answers a model listing.
func (s *LLMSummarizer) HealthCheck(ctx context.Context) bool {
	if _, err := s.client.Models.List(ctx); err != nil {
		slog.Warn("[Summarizer] Health check failed", slog.String("error", err.Error()))
		return false
	}
	return true
}
