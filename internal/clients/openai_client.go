package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIClient builds a chat completion client for any OpenAI compatible
// endpoint. Retries are disabled: a failed completion surfaces immediately.
func NewOpenAIClient(cfg LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		slog.Error("[OpenAIClient] Missing HF_TOKEN in environment variables")
		return nil, errors.New("[OpenAIClient] missing completion service API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = LLM_DEFAULT_BASE_URL
	}
	if cfg.Model == "" {
		cfg.Model = LLM_DEFAULT_MODEL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = LLM_REQUEST_TIMEOUT
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", USER_AGENT),
	)

	slog.Info("[OpenAIClient] Completion client initialized",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAIClient{Client: client, Model: cfg.Model}, nil
}
