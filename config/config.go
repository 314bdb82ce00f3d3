package config

import (
	"errors"
	"strings"

	"github.com/spacesedan/tubepulse/internal/clients"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string
	Port     int

	YouTube clients.YouTubeConfig
	LLM     clients.LLMConfig
	Valkey  clients.ValkeyConfig
	Kafka   KafkaConfig

	CORSAllowedOrigins []string
}

// KafkaConfig is optional; an empty Broker disables analysis events.
type KafkaConfig struct {
	Broker string
	Topic  string
}

// New returns a viper instance with defaults and environment lookup, ready
// for flag binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 5000)
	v.SetDefault("youtube_requests_per_second", clients.YOUTUBE_DEFAULT_RPS)
	v.SetDefault("llm_base_url", clients.LLM_DEFAULT_BASE_URL)
	v.SetDefault("llm_model", clients.LLM_DEFAULT_MODEL)
	v.SetDefault("llm_timeout", clients.LLM_REQUEST_TIMEOUT)
	v.SetDefault("kafka_analysis_topic", "analysis-events")
	v.SetDefault("cors_allowed_origins", "*")

	for _, key := range []string{
		"youtube_api_key", "youtube_oauth_token", "youtube_endpoint", "hf_token",
		"valkey_init_address", "valkey_password", "valkey_tls", "kafka_broker",
	} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	return v
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:      v.GetString("app_env"),
		LogLevel: v.GetString("log_level"),
		Port:     v.GetInt("port"),
		YouTube: clients.YouTubeConfig{
			APIKey:            v.GetString("youtube_api_key"),
			OAuthToken:        v.GetString("youtube_oauth_token"),
			Endpoint:          v.GetString("youtube_endpoint"),
			RequestsPerSecond: v.GetFloat64("youtube_requests_per_second"),
		},
		LLM: clients.LLMConfig{
			APIKey:  v.GetString("hf_token"),
			BaseURL: v.GetString("llm_base_url"),
			Model:   v.GetString("llm_model"),
			Timeout: v.GetDuration("llm_timeout"),
		},
		Valkey: clients.ValkeyConfig{
			Address:  v.GetString("valkey_init_address"),
			Password: v.GetString("valkey_password"),
			UseTLS:   v.GetBool("valkey_tls"),
		},
		Kafka: KafkaConfig{
			Broker: v.GetString("kafka_broker"),
			Topic:  v.GetString("kafka_analysis_topic"),
		},
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.YouTube.APIKey == "" && c.YouTube.OAuthToken == "" {
		errs = append(errs, errors.New("YOUTUBE_API_KEY or YOUTUBE_OAUTH_TOKEN is required"))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("HF_TOKEN is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT must be between 1 and 65535"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
