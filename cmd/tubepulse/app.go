package main

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/spacesedan/tubepulse/internal/clients"
	"github.com/spacesedan/tubepulse/internal/clients/kafka_client"
	"github.com/spacesedan/tubepulse/internal/models"
	"github.com/spacesedan/tubepulse/internal/pipeline"
	"github.com/spacesedan/tubepulse/internal/processing"
	"github.com/spacesedan/tubepulse/internal/server"
	"github.com/spacesedan/tubepulse/internal/summarizer"
	"github.com/spf13/viper"
)

// app holds every long-lived client for one process.
type app struct {
	pipeline          *pipeline.Pipeline
	summarizer        *summarizer.LLMSummarizer
	summarizerHealthy *atomic.Bool
	corsOrigins       []string
	port              int

	valkey   *clients.ValkeyClient
	producer *kafka_client.EventProducer
}

func newApp(ctx context.Context, v *viper.Viper) (*app, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}

	a := &app{
		summarizerHealthy: &atomic.Bool{},
		corsOrigins:       cfg.CORSAllowedOrigins,
		port:              cfg.Port,
	}
	a.summarizerHealthy.Store(true)

	var quota clients.QuotaRecorder
	if cfg.Valkey.Address != "" {
		vc, err := clients.NewValkeyClient(ctx, cfg.Valkey)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, quota tracking disabled", slog.String("error", err.Error()))
		} else {
			a.valkey = vc
			quota = vc
		}
	}

	yt, err := clients.NewYouTubeClient(ctx, cfg.YouTube, quota)
	if err != nil {
		a.Close()
		return nil, err
	}

	llm, err := clients.NewOpenAIClient(cfg.LLM)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.summarizer = summarizer.NewLLMSummarizer(llm)

	var opts []pipeline.Option
	if cfg.Kafka.Broker != "" {
		producer, err := kafka_client.NewEventProducer(kafka_client.KafkaConfig{
			Broker: cfg.Kafka.Broker,
			Topic:  cfg.Kafka.Topic,
		})
		if err != nil {
			slog.Warn("[Main] Kafka unavailable, analysis events disabled", slog.String("error", err.Error()))
		} else {
			a.producer = producer
			opts = append(opts, pipeline.WithEventPublisher(producer))
		}
	}

	a.pipeline = pipeline.New(
		processing.NewCommentFetcher(yt, models.MaxCommentsPerVideo, models.CommentsPageSize),
		processing.NewVideoDiscoverer(yt, models.MaxThemeVideos),
		a.summarizer,
		opts...,
	)
	return a, nil
}

func (a *app) serverOptions() server.Options {
	opts := server.Options{
		Port:               a.port,
		CORSAllowedOrigins: a.corsOrigins,
		SummarizerHealthy:  a.summarizerHealthy,
	}
	if a.valkey != nil {
		opts.Quota = a.valkey
	}
	return opts
}

func (a *app) Close() {
	if a.pipeline != nil {
		a.pipeline.Wait()
	}
	a.producer.Close()
	a.valkey.Close()
}
