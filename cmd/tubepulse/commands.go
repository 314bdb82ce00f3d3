package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spacesedan/tubepulse/config"
	"github.com/spacesedan/tubepulse/internal/logging"
	"github.com/spacesedan/tubepulse/internal/monitoring"
	"github.com/spacesedan/tubepulse/internal/processing"
	"github.com/spacesedan/tubepulse/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "tubepulse",
		Short: "Sentiment, keywords and an audience summary for YouTube comments",
		Long: `tubepulse analyzes YouTube comment sections.

Examples:
  # Run the HTTP API
  tubepulse serve --port 5000

  # Analyze a single video
  tubepulse video https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Analyze the top videos for a search theme
  tubepulse theme retro handheld consoles`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newVideoCmd(v))
	rootCmd.AddCommand(newThemeCmd(v))
	return rootCmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, v)
			if err != nil {
				return err
			}
			defer a.Close()

			go monitoring.MonitorSummarizerHealth(ctx, a.summarizer, a.summarizerHealthy, monitoring.HEALTHCHECK_INTERVAL)

			srv := server.New(a.pipeline, a.serverOptions())
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			slog.Info("[Main] Server stopped")
			return nil
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port (overrides PORT)")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	return cmd
}

func newVideoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "video <video-id|url>",
		Short: "Analyze the comments of one video and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := processing.ParseVideoID(args[0])
			if videoID == "" {
				return errors.New("video id is required")
			}

			a, err := newApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.pipeline.AnalyzeVideo(cmd.Context(), videoID)
			if err != nil {
				return err
			}
			return printJSON(cmd, server.NewVideoResponse(result))
		},
	}
}

func newThemeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <query...>",
		Short: "Analyze the comments of the top videos for a theme and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := strings.TrimSpace(strings.Join(args, " "))
			if theme == "" {
				return errors.New("theme is required")
			}

			a, err := newApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.pipeline.AnalyzeTheme(cmd.Context(), theme)
			if err != nil {
				return err
			}
			return printJSON(cmd, server.NewThemeResponse(result))
		},
	}
}

func printJSON(cmd *cobra.Command, body any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}

// loadConfig reads the env file for APP_ENV before resolving the viper keys,
// so flags and real environment variables still take precedence.
func loadConfig(v *viper.Viper) (config.Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load(v)
	logging.InitLogger(cfg.LogLevel)
	if err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
