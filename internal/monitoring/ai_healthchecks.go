package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorSummarizerHealth probes the completion service on every tick and
// stores the outcome in healthy until ctx is done.
func MonitorSummarizerHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			isHealthy := checker.HealthCheck(checkCtx)
			cancel()

			if healthy.Swap(isHealthy) != isHealthy {
				slog.Info("[HealthCheck] Summarizer health changed", slog.Bool("healthy", isHealthy))
			}
			if !isHealthy {
				slog.Warn("[HealthCheck] Summarizer is unhealthy")
			}
		}
	}
}
