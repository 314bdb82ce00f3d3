package clients

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_QUOTA_KEY_PREFIX = "quota"
	VALKEY_QUOTA_TTL        = 48 * time.Hour
	VALKEY_RETRIES          = 3
	VALKEY_RETRY_BACKOFF    = 250 * time.Millisecond
)

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

// ValkeyClient keeps daily upstream quota counters. It never stores
// comments or analysis results.
type ValkeyClient struct {
	Client valkey.Client
	now    func() time.Time
}

func NewValkeyClient(ctx context.Context, cfg ValkeyConfig) (*ValkeyClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("[ValkeyClient] missing VALKEY_INIT_ADDRESS")
	}

	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", cfg.Address))
	return &ValkeyClient{Client: client, now: time.Now}, nil
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

// RecordQuota adds units to today's counter for api.
func (vc *ValkeyClient) RecordQuota(ctx context.Context, api string, units int64) error {
	key := QuotaKey(api, vc.now())
	completed := []valkey.Completed{
		vc.Client.B().Incrby().Key(key).Increment(units).Build().Pin(),
		vc.Client.B().Expire().Key(key).Seconds(int64(VALKEY_QUOTA_TTL.Seconds())).Build().Pin(),
	}

	for _, res := range vc.DoMultiWithRetry(ctx, completed, VALKEY_RETRIES) {
		if err := res.Error(); err != nil {
			return err
		}
	}
	return nil
}

// QuotaUsage returns the units recorded for api today.
func (vc *ValkeyClient) QuotaUsage(ctx context.Context, api string) (int64, error) {
	key := QuotaKey(api, vc.now())
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(key).Build().Pin(), VALKEY_RETRIES)

	units, err := res.AsInt64()
	if valkey.IsValkeyNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("[ValkeyClient] failed to read quota: %w", err)
	}
	return units, nil
}

// QuotaKey is the daily counter key, bucketed by UTC date.
func QuotaKey(api string, at time.Time) string {
	return strings.Join([]string{VALKEY_QUOTA_KEY_PREFIX, api, at.UTC().Format("2006-01-02")}, ":")
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil && isConnectionError(r.Error()) {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr || !waitRetry(ctx, i, retries) {
			break
		}
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		if !waitRetry(ctx, i, retries) {
			break
		}
	}

	return result
}

// waitRetry backs off before the next attempt. It reports false after the
// last attempt or once ctx is done.
func waitRetry(ctx context.Context, attempt, retries int) bool {
	if attempt >= retries-1 {
		return false
	}

	timer := time.NewTimer(VALKEY_RETRY_BACKOFF)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
