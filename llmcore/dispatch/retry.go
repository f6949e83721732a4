package dispatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agentflow/llmcore/errs"
	"github.com/BaSui01/agentflow/llmcore/eventstream"
	"github.com/BaSui01/agentflow/llmcore/types"
)

// RetryConfig configures the connection-establishment retry loop.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	RetryableOnly bool
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		RetryableOnly: true,
	}
}

// retryingProvider wraps a Provider so that failures during
// connection establishment are retried with exponential backoff.
// Only the connection phase is retried; once Stream has returned a
// live eventstream.Stream, any error surfaces as a normal Error
// event and is never retried here.
type retryingProvider struct {
	inner  Provider
	config RetryConfig
	logger *zap.Logger
}

// WithRetry decorates inner with connection-phase retry.
func WithRetry(inner Provider, config RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &retryingProvider{inner: inner, config: config, logger: logger.With(zap.String("component", "retry_provider"))}
}

func (p *retryingProvider) Stream(ctx context.Context, apiKey string, model types.Model, convCtx types.Context) (*eventstream.Stream, error) {
	var lastErr error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := p.calculateDelay(attempt)
			p.logger.Debug("retrying stream connection", zap.Int("attempt", attempt), zap.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		stream, err := p.inner.Stream(ctx, apiKey, model, convCtx)
		if err == nil {
			return stream, nil
		}

		lastErr = err
		if p.config.RetryableOnly && !errs.IsRetryable(err) {
			return nil, err
		}

		p.logger.Warn("stream connection failed, will retry", zap.Int("attempt", attempt), zap.Error(err))
	}

	return nil, fmt.Errorf("stream connection failed after %d retries: %w", p.config.MaxRetries, lastErr)
}

func (p *retryingProvider) calculateDelay(attempt int) time.Duration {
	delay := float64(p.config.InitialDelay) * math.Pow(p.config.BackoffFactor, float64(attempt-1))
	if delay > float64(p.config.MaxDelay) {
		delay = float64(p.config.MaxDelay)
	}
	return time.Duration(delay)
}
