// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps language-model completion calls with a bounded
// retry/backoff policy and classifies upstream failures.
package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Completer issues a single completion request against a model API.
// Implementations classify failures as *UpstreamError.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// retryBaseDelay is the backoff before the second attempt. The delay doubles
// each attempt and is capped at retryMaxDelay. Tests override this to avoid
// real sleeps.
var retryBaseDelay = 4 * time.Second

const (
	retryMaxDelay      = 60 * time.Second
	defaultMaxAttempts = 3
)

// Gateway invokes a Completer and retries transient failures (rate limit,
// timeout, server) with exponential backoff. Permanent failures propagate
// immediately.
type Gateway struct {
	backend     Completer
	logger      *zap.Logger
	maxAttempts int
}

// NewGateway wraps backend with the retry policy. maxAttempts <= 0 selects
// the default of 3 total attempts.
func NewGateway(backend Completer, logger *zap.Logger, maxAttempts int) *Gateway {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{backend: backend, logger: logger, maxAttempts: maxAttempts}
}

// Invoke sends the prompts to the backend. Transient failures are retried up
// to the attempt budget; exhaustion surfaces a *TransientFailure. Any other
// error returns unchanged on the first occurrence.
func (g *Gateway) Invoke(ctx context.Context, system, user string) (string, error) {
	var last error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(attempt)
			g.logger.Warn("retrying model call",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(last))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		text, err := g.backend.Complete(ctx, system, user)
		if err == nil {
			return text, nil
		}

		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Transient() {
			last = err
			continue
		}
		return "", err
	}

	g.logger.Error("model call retries exhausted",
		zap.Int("attempts", g.maxAttempts),
		zap.Error(last))
	return "", &TransientFailure{Attempts: g.maxAttempts, Last: last}
}

// backoffDelay returns the wait before the given attempt (attempt >= 2):
// base, base*2, base*4, ... capped at retryMaxDelay.
func backoffDelay(attempt int) time.Duration {
	d := retryBaseDelay
	for i := 2; i < attempt; i++ {
		d *= 2
		if d >= retryMaxDelay {
			return retryMaxDelay
		}
	}
	if d > retryMaxDelay {
		return retryMaxDelay
	}
	return d
}
