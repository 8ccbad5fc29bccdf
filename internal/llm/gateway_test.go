// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	retryBaseDelay = time.Millisecond
}

// scriptedCompleter returns canned results in order.
type scriptedCompleter struct {
	calls   int
	results []error
	text    string
}

func (s *scriptedCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.results) && s.results[idx] != nil {
		return "", s.results[idx]
	}
	return s.text, nil
}

func TestInvokeImmediateSuccess(t *testing.T) {
	backend := &scriptedCompleter{text: "hello"}
	g := NewGateway(backend, nil, 3)

	text, err := g.Invoke(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 1, backend.calls)
}

func TestInvokeRetriesTransientThenSucceeds(t *testing.T) {
	backend := &scriptedCompleter{
		text: "ok",
		results: []error{
			&UpstreamError{Kind: KindRateLimit, Status: 429},
			&UpstreamError{Kind: KindServer, Status: 503},
			nil,
		},
	}
	g := NewGateway(backend, nil, 3)

	text, err := g.Invoke(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, backend.calls)
}

func TestInvokeExhaustionSurfacesTransientFailure(t *testing.T) {
	backend := &scriptedCompleter{
		results: []error{
			&UpstreamError{Kind: KindTimeout},
			&UpstreamError{Kind: KindTimeout},
			&UpstreamError{Kind: KindTimeout},
		},
	}
	g := NewGateway(backend, nil, 3)

	_, err := g.Invoke(context.Background(), "sys", "user")
	require.Error(t, err)

	var tf *TransientFailure
	require.ErrorAs(t, err, &tf)
	assert.Equal(t, 3, tf.Attempts)
	assert.Equal(t, 3, backend.calls)

	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, KindTimeout, ue.Kind)
}

func TestInvokePermanentErrorFailsFast(t *testing.T) {
	backend := &scriptedCompleter{
		results: []error{
			&UpstreamError{Kind: KindPermanent, Status: 400},
		},
	}
	g := NewGateway(backend, nil, 3)

	_, err := g.Invoke(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Equal(t, 1, backend.calls)

	var tf *TransientFailure
	assert.False(t, errors.As(err, &tf))
}

func TestInvokeNonUpstreamErrorFailsFast(t *testing.T) {
	boom := errors.New("template exploded")
	backend := &scriptedCompleter{results: []error{boom}}
	g := NewGateway(backend, nil, 3)

	_, err := g.Invoke(context.Background(), "sys", "user")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, backend.calls)
}

func TestInvokeContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &scriptedCompleter{
		results: []error{&UpstreamError{Kind: KindRateLimit}},
	}
	g := NewGateway(backend, nil, 3)

	_, err := g.Invoke(ctx, "sys", "user")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, backend.calls)
}

func TestBackoffDelayDoublesAndCaps(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = 4 * time.Second
	defer func() { retryBaseDelay = old }()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 32 * time.Second},
		{6, 60 * time.Second},
		{7, 60 * time.Second},
	}
	for _, tt := range tests {
		if got := backoffDelay(tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
