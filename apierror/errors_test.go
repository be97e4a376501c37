package apierror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"classified not found", New(KindNotFound, "gone"), KindNotFound},
		{"wrapped classified error", fmt.Errorf("outer: %w", New(KindRateLimited, "slow down")), KindRateLimited},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil-ish unknown", New(KindUnknown, "?"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsNotFound(New(KindNotFound, "x")))
	assert.False(t, IsNotFound(New(KindServerError, "x")))

	assert.True(t, IsRateLimited(New(KindRateLimited, "x")))

	assert.True(t, IsRetryable(New(KindTimeout, "x")))
	assert.True(t, IsRetryable(New(KindNetworkUnreachable, "x")))
	assert.False(t, IsRetryable(New(KindServerError, "x")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"net timeout", &fakeNetError{timeout: true}, KindTimeout},
		{"wrapped net timeout", fmt.Errorf("do: %w", &fakeNetError{timeout: true}), KindTimeout},
		{"connection refused", errors.New("connection refused"), KindNetworkUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyTransport(tt.err, "upstream unreachable")
			assert.Equal(t, tt.want, classified.Kind)
			assert.Contains(t, classified.Message, "upstream unreachable")
		})
	}
}

func TestRootCauseUnwrapped(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := fmt.Errorf("Get \"https://api.nasa.gov/x\": %w", inner)

	classified := ClassifyTransport(wrapped, "NASA API unreachable")
	assert.Equal(t, "NASA API unreachable: connection refused", classified.Message)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "timeout", KindTimeout.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
