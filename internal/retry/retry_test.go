package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("upload server returned 503")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return errors.New("upload server returned 400")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_StopsOnPermanent(t *testing.T) {
	attempts := 0
	cause := errors.New("connection refused")
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return Permanent(cause)
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return errors.New("i/o timeout")
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
}

func TestDoWithResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}

	_, err := DoWithResult(ctx, cfg, func() (string, error) {
		cancel()
		return "", errors.New("connection reset by peer")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

type explicitErr struct{ retry bool }

func (e explicitErr) Error() string     { return "explicit" }
func (e explicitErr) IsRetryable() bool { return e.retry }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", errors.New("context deadline: i/o timeout"), true},
		{"rate limited", errors.New("status 429 Too Many Requests"), true},
		{"bad request", errors.New("status 400"), false},
		{"explicit true", explicitErr{retry: true}, true},
		{"explicit false wins over pattern", explicitErr{retry: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
