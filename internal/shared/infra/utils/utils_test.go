package utils

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTernary(t *testing.T) {
	assert.Equal(t, "desc", Ternary(true, "desc", "asc"))
	assert.Equal(t, 2, Ternary(false, 1, 2))
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 2, time.Millisecond, func() error {
			calls++
			return errors.New("down")
		})
		assert.EqualError(t, err, "down")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Retry(ctx, 5, time.Second, func() error { return errors.New("down") })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestUnmarshalAndHandle(t *testing.T) {
	type payload struct {
		IRN string `json:"irn"`
	}

	var got payload
	ok := UnmarshalAndHandle[payload](zap.NewNop(), "invoice.generated", json.RawMessage(`{"irn":"IRN1"}`), func(p payload) { got = p })
	assert.True(t, ok)
	assert.Equal(t, "IRN1", got.IRN)

	called := false
	ok = UnmarshalAndHandle[payload](zap.NewNop(), "invoice.generated", json.RawMessage(`{`), func(p payload) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{n: -3, want: 1},
		{n: 0, want: 1},
		{n: 50, want: 50},
		{n: 101, want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.n, 1, 100))
	}
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}

func TestFirstNonBlank(t *testing.T) {
	assert.Equal(t, "samples", FirstNonBlank("  ", " samples ", "all"))
	assert.Equal(t, "all", FirstNonBlank("", "all"))
	assert.Empty(t, FirstNonBlank())
}
