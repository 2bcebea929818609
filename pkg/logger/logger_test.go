package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "warn", wantDebug: false, wantInfo: false},
		{level: "loud", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, l.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.wantInfo, l.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestLogger_NopBeforeInit(t *testing.T) {
	assert.NotNil(t, Logger())
	assert.NotNil(t, Sugar())
	assert.NotPanics(t, Sync)
}
