package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			l, err := New(level, false)
			require.NoError(t, err)
			want, _ := zapcore.ParseLevel(level)
			assert.True(t, l.Core().Enabled(want))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l, err := New("info", true)
	require.NoError(t, err)
	assert.Same(t, l, OrNop(l))
}
