package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutURLDisablesLimiter(t *testing.T) {
	l, err := New("", 5, time.Hour)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not-a-redis-url", 5, time.Hour)
	assert.Error(t, err)
}

func TestNilLimiterAlwaysAllows(t *testing.T) {
	var l *Limiter
	assert.True(t, l.Allow(context.Background(), "register:10.0.0.1"))
}
