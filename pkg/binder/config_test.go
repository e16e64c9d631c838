package binder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("FORMKIT_DATE_LAYOUT", "02.01.2006")
	t.Setenv("FORMKIT_TRIM_SPACE", "true")
	t.Setenv("FORMKIT_MAX_VALUES", "5")

	cfg, err := binder.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006", cfg.DateLayout)
	assert.True(t, cfg.TrimSpace)
	assert.True(t, cfg.NormalizeUnicode)
	assert.Equal(t, 5, cfg.MaxValues)
}

func TestDefaultConfig(t *testing.T) {
	cfg := binder.DefaultConfig()
	assert.Equal(t, binder.DefaultDateLayout, cfg.DateLayout)
	assert.Equal(t, binder.DefaultMaxValues, cfg.MaxValues)
	assert.False(t, cfg.TrimSpace)
}
