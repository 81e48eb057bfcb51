package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TINYBLOG_PORT", "TINYBLOG_CONTENT_DIR", "TINYBLOG_CACHE_FILE", "TINYBLOG_PAGE_SIZE",
		"TINYBLOG_CACHE_TTL", "TINYBLOG_RENDERER", "TINYBLOG_FRONT_MATTER",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./posts", cfg.ContentDir)
	assert.Equal(t, "posts.cache", cfg.CacheFile)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, RendererTiny, cfg.Renderer)
	assert.False(t, cfg.FrontMatter)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TINYBLOG_PORT", "9090")
	t.Setenv("TINYBLOG_CONTENT_DIR", "/srv/posts")
	t.Setenv("TINYBLOG_PAGE_SIZE", "5")
	t.Setenv("TINYBLOG_CACHE_TTL", "1h")
	t.Setenv("TINYBLOG_RENDERER", "goldmark")
	t.Setenv("TINYBLOG_FRONT_MATTER", "true")
	t.Setenv("TINYBLOG_BASE_PATH", "/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/posts", cfg.ContentDir)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, RendererGoldmark, cfg.Renderer)
	assert.True(t, cfg.FrontMatter)
	assert.Equal(t, "/", cfg.BasePath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Non-numeric port", key: "TINYBLOG_PORT", value: "http"},
		{name: "Zero page size", key: "TINYBLOG_PAGE_SIZE", value: "0"},
		{name: "Bad ttl", key: "TINYBLOG_CACHE_TTL", value: "a day"},
		{name: "Unknown renderer", key: "TINYBLOG_RENDERER", value: "pandoc"},
		{name: "Bad bool", key: "TINYBLOG_FRONT_MATTER", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
