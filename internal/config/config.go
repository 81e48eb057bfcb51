package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort       = 8080
	defaultContentDir = "./posts"
	defaultCacheFile  = "posts.cache"
	defaultBaseURL    = "http://localhost/tinyblog"
	defaultBasePath   = "/tinyblog/"
	defaultPageSize   = 10
	defaultCacheTTL   = 24 * time.Hour
	defaultLogLevel   = "info"
)

const (
	RendererTiny     = "tiny"
	RendererGoldmark = "goldmark"
)

// Config holds the static settings of a blog instance. It is built once at startup.
type Config struct {
	Port       int
	ContentDir string
	CacheFile  string
	// ViewsDir overrides the embedded page views when set.
	ViewsDir string
	BaseURL  string
	BasePath string
	PageSize int
	CacheTTL time.Duration

	Renderer    string
	FrontMatter bool

	LogLevel  string
	LogPretty bool

	WebhookSecret string
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Port:       defaultPort,
		ContentDir: defaultContentDir,
		CacheFile:  defaultCacheFile,
		BaseURL:    defaultBaseURL,
		BasePath:   defaultBasePath,
		PageSize:   defaultPageSize,
		CacheTTL:   defaultCacheTTL,
		Renderer:   RendererTiny,
		LogLevel:   defaultLogLevel,
	}
}

// Load builds a Config from TINYBLOG_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("TINYBLOG_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TINYBLOG_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("TINYBLOG_CONTENT_DIR"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("TINYBLOG_CACHE_FILE"); v != "" {
		cfg.CacheFile = v
	}
	cfg.ViewsDir = os.Getenv("TINYBLOG_VIEWS_DIR")
	if v, ok := os.LookupEnv("TINYBLOG_BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv("TINYBLOG_BASE_PATH"); ok {
		cfg.BasePath = v
	}
	if v := os.Getenv("TINYBLOG_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TINYBLOG_PAGE_SIZE %q: %w", v, err)
		}
		cfg.PageSize = size
	}
	if v := os.Getenv("TINYBLOG_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TINYBLOG_CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("TINYBLOG_RENDERER"); v != "" {
		cfg.Renderer = v
	}
	if v := os.Getenv("TINYBLOG_FRONT_MATTER"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TINYBLOG_FRONT_MATTER %q: %w", v, err)
		}
		cfg.FrontMatter = enabled
	}
	if v := os.Getenv("TINYBLOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogPretty = os.Getenv("TINYBLOG_LOG_PRETTY") != ""
	cfg.WebhookSecret = os.Getenv("WEBHOOK_SECRET")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be served.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content directory cannot be empty")
	}
	if c.CacheFile == "" {
		return fmt.Errorf("cache file cannot be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL)
	}
	switch c.Renderer {
	case RendererTiny, RendererGoldmark:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	return nil
}
