package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dfryer1193/tinyblog/blog/application"
	"github.com/dfryer1193/tinyblog/blog/persistence"
	"github.com/dfryer1193/tinyblog/internal/config"
	"github.com/dfryer1193/tinyblog/internal/middleware"
	"github.com/dfryer1193/tinyblog/internal/rest"
	"github.com/dfryer1193/tinyblog/internal/view"
	webhook "github.com/dfryer1193/tinyblog/webhook/http"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	postRepo := persistence.NewPostRepository(cfg.ContentDir, cfg.CacheFile, cfg.CacheTTL)
	postService := application.NewPostService(postRepo, newMarkdownRenderer(cfg), cfg.PageSize, cfg.FrontMatter)

	views, err := view.NewTemplateRenderer(cfg.ViewsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load views")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))

	if cfg.WebhookSecret != "" {
		hook, err := webhook.NewWebhookHandler(cfg.WebhookSecret, postRepo)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up webhook")
		}
		hook.RegisterRoutes(r)
	} else {
		log.Info().Msg("WEBHOOK_SECRET not set, cache invalidation webhook disabled")
	}

	rest.NewApi(r, rest.NewDispatcher(postService, views, cfg.BaseURL, cfg.BasePath), cfg.BasePath)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().
			Str("content_dir", cfg.ContentDir).
			Str("renderer", cfg.Renderer).
			Msg("Starting server on port :" + fmt.Sprint(cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func newMarkdownRenderer(cfg *config.Config) application.MarkdownRenderer {
	if cfg.Renderer == config.RendererGoldmark {
		return application.NewGoldmarkRenderer(cfg.BaseURL)
	}
	return application.NewTinyRenderer()
}
