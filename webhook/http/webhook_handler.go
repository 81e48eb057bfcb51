package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog/log"
)

// CacheInvalidator drops a cached post listing.
type CacheInvalidator interface {
	Invalidate() error
}

// WebhookHandler receives push events from the repository hosting the posts and
// invalidates the listing cache so new or removed posts show up on the next request.
type WebhookHandler struct {
	webhookSecret []byte
	cache         CacheInvalidator
}

func NewWebhookHandler(secret string, cache CacheInvalidator) (*WebhookHandler, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is not set")
	}

	return &WebhookHandler{
		webhookSecret: []byte(secret),
		cache:         cache,
	}, nil
}

func (h *WebhookHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/webhook/git", h.HandleGitWebhook)
}

func (h *WebhookHandler) HandleGitWebhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, h.webhookSecret)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid event")
		return
	}

	switch evt := event.(type) {
	case *github.PushEvent:
		err = h.cache.Invalidate()
		if err == nil {
			log.Info().Str("ref", evt.GetRef()).Str("after", evt.GetAfter()).Msg("Invalidated post cache after push")
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to handle webhook event")
		c.String(http.StatusInternalServerError, "Error handling event")
		return
	}

	c.Status(http.StatusNoContent)
}
