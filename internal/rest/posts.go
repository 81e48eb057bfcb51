package rest

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dfryer1193/tinyblog/blog/domain"
	"github.com/dfryer1193/tinyblog/internal/view"
	"github.com/gin-gonic/gin"
)

const (
	noPostsMessage  = "<h3>No posts yet exist, create some by adding markdown files in your configured posts folder</h3>"
	notFoundMessage = "<h1>404 Page Not Found :(</h1><p>The page or post you are looking for does not exist"
)

type indexQuery struct {
	Page int `form:"page"`
}

// showIndex renders one page of posts through the index view. The page comes from the
// "page" query parameter and falls back to 1 when missing or not a positive integer.
func (d *Dispatcher) showIndex(c *gin.Context, _ ...string) error {
	page := 1
	var q indexQuery
	if err := c.ShouldBindQuery(&q); err == nil && q.Page > 0 {
		page = q.Page
	}

	result, err := d.service.Index(c.Request.Context(), page)
	switch {
	case errors.Is(err, domain.ErrNoPosts):
		writeHTML(c, http.StatusOK, noPostsMessage)
		return nil
	case errors.Is(err, domain.ErrPostNotFound):
		writeHTML(c, http.StatusNotFound, notFoundMessage)
		return nil
	case err != nil:
		return err
	}

	posts := make([]template.HTML, len(result.Posts))
	for i, fragment := range result.Posts {
		posts[i] = template.HTML(fragment)
	}

	out, err := d.views.Render("index", view.IndexData{
		Posts:    posts,
		Page:     result.Page,
		PageSize: d.service.PageSize(),
		BasePath: d.basePath,
		Blog:     d.service.Repository(),
	})
	if err != nil {
		return err
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
	return nil
}

// showPost writes the bare HTML fragment of a single post, with no page shell.
func (d *Dispatcher) showPost(c *gin.Context, args ...string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	html, err := d.service.Post(c.Request.Context(), name)
	if errors.Is(err, domain.ErrPostNotFound) {
		writeHTML(c, http.StatusNotFound, notFoundMessage)
		return nil
	}
	if err != nil {
		return err
	}

	writeHTML(c, http.StatusOK, html)
	return nil
}
