package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dfryer1193/tinyblog/blog/application"
	"github.com/dfryer1193/tinyblog/internal/middleware"
	"github.com/dfryer1193/tinyblog/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	actionIndex = "index"
	actionPosts = "posts"
)

// ErrUnknownAction is returned by Dispatch when no handler is bound to the route's action.
var ErrUnknownAction = errors.New("unknown action")

// Route is a request path split into an action and its positional arguments.
// Args is nil when the path names only an action.
type Route struct {
	Action string
	Args   []string
}

// ActionFunc handles one action. It writes the response itself; a returned error means
// nothing has been written yet.
type ActionFunc func(c *gin.Context, args ...string) error

// ParseRoute splits path on "/" into a Route. An empty path is the index with no arguments.
func ParseRoute(path string) Route {
	path = strings.Trim(path, "/")
	if path == "" {
		return Route{Action: actionIndex, Args: []string{}}
	}

	parts := strings.Split(path, "/")
	route := Route{Action: parts[0]}
	if len(parts) > 1 {
		route.Args = parts[1:]
	}
	return route
}

// RouteablePath picks the part of the request that names the route. A non-empty subPath wins;
// otherwise requestURI is cut after baseURL, or after basePath, or used as-is.
func RouteablePath(subPath, requestURI, baseURL, basePath string) string {
	if subPath != "" {
		return subPath
	}

	if baseURL != "" {
		if i := strings.Index(requestURI, baseURL); i >= 0 {
			return requestURI[i+len(baseURL):]
		}
	}

	if basePath != "" {
		if i := strings.Index(requestURI, basePath); i >= 0 {
			return requestURI[i+len(basePath):]
		}
	}

	return requestURI
}

// requestURI is the raw request target without its query string
func requestURI(r *http.Request) string {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.Path
	}
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	return uri
}

// Dispatcher routes blog requests to the index and post actions.
type Dispatcher struct {
	service  *application.PostService
	views    view.Renderer
	baseURL  string
	basePath string
	actions  map[string]ActionFunc
}

func NewDispatcher(service *application.PostService, views view.Renderer, baseURL, basePath string) *Dispatcher {
	d := &Dispatcher{
		service:  service,
		views:    views,
		baseURL:  baseURL,
		basePath: basePath,
	}
	d.actions = map[string]ActionFunc{
		actionIndex: d.showIndex,
		actionPosts: d.showPost,
	}
	return d
}

// Dispatch invokes the handler bound to route.Action with the route's arguments.
// Unknown actions invoke nothing and return ErrUnknownAction.
func (d *Dispatcher) Dispatch(c *gin.Context, route Route) error {
	action, ok := d.actions[route.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, route.Action)
	}
	return action(c, route.Args...)
}

// Handle is the gin entry point: it refreshes the listing, resolves the route and dispatches it.
func (d *Dispatcher) Handle(c *gin.Context) {
	if err := d.service.Refresh(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to refresh posts")
		writeHTML(c, http.StatusInternalServerError, middleware.ErrorPage)
		return
	}

	path := RouteablePath(c.Param("path"), requestURI(c.Request), d.baseURL, d.basePath)
	route := ParseRoute(path)

	err := d.Dispatch(c, route)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownAction):
		log.Debug().Str("action", route.Action).Msg("No handler for action")
		writeHTML(c, http.StatusNotFound, notFoundMessage)
	default:
		log.Error().Err(err).Str("action", route.Action).Strs("args", route.Args).Msg("Failed to handle request")
		c.Error(err)
		writeHTML(c, http.StatusInternalServerError, middleware.ErrorPage)
	}
}

func writeHTML(c *gin.Context, status int, body string) {
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
