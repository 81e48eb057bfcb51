package rest

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NewApi mounts the blog under basePath. Requests outside it still reach the dispatcher,
// which derives the route from the raw request URI.
func NewApi(router *gin.Engine, d *Dispatcher, basePath string) {
	blog := router.Group("/" + strings.Trim(basePath, "/"))
	{
		blog.GET("/*path", d.Handle)
	}

	router.NoRoute(d.Handle)
}
