package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorPage is the generic body sent when a request fails unexpectedly.
const ErrorPage = "<h1>500 Internal Server Error :(</h1><p>Something went wrong while rendering this page</p>"

func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Recovered from panic")

		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(ErrorPage))
		c.Abort()
	}
}
