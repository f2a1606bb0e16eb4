package middleware

import (
	"net/http"

	"inventario/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const mensajeInterno = "Error interno del servidor"

// ErrorHandler renders the last error attached with c.Error when the handler
// wrote nothing. Domain errors keep their status and message; anything else
// becomes a generic 500 and only the log sees the cause.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apierror.Status(err)
		if status != http.StatusInternalServerError {
			c.AbortWithStatusJSON(status, apierror.New(err.Error()))
			return
		}

		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("route", c.FullPath()).
			Str("method", c.Request.Method).
			Int("errors", len(c.Errors)).
			Err(err).
			Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeInterno))
	}
}

// Recovery converts panics into the same 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.Request.URL.Path).
				Interface("panic", r).
				Msg("panic recovered")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeInterno))
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}
