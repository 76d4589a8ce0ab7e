package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const serverErrorMessage = "Server Error"

// StatusFor maps an error to its HTTP status and the message shown to
// clients. Unknown errors become 500 with their detail hidden in production.
func StatusFor(err error, production bool) (int, string) {
	var verr *types.ValidationError
	var nf *types.NotFoundError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden, types.ErrForbidden.Error()
	case errors.Is(err, config.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "Image uploads are not configured"
	case errors.Is(err, types.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, types.ErrBadGateway):
		return http.StatusBadGateway, types.ErrBadGateway.Error()
	}
	if production {
		return http.StatusInternalServerError, serverErrorMessage
	}
	return http.StatusInternalServerError, serverErrorMessage + ": " + err.Error()
}

// ErrorHandler renders the last error attached to the context with
// c.Error as an error envelope. Handlers that already wrote a response are
// left alone.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := StatusFor(err, production)
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "error", err)
		}
		c.JSON(status, types.APIResponse{Success: false, Error: msg})
	}
}

// Recovery converts panics into a 500 envelope.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("panic recovered", "method", c.Request.Method, "path", c.Request.URL.Path, "panic", recovered)
		msg := serverErrorMessage
		if !production {
			if err, ok := recovered.(error); ok {
				msg += ": " + err.Error()
			} else if s, ok := recovered.(string); ok {
				msg += ": " + s
			}
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.APIResponse{Success: false, Error: msg})
	})
}
