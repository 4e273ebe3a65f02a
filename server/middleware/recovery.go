package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/logger"
)

// Recovery recovers from panics in handlers, logs the stack and answers
// 500 with a generic body. The process keeps serving.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered", map[string]interface{}{
					logger.FieldError: fmt.Sprintf("%v", rec),
					"stack":           string(debug.Stack()),
					"path":            c.Request.URL.Path,
					"method":          c.Request.Method,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					errors.Internal(nil).ToResponse(ServerErrorMessage))
			}
		}()
		c.Next()
	}
}

// ServerErrorMessage summarizes every unhandled failure.
const ServerErrorMessage = "Server error"

// ErrorBoundary renders errors that handlers attached with c.Error without
// writing a response. An *errors.AppError keeps its status; anything else is
// a 500. A string set as the error's Meta becomes the response message.
func ErrorBoundary(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		summary, _ := ginErr.Meta.(string)

		appErr, ok := errors.AsAppError(ginErr.Err)
		if !ok {
			appErr = errors.Internal(ginErr.Err)
			if summary == "" {
				summary = ServerErrorMessage
			}
		}

		fields := logger.ErrorFields(c.FullPath(), ginErr.Err)
		fields[logger.FieldStatus] = appErr.HTTPStatus
		fields["code"] = string(appErr.Code)
		log.WithContext(c.Request.Context()).Error("Request failed", fields)

		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse(summary))
	}
}
