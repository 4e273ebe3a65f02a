package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/cognito-gateway/errors"
)

// RespondWithError writes err under summary. An *apperrors.AppError keeps
// its status; anything else is a 500.
func RespondWithError(c *gin.Context, summary string, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse(summary))
}

// RespondOK sends a 200 response with body.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
