package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/auth/authctx"
	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/server"
	"github.com/kbukum/cognito-gateway/server/middleware"
)

// Logout signs the token's user out of every device.
func (h *Handler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
			Message: opLogout.failure,
			Error:   ReasonTokenMissing,
		})
		return
	}

	var username string
	if id, ok := authctx.Get(c.Request.Context()); ok {
		username = id.Username
	}

	if err := h.gateway.GlobalSignOut(c.Request.Context(), token); err != nil {
		h.fail(c, opLogout, username, err)
		return
	}

	h.succeed(c, opLogout, username, MessageResponse{Message: opLogout.success})
}

// Protected echoes the identity the gate resolved.
func (h *Handler) Protected(c *gin.Context) {
	identity, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		_ = c.Error(errors.Internal(err))
		return
	}
	server.RespondOK(c, gin.H{
		"message": MsgProtected,
		"user":    identity,
	})
}
