package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/cognito"
)

type signInRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignIn authenticates with email and password and returns the provider's
// token set (or challenge) as data.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if !h.bind(c, opSignIn, &req) {
		return
	}
	signed, ok := h.sign(c, opSignIn, req.Email)
	if !ok {
		return
	}

	out, err := h.gateway.InitiateAuth(c.Request.Context(), cognito.AuthInput{
		Identifier: signed.Identifier,
		Password:   req.Password,
		SecretHash: signed.SecretHash,
	})
	if err != nil {
		h.fail(c, opSignIn, signed.Identifier, err)
		return
	}

	h.succeed(c, opSignIn, signed.Identifier, credentialResponse(opSignIn, out, signed, req.Email))
}
