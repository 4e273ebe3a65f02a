package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/cognito"
)

type confirmRequest struct {
	Email string `json:"email" form:"email" validate:"required"`
	Code  string `json:"code" form:"code" validate:"required"`
}

// ConfirmSignUp confirms a registration with the code the provider sent.
func (h *Handler) ConfirmSignUp(c *gin.Context) {
	var req confirmRequest
	if !h.bind(c, opConfirm, &req) {
		return
	}
	signed, ok := h.sign(c, opConfirm, req.Email)
	if !ok {
		return
	}

	out, err := h.gateway.ConfirmSignUp(c.Request.Context(), cognito.ConfirmInput{
		Identifier: signed.Identifier,
		Code:       req.Code,
		SecretHash: signed.SecretHash,
	})
	if err != nil {
		h.fail(c, opConfirm, signed.Identifier, err)
		return
	}

	h.succeed(c, opConfirm, signed.Identifier, credentialResponse(opConfirm, out, signed, req.Email))
}
