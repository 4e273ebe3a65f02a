package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/auth/password"
	"github.com/kbukum/cognito-gateway/cognito"
)

type signUpRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignUp registers a new user. The password is checked against the local
// policy before the provider is called.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !h.bind(c, opSignUp, &req) {
		return
	}
	signed, ok := h.sign(c, opSignUp, req.Email)
	if !ok {
		return
	}
	if res := password.Validate(req.Password); !res.Valid {
		h.reject(c, opSignUp, res.Err())
		return
	}

	out, err := h.gateway.SignUp(c.Request.Context(), cognito.SignUpInput{
		Identifier: signed.Identifier,
		Password:   req.Password,
		SecretHash: signed.SecretHash,
		Email:      req.Email,
	})
	if err != nil {
		h.fail(c, opSignUp, signed.Identifier, err)
		return
	}

	h.succeed(c, opSignUp, signed.Identifier, credentialResponse(opSignUp, out, signed, req.Email))
}
