package handler

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/auth/credential"
	"github.com/kbukum/cognito-gateway/cognito"
	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/logger"
	"github.com/kbukum/cognito-gateway/server"
	"github.com/kbukum/cognito-gateway/validation"
)

// BasePath is the prefix of every route.
const BasePath = "/auth"

// Response is the success envelope of the credential routes.
type Response struct {
	Message  string `json:"message"`
	Data     any    `json:"data"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResponse is the success body of routes that return no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler serves the authentication routes. It holds no per-request state
// and is safe for concurrent use.
type Handler struct {
	gateway cognito.Gateway
	signer  credential.Signer
	log     *logger.Logger
}

// New creates a Handler. A nil log discards output.
func New(gateway cognito.Gateway, signer credential.Signer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		gateway: gateway,
		signer:  signer,
		log:     log.WithComponent("handler"),
	}
}

// RegisterRoutes mounts the routes under BasePath. gate guards the routes
// that require a session.
func (h *Handler) RegisterRoutes(r gin.IRouter, gate gin.HandlerFunc) {
	g := r.Group(BasePath)
	g.POST("/signup", h.SignUp)
	g.POST("/confirm", h.ConfirmSignUp)
	g.POST("/signin", h.SignIn)
	g.POST("/logout", gate, h.Logout)
	g.GET("/protected", gate, h.Protected)
}

// bind decodes and validates the request body into req. JSON and form
// bodies are accepted; an empty body is validated as an empty request.
// On failure the 400 response is already written.
func (h *Handler) bind(c *gin.Context, op operation, req any) bool {
	if err := c.ShouldBind(req); err != nil && !stderrors.Is(err, io.EOF) {
		h.reject(c, op, errors.Validation(ReasonMalformedBody).WithCause(err))
		return false
	}
	if err := validation.Validate(req); err != nil {
		h.reject(c, op, err)
		return false
	}
	return true
}

// sign derives the identifier and secret hash for email.
func (h *Handler) sign(c *gin.Context, op operation, email string) (credential.Signed, bool) {
	signed, err := h.signer.Sign(email)
	if err != nil {
		h.reject(c, op, err)
		return credential.Signed{}, false
	}
	return signed, true
}

// reject answers a locally detected input problem with 400.
func (h *Handler) reject(c *gin.Context, op operation, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Validation(err.Error())
	}
	h.log.WithContext(c.Request.Context()).Debug("Request rejected", map[string]interface{}{
		logger.FieldOperation: op.name,
		logger.FieldError:     appErr.Message,
		"code":                string(appErr.Code),
	})
	server.RespondWithError(c, op.failure, appErr)
}

// fail translates a gateway error. Provider errors become 400 with the
// operation's mapped message and the raw provider message; anything else is
// left to the error boundary.
func (h *Handler) fail(c *gin.Context, op operation, username string, err error) {
	perr, ok := cognito.AsProviderError(err)
	if !ok {
		_ = c.Error(err).SetMeta(op.failure)
		return
	}

	h.log.WithContext(c.Request.Context()).Warn("Provider rejected request", map[string]interface{}{
		logger.FieldOperation: op.name,
		logger.FieldProvider:  perr.Name,
		logger.FieldUsername:  username,
		logger.FieldError:     perr.Message,
	})
	c.JSON(http.StatusBadRequest, errors.ErrorResponse{
		Message: op.message(perr.Name),
		Error:   perr.Message,
	})
}

func (h *Handler) succeed(c *gin.Context, op operation, username string, body any) {
	h.log.WithContext(c.Request.Context()).Info("Request succeeded", map[string]interface{}{
		logger.FieldOperation: op.name,
		logger.FieldUsername:  username,
	})
	server.RespondOK(c, body)
}

// credentialResponse builds the envelope returned by signup, confirm and signin.
func credentialResponse(op operation, data any, signed credential.Signed, email string) Response {
	return Response{
		Message:  op.success,
		Data:     data,
		Username: signed.Identifier,
		Email:    email,
	}
}
