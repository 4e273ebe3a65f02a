package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/auth"
	"github.com/kbukum/cognito-gateway/auth/authctx"
	"github.com/kbukum/cognito-gateway/auth/jwt"
	"github.com/kbukum/cognito-gateway/cognito"
	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/logger"
)

// Gate responses.
const (
	MsgTokenRequired    = "Authentication token required"
	ReasonNoAuthHeader  = "Authorization header not found"
	ReasonNoBearerToken = "Bearer token not found"
	MsgAuthFailed       = "An error occurred while authenticating"
)

// gateMessages maps provider exception names to the gate's failure message.
var gateMessages = map[string]string{
	cognito.ErrNotAuthorized: "Token is invalid or expired",
	cognito.ErrUserNotFound:  "User not found",
}

// BearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Gate authenticates the request's bearer token with resolver before the
// wrapped handlers run. On success the identity is stored in the request
// context (see authctx). Requests without a token are rejected with 401 and
// never reach the resolver.
func Gate(resolver auth.IdentityResolver, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("gate")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, http.StatusUnauthorized, MsgTokenRequired, ReasonNoAuthHeader)
			return
		}
		token, ok := BearerToken(header)
		if !ok {
			reject(c, http.StatusUnauthorized, MsgTokenRequired, ReasonNoBearerToken)
			return
		}

		ctx := c.Request.Context()
		identity, err := resolver.ResolveIdentity(ctx, token)
		if err != nil {
			status, message, detail := gateFailure(err)

			fields := logger.ErrorFields("authenticate", err)
			fields[logger.FieldStatus] = status
			if claims, cerr := jwt.Inspect(token); cerr == nil {
				for k, v := range claims.LogFields() {
					fields[k] = v
				}
			}
			log.WithContext(ctx).Warn("Authentication rejected", fields)

			reject(c, status, message, detail)
			return
		}

		ctx = authctx.Set(ctx, identity)
		ctx = logger.ContextWithUserID(ctx, identity.Subject())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// gateFailure derives the rejection status and body from a resolver error.
// The provider's HTTP status is used when known, otherwise 401.
func gateFailure(err error) (status int, message, detail string) {
	status = http.StatusUnauthorized
	message = MsgAuthFailed
	detail = err.Error()

	if perr, ok := cognito.AsProviderError(err); ok {
		if perr.HTTPStatus != 0 {
			status = perr.HTTPStatus
		}
		if m, ok := gateMessages[perr.Name]; ok {
			message = m
		}
		detail = perr.Message
	} else if appErr, ok := errors.AsAppError(err); ok {
		detail = appErr.Message
	}
	return status, message, detail
}

func reject(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, errors.ErrorResponse{Message: message, Error: detail})
}
