package handler

import "github.com/kbukum/cognito-gateway/cognito"

// operation holds the response messages of one route.
type operation struct {
	name     string
	success  string
	failure  string
	messages map[string]string
}

// message returns the user-facing message for a provider error name.
func (o operation) message(name string) string {
	if m, ok := o.messages[name]; ok {
		return m
	}
	return o.failure
}

var (
	opSignUp = operation{
		name:    "signup",
		success: "User registration succeeded",
		failure: "User registration failed",
		messages: map[string]string{
			cognito.ErrUsernameExists:  "This email address is already registered",
			cognito.ErrInvalidPassword: "Password does not satisfy the user pool policy",
		},
	}

	opConfirm = operation{
		name:    "confirm",
		success: "User confirmation succeeded",
		failure: "User confirmation failed",
		messages: map[string]string{
			cognito.ErrCodeMismatch: "Invalid confirmation code",
			cognito.ErrExpiredCode:  "Confirmation code has expired",
			cognito.ErrUserNotFound: "User not found",
		},
	}

	opSignIn = operation{
		name:    "signin",
		success: "Sign-in succeeded",
		failure: "Sign-in failed",
		messages: map[string]string{
			cognito.ErrNotAuthorized:    "Incorrect email address or password",
			cognito.ErrUserNotConfirmed: "Email address has not been confirmed",
			cognito.ErrUserNotFound:     "User not found",
		},
	}

	opLogout = operation{
		name:    "logout",
		success: "Logout succeeded",
		failure: "Logout failed",
		messages: map[string]string{
			cognito.ErrNotAuthorized: "Token is invalid or expired",
		},
	}
)

// Fixed responses that are not provider translations.
const (
	MsgProtected        = "Protected route accessed"
	ReasonTokenMissing  = "Token not provided"
	ReasonMalformedBody = "request body could not be decoded"
)
