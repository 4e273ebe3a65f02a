// Package cognito is the gateway's client for the Cognito Identity Provider
// API.
//
// Client maps the five operations the HTTP layer needs (SignUp,
// ConfirmSignUp, InitiateAuth, GlobalSignOut, GetUser) onto
// aws-sdk-go-v2. Each call is exactly one network attempt bounded by the
// configured timeout; provider-side failures surface as *ProviderError so
// callers can switch on the exception name:
//
//	var perr *cognito.ProviderError
//	if errors.As(err, &perr) && perr.Name == cognito.ErrUsernameExists {
//	    ...
//	}
package cognito
