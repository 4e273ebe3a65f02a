// Package version reports build information. Version, commit and build
// time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/cognito-gateway/version.Version=1.2.0"
//
// Values left unset are filled from the module's embedded VCS settings.
package version
