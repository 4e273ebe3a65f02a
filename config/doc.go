// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment, in that order of precedence
// (environment wins).
//
// Environment variables are mapped onto nested keys, so COGNITO_CLIENT_ID
// populates `cognito.client_id` and SERVER_PORT populates `server.port`.
//
//	var cfg MyConfig
//	err := config.LoadConfig("cognito-gateway", &cfg)
package config
