package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables that are already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path (optional)
	EnvFile    string // explicit .env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for serviceName into cfg. A missing config
// file is not an error: defaults and the environment still apply.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = firstExisting(lc.FileSystem, configSearchPaths(serviceName))
	}
	envFile := lc.EnvFile
	if envFile == "" {
		envFile = firstExisting(lc.FileSystem, envSearchPaths(serviceName))
	}

	v := viper.New()

	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("../cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnv sets every KEY=value pair under all of its nested key variants so
// that viper can unmarshal environment overrides into nested structs.
func bindEnv(v *viper.Viper, environ []string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || key == "" {
			continue
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants returns the candidate nested keys for an environment name.
//
//	COGNITO_CLIENT_SECRET -> [cognito_client_secret, cognito.client.secret,
//	                          cognito.client_secret, cognito_client.secret]
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants,
			strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"),
			strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."),
		)
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, s := range variants {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
