// Command cognito-gateway serves the /auth REST API in front of an AWS
// Cognito user pool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/cognito-gateway/bootstrap"
)

func main() {
	var cfg Config
	if err := loadConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if _, err := wire(app); err != nil {
		app.Logger.Fatal("Wiring failed", map[string]interface{}{"error": err.Error()})
	}

	if err := app.Run(context.Background()); err != nil {
		app.Logger.Fatal("Application failed", map[string]interface{}{"error": err.Error()})
	}
}
