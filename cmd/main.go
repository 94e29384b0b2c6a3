package main

import (
	"context"
	"net/http"
	"os"

	"github.com/desertthunder/latke/internal/api"
	"github.com/desertthunder/latke/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	transport := api.NewHTTPTransport(config.API.BaseURL, &http.Client{Timeout: config.API.Timeout()})
	client := api.NewClient(api.ClientOpts{
		Transport:        transport,
		Logger:           logger,
		Quota:            config.API.RateQuota,
		Window:           config.API.RateWindow(),
		MaxRetries:       config.API.MaxRetries,
		RetryDelay:       config.API.RetryDelay(),
		RefreshThreshold: config.API.RefreshThreshold(),
	})

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "latke",
		Usage:    "Stream and manage your iBroadcast library from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
