package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("FRETLOG_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if dataDir, err := shared.DataDir(); err == nil {
		path := filepath.Join(dataDir, "config.toml")
		if _, err := os.Stat(path); err == nil {
			if loadedConfig, err := shared.LoadConfig(path); err == nil {
				config = loadedConfig
			}
		}
	}
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "fretlog",
		Usage:    "Track the songs you are learning on guitar",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
