package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fretlog/fretlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if missing, then initializes the database
// and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		dataDir, err := shared.DataDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(dataDir, "config.toml")
	}

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	dbPath, err := config.ResolveDatabasePath()
	if err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", dbPath)

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := shared.CurrentSchemaVersion(db)
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", dbPath)
	r.writePlainln("✓ Database ready at %s (schema version %d)", dbPath, version)
	if config.Credentials.LastFM.APIKey == "" {
		r.writePlainln("No Last.fm API key configured; songs will be saved as custom entries. Add one under [credentials.lastfm] in %s", configPath)
	}
	return nil
}

// DBReset drops and recreates the songs table. Refuses to run unless the
// confirmation environment variable is set.
func (r *Runner) DBReset(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.ensureCatalog(); err != nil {
		return err
	}

	r.logger.Warn("resetting schema, all songs will be deleted")

	if err := shared.ResetSchema(r.db); err != nil {
		if errors.Is(err, shared.ErrResetRefused) {
			r.writePlainln("✗ %v", err)
			return nil
		}
		return err
	}

	r.writePlainln("✓ Schema reset, the catalog is now empty")
	return nil
}
