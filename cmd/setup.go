package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/noblex1/moviex/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if _, err := r.openStorage(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)

	r.writePlain("✓ Database ready: %s\n", r.config.Database.Path)
	if err := r.config.Validate(); errors.Is(err, shared.ErrMissingAPIKey) {
		r.writePlainln("Next steps:")
		r.writePlain("1. Set api.key in %s (or export OMDB_API_KEY)\n", configPath)
		r.writePlain("2. Run 'moviex search \"the matrix\"' to test the key\n")
	} else if err != nil {
		return err
	}

	return nil
}
