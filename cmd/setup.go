package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/lvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil {
		if !cmd.Bool("force") {
			return fmt.Errorf("%w: %s already exists (use --force to overwrite)", shared.ErrInvalidArgument, path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Point [files] catalog and records at your scraped tables\n")
	r.writePlain("2. Run 'lvx setup database' then 'lvx analyze'\n")
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.Config()
	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.database()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	status, err := shared.GetMigrationStatus(db)
	if err != nil {
		return err
	}

	r.logger.Info("setup complete", "database", config.Database.Path, "version", status.Current)
	r.writePlain("✓ Database ready: %s\n", config.Database.Path)
	r.writePlain("  Schema version: %d (%d applied, %d pending)\n", status.Current, len(status.Applied), len(status.Pending))
	return nil
}
