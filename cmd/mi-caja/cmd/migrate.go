package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/mi-caja/internal/config"
	"github.com/donaldgifford/mi-caja/pkg/logger"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := oneShotContext(cmd.Context())
	defer cancel()

	db, err := openStore(ctx, &cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("running migrations", "driver", cfg.Database.Driver)

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
