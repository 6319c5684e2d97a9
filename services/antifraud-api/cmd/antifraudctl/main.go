package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/database"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/configs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	pkg.InitLogger("antifraudctl")
	logger := pkg.Logger
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:          "antifraudctl",
		Short:        "Operational tooling for the anti-fraud service",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(migrateCmd(logger))
	rootCmd.AddCommand(seedCmd(logger))
	rootCmd.AddCommand(usersCmd(logger))
	rootCmd.AddCommand(limitsCmd(logger))
	rootCmd.AddCommand(historyCmd(logger))
	rootCmd.AddCommand(loadCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects to the configured primary database. Callers must invoke the returned closer.
func openDB(ctx context.Context, logger *zap.Logger) (*database.DB, *configs.Config, func(), error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.StoreDriver != configs.StoreDriverPostgres {
		return nil, nil, nil, fmt.Errorf("store driver %q has no persistent state to manage", cfg.StoreDriver)
	}
	db, closer, err := database.New(ctx, logger, database.Config{
		PrimaryDSN: cfg.PrimaryDbAddr,
		MaxConns:   cfg.MaxDbCons,
		MinConns:   cfg.MinDbCons,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return db, cfg, closer, nil
}

func migrateCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load(logger)
			if err != nil {
				return err
			}
			return database.RunMigrations(logger, cfg.PrimaryDbAddr)
		},
	}
}
