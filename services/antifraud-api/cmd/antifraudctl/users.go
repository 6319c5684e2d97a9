package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/database"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/repositories"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd inserts merchant accounts inside a single transaction. Re-runs skip existing usernames.
func seedCmd(logger *zap.Logger) *cobra.Command {
	var (
		noOfUsers int
		prefix    string
		role      string
		unlocked  bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed users that may submit transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, cfg, closer, err := openDB(ctx, logger)
			if err != nil {
				return err
			}
			defer closer()
			if err = database.RunMigrations(logger, cfg.PrimaryDbAddr); err != nil {
				return err
			}

			userRepo := repositories.NewUserRepository()
			created := 0
			err = db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
				for i := 1; i <= noOfUsers; i++ {
					tag, err := userRepo.Create(ctx, tx, models.User{
						Username:  fmt.Sprintf("%s_%d", prefix, i),
						Name:      fmt.Sprintf("Seeded %s %d", role, i),
						Role:      models.Role(role),
						Locked:    !unlocked,
						CreatedAt: time.Now(),
						UpdatedAt: time.Now(),
					})
					if err != nil {
						return err
					}
					created += int(tag.RowsAffected())
				}
				return nil
			})
			if err != nil {
				return err
			}
			logger.Info("users_seeded", zap.Int("requested", noOfUsers), zap.Int("created", created))
			return nil
		},
	}
	cmd.Flags().IntVar(&noOfUsers, "users", 10, "number of users to seed")
	cmd.Flags().StringVar(&prefix, "prefix", "merchant", "username prefix")
	cmd.Flags().StringVar(&role, "role", string(models.RoleMerchant), "role assigned to seeded users")
	cmd.Flags().BoolVar(&unlocked, "unlocked", true, "create users unlocked")
	return cmd
}

func usersCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user lock state",
	}
	cmd.AddCommand(setLockedCmd(logger, "lock", true))
	cmd.AddCommand(setLockedCmd(logger, "unlock", false))
	return cmd
}

func setLockedCmd(logger *zap.Logger, use string, locked bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [username]",
		Short: fmt.Sprintf("%s a user", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, _, closer, err := openDB(ctx, logger)
			if err != nil {
				return err
			}
			defer closer()

			userRepo := repositories.NewUserRepository()
			return db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
				n, err := userRepo.UpdateLocked(ctx, tx, args[0], locked)
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("user %q not found", args[0])
				}
				logger.Info("user_lock_updated", zap.String("username", args[0]), zap.Bool("locked", locked))
				return nil
			})
		},
	}
}

func limitsCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print the current adaptive limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, cfg, closer, err := openDB(ctx, logger)
			if err != nil {
				return err
			}
			defer closer()

			store := postgres.NewStore(db, logger, postgres.Config{RetryAttempts: cfg.DbRetryAttempts})
			limits, err := store.Read(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "max_allowed=%d max_manual_processing=%d\n", limits.MaxAllowed, limits.MaxManualProcessing)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default adaptive limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, cfg, closer, err := openDB(ctx, logger)
			if err != nil {
				return err
			}
			defer closer()

			store := postgres.NewStore(db, logger, postgres.Config{RetryAttempts: cfg.DbRetryAttempts})
			engine := screening.NewEngine(screening.EngineConfig{Logger: logger, Limits: store})
			limits, err := engine.ResetLimits(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "max_allowed=%d max_manual_processing=%d\n", limits.MaxAllowed, limits.MaxManualProcessing)
			return nil
		},
	})
	return cmd
}
