package main

import (
	"encoding/json"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/postgres"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func historyCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "history [card-number]",
		Short: "Print recorded transactions, optionally for one card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, cfg, closer, err := openDB(ctx, logger)
			if err != nil {
				return err
			}
			defer closer()

			store := postgres.NewStore(db, logger, postgres.Config{RetryAttempts: cfg.DbRetryAttempts})
			engine := screening.NewEngine(screening.EngineConfig{
				Logger: logger, Limits: store, Ledger: store, Feedback: store, IPs: store, Cards: store, Users: store,
			})

			var txns []models.Transaction
			if len(args) == 1 {
				txns, err = engine.HistoryByCard(ctx, args[0])
			} else {
				txns, err = engine.HistoryAll(ctx)
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(views.ToTransactionResponses(txns))
		},
	}
}
