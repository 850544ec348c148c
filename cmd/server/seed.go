package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/repository/file"
	"github.com/crimemap/backend/internal/repository/fixtures"
)

func newSeedCmd() *cobra.Command {
	var recordsPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write records into the configured postgres or sqlite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := fixtures.Records()
			if recordsPath != "" {
				loaded, err := file.Load(recordsPath)
				if err != nil {
					return err
				}
				inputs = loaded
			}

			st, cleanup, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, diag := hotspot.Ingest(inputs, 1, time.Now())
			logDiagnostics(diag)
			if err := st.UpsertRecords(cmd.Context(), snap.Records()); err != nil {
				return err
			}
			zap.L().Info("seeded records", zap.Int("count", snap.Len()), zap.String("data_source", cfg.DataSource))
			return nil
		},
	}
	cmd.Flags().StringVar(&recordsPath, "records", "", "YAML or JSON records file (defaults to built-in fixtures)")
	return cmd
}

func logDiagnostics(diag hotspot.Diagnostics) {
	for _, w := range diag.Warnings {
		zap.L().Warn("record ingest", zap.String("detail", w))
	}
}
