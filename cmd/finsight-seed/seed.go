package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/finsight/internal/cli"
	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/seed"
	"github.com/spf13/cobra"
)

// successMessage is printed to stdout after a committed seed run.
const successMessage = "Test data seeded successfully."

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if cfg.AutoCheckpoint {
		manager, err := store.NewCheckpointManager()
		if err != nil {
			return fmt.Errorf("failed to create checkpoint manager: %w", err)
		}
		info, err := manager.AutoCheckpoint(ctx, "seed")
		if err != nil {
			return err
		}
		slog.Info("Created checkpoint before seeding", "checkpoint", info.ID)
	}

	var (
		opts     []seed.Option
		progress *cli.SeedProgress
	)
	if !cfg.Quiet {
		progress = cli.NewSeedProgress(cmd.ErrOrStderr())
		opts = append(opts, seed.WithProgress(progress.Update))
	}

	summary, err := seed.New(store, opts...).Run(ctx)
	if err != nil {
		if progress != nil {
			progress.Abort()
		}
		return seedError(err)
	}

	slog.Debug("Seed run complete",
		"run_id", summary.RunID,
		"database", store.Path(),
		"accounts_seeded", len(summary.PerAccount),
		"from", summary.Window.Start.Format(model.DateLayout),
		"to", summary.Window.End.Format(model.DateLayout))

	fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(successMessage))
	return nil
}

// seedError wraps a failed run. Cancellation gets a message of its own since
// the run was rolled back rather than broken.
func seedError(err error) error {
	if errors.Is(err, context.Canceled) {
		return common.NewUserError("Seeding interrupted. The run was rolled back and nothing was written.", err)
	}
	return fmt.Errorf("seeding failed: %w", err)
}
