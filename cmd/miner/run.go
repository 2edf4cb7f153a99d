package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// runAction mines in the foreground with a spinner carrying the progress label.
func runAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := config.Session.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	minerEngine, release, err := newEngine(config, config.Session, log)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(miner.Progress{}.Label()),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	onLog := miner.OnLogCallback(func(line string) {
		_ = bar.Clear()
		fmt.Fprintln(os.Stdout, line)
	})
	onProgress := miner.OnProgressCallback(func(progress miner.Progress) {
		bar.Describe(progress.Label())
		_ = bar.Add(1)
	})
	onContractStart := miner.OnContractStartCallback(func(c contract.Contract, _ time.Time) {
		bar.Describe(fmt.Sprintf("%s | %s", c, miner.Progress{}.Label()))
	})

	summary, err := minerEngine.Run(ctx, miner.Callbacks{
		OnLog:           &onLog,
		OnProgress:      &onProgress,
		OnContractStart: &onContractStart,
	})
	_ = bar.Finish()

	if err != nil {
		log.Error("Mining session failed", zap.Error(err))

		return err
	}

	fmt.Fprintln(os.Stdout, formatSummary(summary))

	return nil
}

// formatSummary renders the per-contract results of a session.
func formatSummary(summary miner.Summary) string {
	status := "completed"
	if summary.Cancelled {
		status = "cancelled"
	}

	out := fmt.Sprintf("Session %s %s: %d days across %d contract(s) in %s\n",
		summary.SessionID, status, summary.SuccessCount, len(summary.Contracts),
		summary.EndedAt.Sub(summary.StartedAt).Round(time.Second))

	for _, c := range summary.Contracts {
		var note string

		switch {
		case c.Aborted:
			note = " (aborted)"
		case c.StoppedOut:
			note = " (stop-loss)"
		}

		out += fmt.Sprintf("  %-10s %3d/%-3d days%s\n", c.Contract, c.Succeeded, c.Probes, note)
	}

	return out
}
