package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/urfave/cli/v3"
)

// tuiAction runs the interactive miner.
func tuiAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m := NewModel(config.Session, engineStarter(config, logger.NewNopLogger()))

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}
