package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/replay"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/urfave/cli/v3"
)

// contractAction prints the calendar facts of a contract and its rollover chain.
func contractAction(_ context.Context, cmd *cli.Command) error {
	input := strings.Join(cmd.Args().Slice(), " ")
	if input == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "usage: miner contract SYMBOL MM-YY")
	}

	c, err := contract.Parse(input)
	if err != nil {
		return err
	}

	depth := int(cmd.Int("depth"))

	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	store := replayStore(config)

	fmt.Fprintf(os.Stdout, "Contract: %s\n", c)
	fmt.Fprintf(os.Stdout, "Expiry:   %s\n", contract.Expiry(c).Format(time.DateOnly))

	fmt.Fprintln(os.Stdout, "Rollover:")

	for _, link := range contract.Rollover(c, depth) {
		window := contract.ActiveTradingPeriod(link)
		fmt.Fprintf(os.Stdout, "  %-10s active %s .. %s", link,
			window.StartExpiry.Format(time.DateOnly), window.EndExpiry.Format(time.DateOnly))

		if store != nil {
			if count, err := store.Count(link); err == nil {
				fmt.Fprintf(os.Stdout, "  %d file(s) on disk", count)
			}
		}

		fmt.Fprintln(os.Stdout)
	}

	return nil
}

// replayStore returns the store of the configured replay directory, or nil
// when no directory can be resolved.
func replayStore(config FileConfig) *replay.Store {
	root := config.Session.ReplayDir
	if root == "" {
		var err error

		root, err = replay.DefaultRoot()
		if err != nil {
			return nil
		}
	}

	return replay.NewStore(root, config.Session.ArtifactExtension)
}

// schemaAction prints the JSON schema of the session config.
func schemaAction(_ context.Context, _ *cli.Command) error {
	config := DefaultFileConfig().Session

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, schema)

	return nil
}
