package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/replay-miner/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "miner",
		Usage:   "Walk NinjaTrader 8 market replay downloads backward through futures contracts",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML config `FILE`",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Emit debug logs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Mine in the foreground until done or interrupted",
				Flags:  sessionFlags(),
				Action: runAction,
			},
			{
				Name:   "tui",
				Usage:  "Configure, start and stop sessions interactively",
				Flags:  sessionFlags(),
				Action: tuiAction,
			},
			{
				Name:  "schedule",
				Usage: "Start a session on a cron schedule",
				Flags: append(sessionFlags(), &cli.StringFlag{
					Name:  "cron",
					Usage: "Cron `SPEC`, e.g. \"0 18 * * 1-5\" or \"@daily\"",
				}),
				Action: scheduleAction,
			},
			{
				Name:      "contract",
				Usage:     "Print the expiry and rollover chain of a contract",
				ArgsUsage: "SYMBOL MM-YY",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Number of previous contracts to list",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "replay-dir",
						Usage: "NinjaTrader replay directory to count files in",
					},
				},
				Action: contractAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the session config",
				Action: schemaAction,
			},
			{
				Name:  "calibrate",
				Usage: "Record the screen positions of the Historical Data controls",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "countdown",
						Usage: "Seconds to hover over each control",
						Value: 5,
					},
				},
				Action: calibrateAction,
			},
			{
				Name:  "version",
				Usage: "Print the miner version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Fprintln(os.Stdout, version.GetVersion())
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
