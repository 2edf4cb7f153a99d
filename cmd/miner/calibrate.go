package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rxtech-lab/replay-miner/internal/automation/keystroke"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// calibrationTarget is one control the operator points at.
type calibrationTarget struct {
	label string
	apply func(config *keystroke.Config, p keystroke.Point)
}

var calibrationTargets = []calibrationTarget{
	{
		label: "INSTRUMENT field",
		apply: func(config *keystroke.Config, p keystroke.Point) { config.Instrument = p },
	},
	{
		label: "FROM date field",
		apply: func(config *keystroke.Config, p keystroke.Point) { config.Dates = append(config.Dates, p) },
	},
	{
		label: "TO date field",
		apply: func(config *keystroke.Config, p keystroke.Point) { config.Dates = append(config.Dates, p) },
	},
	{
		label: "DOWNLOAD button",
		apply: func(config *keystroke.Config, p keystroke.Point) { config.Download = p },
	},
}

// calibrate walks the operator through every control and returns the
// resulting keystroke config. The enabled color is sampled at the download
// button, which must be enabled while calibrating.
func calibrate(ctx context.Context, desktop keystroke.Desktop, base keystroke.Config, countdown int, out io.Writer) (keystroke.Config, error) {
	config := base
	config.Dates = nil

	fmt.Fprintln(out, "=== CALIBRATION WIZARD ===")

	for _, target := range calibrationTargets {
		fmt.Fprintf(out, "Position mouse over %s\n", target.label)

		point, err := keystroke.Calibrate(ctx, desktop, countdown, func(remaining int) {
			fmt.Fprintf(out, "  %d...\n", remaining)
		})
		if err != nil {
			return keystroke.Config{}, err
		}

		target.apply(&config, point)
		fmt.Fprintf(out, "✓ %s captured: %d, %d\n", target.label, point.X, point.Y)
	}

	config.EnabledColor = desktop.PixelColor(config.Download.X, config.Download.Y)
	fmt.Fprintln(out, "Calibration Complete! Ready to Mine.")

	return config, nil
}

func calibrateAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	calibrated, err := calibrate(ctx, keystroke.RobotDesktop{}, config.Keystroke, int(cmd.Int("countdown")), os.Stderr)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(map[string]keystroke.Config{"keystroke": calibrated})
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)

	return err
}
