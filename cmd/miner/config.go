package main

import (
	"fmt"
	"os"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/automation/keystroke"
	"github.com/rxtech-lab/replay-miner/internal/automation/simulator"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/internal/replay"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Driver kinds.
const (
	DriverKeystroke = "keystroke"
	DriverSimulator = "simulator"
)

// FileConfig is the layout of the config file: the session keys at the top
// level plus one section per driver.
type FileConfig struct {
	Session   miner.Config     `yaml:",inline"`
	Driver    string           `yaml:"driver"`
	Keystroke keystroke.Config `yaml:"keystroke"`
	Simulator simulator.Config `yaml:"simulator"`
	// Schedule is the cron spec used by the schedule command.
	Schedule string `yaml:"schedule"`
}

// DefaultFileConfig returns the defaults of every section.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Session:   miner.DefaultConfig(),
		Driver:    DriverKeystroke,
		Keystroke: keystroke.DefaultConfig(),
		Simulator: simulator.DefaultConfig(),
		Schedule:  "",
	}
}

// loadFileConfig reads path over the defaults. An empty path yields the
// defaults. The session is not validated here: flags may still fill it in.
func loadFileConfig(path string) (FileConfig, error) {
	config := DefaultFileConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return FileConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	return config, nil
}

// sessionFlags override session keys of the config file.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "contract",
			Aliases: []string{"c"},
			Usage:   "Starting contract in `SYMBOL MM-YY` form",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: fmt.Sprintf("Mining mode (%s or %s)", miner.ModeDeep, miner.ModeSingle),
		},
		&cli.IntFlag{
			Name:  "depth",
			Usage: "Maximum number of previous contracts to roll to",
		},
		&cli.IntFlag{
			Name:  "stop-loss",
			Usage: "Consecutive misses that end a contract pass",
		},
		&cli.FloatFlag{
			Name:  "timeout",
			Usage: "Seconds to wait for the first UI reaction after a click",
		},
		&cli.StringFlag{
			Name:  "start-date",
			Usage: "First day to probe for the starting contract in `YYYY-MM-DD` form",
		},
		&cli.StringFlag{
			Name:  "replay-dir",
			Usage: "NinjaTrader replay directory",
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: fmt.Sprintf("Automation driver (%s or %s)", DriverKeystroke, DriverSimulator),
		},
	}
}

// applyFlags copies explicitly set flags over the file config.
func applyFlags(cmd *cli.Command, config *FileConfig) {
	if cmd.IsSet("contract") {
		config.Session.StartingContract = cmd.String("contract")
	}

	if cmd.IsSet("mode") {
		config.Session.Mode = miner.Mode(cmd.String("mode"))
	}

	if cmd.IsSet("depth") {
		config.Session.MaxContractsBack = int(cmd.Int("depth"))
	}

	if cmd.IsSet("stop-loss") {
		config.Session.StopLossLimit = int(cmd.Int("stop-loss"))
	}

	if cmd.IsSet("timeout") {
		config.Session.ProbeTimeoutSeconds = cmd.Float("timeout")
	}

	if cmd.IsSet("start-date") {
		config.Session.StartDate = cmd.String("start-date")
	}

	if cmd.IsSet("replay-dir") {
		config.Session.ReplayDir = cmd.String("replay-dir")
	}

	if cmd.IsSet("driver") {
		config.Driver = cmd.String("driver")
	}
}

// resolveConfig loads the file named by --config and applies flag overrides.
func resolveConfig(cmd *cli.Command) (FileConfig, error) {
	config, err := loadFileConfig(cmd.String("config"))
	if err != nil {
		return FileConfig{}, err
	}

	applyFlags(cmd, &config)

	return config, nil
}

// newLogger honors --verbose.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		return logger.NewLoggerWithLevel(zapcore.DebugLevel)
	}

	return logger.NewLogger()
}

// buildDriver creates the configured automation driver. The returned func
// releases it.
func buildDriver(config FileConfig, log *logger.Logger) (automation.Driver, func(), error) {
	switch config.Driver {
	case DriverKeystroke:
		if err := config.Keystroke.Validate(); err != nil {
			return nil, nil, err
		}

		return keystroke.NewDriver(config.Keystroke, keystroke.RobotDesktop{}, log), func() {}, nil
	case DriverSimulator:
		root := config.Session.ReplayDir
		if root == "" {
			var err error

			root, err = replay.DefaultRoot()
			if err != nil {
				return nil, nil, err
			}
		}

		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to create replay directory %s", root)
		}

		app := simulator.NewApp(config.Simulator, replay.NewStore(root, config.Session.ArtifactExtension), log)

		return app, app.Close, nil
	default:
		return nil, nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown driver %q", config.Driver)
	}
}
