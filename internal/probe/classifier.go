// Package probe classifies a single replay download attempt by racing the
// signals the trading application exposes: the artifact on disk, an error
// popup and the busy/idle state of the download control.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

// ArtifactProbe reports whether a day's artifact exists.
type ArtifactProbe interface {
	Exists(c contract.Contract, day time.Time) (bool, error)
}

// reaction is the first signal observed after the click.
type reaction int

const (
	reactionNone reaction = iota
	reactionErrorPopup
	reactionStarted
	reactionArtifact
)

// Classifier resolves probes against a driver and an artifact probe.
type Classifier struct {
	driver    automation.Driver
	artifacts ArtifactProbe
	config    Config
	log       *logger.Logger
}

// NewClassifier creates a classifier. Non-positive timeouts and poll
// intervals fall back to DefaultConfig; zero pauses are honored.
func NewClassifier(driver automation.Driver, artifacts ArtifactProbe, config Config, log *logger.Logger) *Classifier {
	return &Classifier{
		driver:    driver,
		artifacts: artifacts,
		config:    withDefaults(config),
		log:       log.Named("classifier"),
	}
}

func withDefaults(c Config) Config {
	d := DefaultConfig()

	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}

	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}

	if c.ReadyWait < 0 {
		c.ReadyWait = d.ReadyWait
	}

	if c.BusyPollInterval <= 0 {
		c.BusyPollInterval = d.BusyPollInterval
	}

	if c.DownloadCeiling <= 0 {
		c.DownloadCeiling = d.DownloadCeiling
	}

	if c.NoReactionSettle < 0 {
		c.NoReactionSettle = d.NoReactionSettle
	}

	if c.SuccessThrottle < 0 {
		c.SuccessThrottle = d.SuccessThrottle
	}

	return c
}

// Config returns the effective budgets.
func (c *Classifier) Config() Config {
	return c.config
}

// probeRun carries the state of one Classify call.
type probeRun struct {
	req   Request
	notes []string
}

func (r *probeRun) note(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

// Classify performs one probe. An artifact that already exists short-circuits
// to OutcomeAlreadyPresent without any UI command. The returned error is
// non-nil only when ctx is cancelled or the automation target is gone; every
// other failure is folded into the outcome.
func (c *Classifier) Classify(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	run := &probeRun{req: req}

	result, err := c.classify(ctx, run)
	if err != nil {
		return Result{}, err
	}

	result.Notes = run.notes
	result.Elapsed = time.Since(start)

	c.log.Debug("Probe classified",
		zap.String("contract", req.Contract.String()),
		zap.String("date", req.Day.Format(time.DateOnly)),
		zap.String("outcome", string(result.Outcome)),
		zap.String("detail", string(result.Detail)),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

func (c *Classifier) classify(ctx context.Context, run *probeRun) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if c.artifactExists(run.req) {
		return Result{Outcome: OutcomeAlreadyPresent, Detail: DetailExisting}, nil
	}

	if err := c.driver.SetFieldText(ctx, automation.ControlDate, contract.FormatField(run.req.Day)); err != nil {
		if errors.IsEnvironmentFailure(err) {
			return Result{}, err
		}

		run.note("Date field error: %v", err)
	}

	if err := c.waitReady(ctx, run); err != nil {
		return Result{}, err
	}

	if err := c.trigger(ctx, run); err != nil {
		return Result{}, err
	}

	observed, err := c.awaitReaction(ctx, run)
	if err != nil {
		return Result{}, err
	}

	switch observed {
	case reactionErrorPopup:
		if c.artifactExists(run.req) {
			run.note("(File found despite error popup)")

			return Result{Outcome: OutcomeSuccess, Detail: DetailFileWithoutUI}, nil
		}

		return Result{Outcome: OutcomeNoData, Detail: DetailErrorPopup}, nil
	case reactionArtifact:
		return Result{Outcome: OutcomeSuccess, Detail: DetailArtifactAppeared}, nil
	case reactionStarted:
		return c.awaitCompletion(ctx, run)
	default:
		return c.resolveNoReaction(ctx, run)
	}
}

// waitReady waits for the download control to accept a click, clearing
// popups left over from the previous probe.
func (c *Classifier) waitReady(ctx context.Context, run *probeRun) error {
	var waited time.Duration

	for waited < c.config.ReadyWait {
		enabled, err := c.isEnabled(ctx, true)
		if err != nil {
			return err
		}

		if enabled {
			return nil
		}

		dismissed, err := c.dismissPopup(ctx)
		if err != nil {
			return err
		}

		if dismissed {
			run.note("(Cleared lingering popup)")
		}

		if err := c.pause(ctx, c.config.BusyPollInterval, nil); err != nil {
			return err
		}

		waited += c.config.BusyPollInterval
	}

	return nil
}

// trigger clicks the download control, falling back to Invoke when the
// control still reports disabled.
func (c *Classifier) trigger(ctx context.Context, run *probeRun) error {
	enabled, err := c.isEnabled(ctx, true)
	if err != nil {
		return err
	}

	if enabled {
		err = c.driver.Click(ctx, automation.ControlDownload)
	} else {
		run.note("Warning: Button disabled, attempting invoke...")
		err = c.driver.Invoke(ctx, automation.ControlDownload)
	}

	if err != nil {
		if errors.IsEnvironmentFailure(err) {
			return err
		}

		run.note("Click Exception: %v", err)
	}

	return nil
}

// awaitReaction polls for the first observable reaction within the probe timeout.
func (c *Classifier) awaitReaction(ctx context.Context, run *probeRun) (reaction, error) {
	deadline := time.Now().Add(c.config.Timeout)

	for {
		dismissed, err := c.dismissPopup(ctx)
		if err != nil {
			return reactionNone, err
		}

		if dismissed {
			run.note("Error popup dismissed")

			return reactionErrorPopup, nil
		}

		enabled, err := c.isEnabled(ctx, true)
		if err != nil {
			return reactionNone, err
		}

		if !enabled {
			return reactionStarted, nil
		}

		if c.artifactExists(run.req) {
			return reactionArtifact, nil
		}

		if !time.Now().Before(deadline) {
			return reactionNone, nil
		}

		if err := c.pause(ctx, c.config.PollInterval, run.req.Wake); err != nil {
			return reactionNone, err
		}
	}
}

// awaitCompletion waits for the download control to re-enable.
func (c *Classifier) awaitCompletion(ctx context.Context, run *probeRun) (Result, error) {
	deadline := time.Now().Add(c.config.DownloadCeiling)

	for {
		enabled, err := c.isEnabled(ctx, false)
		if err != nil {
			return Result{}, err
		}

		if enabled {
			break
		}

		dismissed, err := c.dismissPopup(ctx)
		if err != nil {
			return Result{}, err
		}

		if dismissed {
			run.note("Late error popup during download")

			return Result{Outcome: OutcomeNoData, Detail: DetailLateError}, nil
		}

		if !time.Now().Before(deadline) {
			run.note("Timeout waiting for download finish (> %s)", c.config.DownloadCeiling)

			if c.artifactExists(run.req) {
				return Result{Outcome: OutcomeSuccess, Detail: DetailFileWithoutUI}, nil
			}

			return Result{Outcome: OutcomeTimeout, Detail: DetailCeilingExceeded}, nil
		}

		if err := c.pause(ctx, c.config.BusyPollInterval, nil); err != nil {
			return Result{}, err
		}
	}

	// The download already finished; a cancel during the throttle must not
	// discard it.
	_ = c.pause(ctx, c.config.SuccessThrottle, nil)

	return Result{Outcome: OutcomeSuccess, Detail: DetailDownloaded}, nil
}

// resolveNoReaction decides the outcome when neither an error nor a busy
// control was seen. The artifact on disk wins over the missing UI reaction.
func (c *Classifier) resolveNoReaction(ctx context.Context, run *probeRun) (Result, error) {
	run.note("? No reaction from button/app.")

	if err := c.pause(ctx, c.config.NoReactionSettle, run.req.Wake); err != nil {
		return Result{}, err
	}

	if c.artifactExists(run.req) {
		run.note("(File found despite no UI reaction)")

		return Result{Outcome: OutcomeSuccess, Detail: DetailFileWithoutUI}, nil
	}

	return Result{Outcome: OutcomeTimeout, Detail: DetailNoReaction}, nil
}

func (c *Classifier) artifactExists(req Request) bool {
	exists, err := c.artifacts.Exists(req.Contract, req.Day)
	if err != nil {
		c.log.Warn("Artifact probe failed",
			zap.String("contract", req.Contract.String()),
			zap.String("date", req.Day.Format(time.DateOnly)),
			zap.Error(err),
		)

		return false
	}

	return exists
}

// isEnabled reports the download control state. Driver failures other than a
// missing target read as fallback.
func (c *Classifier) isEnabled(ctx context.Context, fallback bool) (bool, error) {
	enabled, err := c.driver.IsEnabled(ctx, automation.ControlDownload)
	if err != nil {
		if errors.IsEnvironmentFailure(err) {
			return false, err
		}

		c.log.Debug("Failed to read download control state", zap.Error(err))

		return fallback, nil
	}

	return enabled, nil
}

func (c *Classifier) dismissPopup(ctx context.Context) (bool, error) {
	dismissed, err := c.driver.DismissErrorPopup(ctx)
	if err != nil {
		if errors.IsEnvironmentFailure(err) {
			return false, err
		}

		c.log.Debug("Failed to check for error popup", zap.Error(err))

		return false, nil
	}

	return dismissed, nil
}

// pause sleeps for d, returning early when wake fires and with ctx.Err()
// when ctx is cancelled.
func (c *Classifier) pause(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	case <-wake:
		return nil
	}
}
