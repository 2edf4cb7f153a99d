package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/internal/probe"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

// session is the state of one Run.
type session struct {
	engine    *MinerEngineV1
	callbacks miner.Callbacks
	summary   *miner.Summary
	log       *logger.Logger
}

func (s *session) emit(format string, args ...any) {
	if s.callbacks.OnLog != nil {
		(*s.callbacks.OnLog)(fmt.Sprintf(format, args...))
	}
}

// startDay is yesterday (or the configured override) for the first contract
// and the contract's expiry for every rolled contract.
func (s *session) startDay(c contract.Contract, first bool) time.Time {
	if !first {
		return contract.Expiry(c)
	}

	override := s.engine.config.StartDateOverride()
	if override.IsSome() {
		return override.Unwrap()
	}

	return contract.Yesterday(s.engine.now())
}

// prime locates the dialog and loads the contract into the instrument field.
func (s *session) prime(ctx context.Context, c contract.Contract) error {
	driver := s.engine.driver

	if err := driver.Locate(ctx); err != nil {
		if errors.IsEnvironmentFailure(err) {
			return err
		}

		return errors.Wrap(errors.ErrCodeAutomationFailed, "failed to locate the download dialog", err)
	}

	s.emit("Setting Instrument: %s", c)

	if err := driver.SetFieldText(ctx, automation.ControlInstrument, c.String()); err != nil {
		if errors.IsEnvironmentFailure(err) {
			return err
		}

		s.emit("Instrument field error: %v", err)
	}

	return sleep(ctx, s.engine.config.InstrumentSettle())
}

// mineContract runs one contract pass from Priming to StoppedOut. It returns
// an error only when priming fails or ctx is cancelled; an automation failure
// while probing aborts the pass without failing the session.
func (s *session) mineContract(ctx context.Context, c contract.Contract, first bool) error {
	config := s.engine.config
	result := miner.ContractSummary{Contract: c}

	s.emit("")
	s.emit(">>> PROCESSING CONTRACT: %s", c)

	if err := s.prime(ctx, c); err != nil {
		return err
	}

	day := s.startDay(c, first)
	s.emit("Mining backwards from: %s", day.Format(time.DateOnly))

	if s.callbacks.OnContractStart != nil {
		(*s.callbacks.OnContractStart)(c, day)
	}

	defer func() {
		s.summary.Contracts = append(s.summary.Contracts, result)

		if s.callbacks.OnContractEnd != nil {
			(*s.callbacks.OnContractEnd)(result)
		}
	}()

	var wake <-chan struct{}

	watcher, err := s.engine.store.Watch(c, s.log)
	if err != nil {
		s.log.Warn("Falling back to polling for replay artifacts", zap.Error(err))
	} else {
		defer watcher.Close()

		wake = watcher.Wake()
	}

	misses := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if contract.IsSaturday(day) {
			day = day.AddDate(0, 0, -1)

			continue
		}

		s.emit("Checking %s...", contract.FormatField(day))

		outcome, err := s.engine.classifier.Classify(ctx, probe.Request{
			Contract: c,
			Day:      day,
			Wake:     wake,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			s.emit("ERROR: %v", err)
			s.log.Error("Contract pass aborted",
				zap.String("contract", c.String()),
				zap.String("date", day.Format(time.DateOnly)),
				zap.Error(err),
			)

			result.Aborted = true

			break
		}

		result.Probes++

		for _, note := range outcome.Notes {
			s.emit("  %s", note)
		}

		progress := miner.Progress{}

		if outcome.Outcome.IsHit() {
			misses = 0
			result.Succeeded++
			s.summary.SuccessCount++
			s.emit("  ✓ %s", outcome.Outcome.Label())
		} else {
			misses++
			progress.Qualifier = qualifier(outcome.Detail)
			s.emit("  X %s", outcome.Outcome.Label())
		}

		progress.SuccessCount = result.Succeeded
		progress.ConsecutiveMisses = misses

		s.log.Debug("Day probed",
			zap.String("contract", c.String()),
			zap.String("date", day.Format(time.DateOnly)),
			zap.String("outcome", string(outcome.Outcome)),
			zap.Int("consecutive_misses", misses),
		)

		if s.callbacks.OnProbe != nil {
			(*s.callbacks.OnProbe)(c, day, outcome)
		}

		if s.callbacks.OnProgress != nil {
			(*s.callbacks.OnProgress)(progress)
		}

		if misses >= config.StopLossLimit {
			s.emit("Stop-loss hit: %d consecutive misses.", misses)

			result.StoppedOut = true

			break
		}

		day = day.AddDate(0, 0, -1)
	}

	s.emit("Finished %s. Downloaded: %d", c, result.Succeeded)

	return nil
}

func qualifier(detail probe.Detail) string {
	switch detail {
	case probe.DetailErrorPopup:
		return "Error Popup"
	case probe.DetailLateError:
		return "Late Error"
	default:
		return ""
	}
}

func sleep(ctx context.Context, d time.Duration) error {
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
	}
}
