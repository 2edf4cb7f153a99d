// Package simulator is an in-process stand-in for the trading application's
// Historical Data dialog. It implements automation.Driver and writes replay
// artifacts into a replay directory, so sessions can be rehearsed without the
// desktop application.
package simulator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/replay"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

// App simulates the download dialog.
type App struct {
	config Config
	store  *replay.Store
	log    *logger.Logger

	mu         sync.Mutex
	instrument string
	dateText   string
	busy       bool
	popup      bool
	timer      *time.Timer
	clicks     int
	downloads  int
	closed     bool
}

var _ automation.Driver = (*App)(nil)

// NewApp creates a simulated dialog writing artifacts through store.
func NewApp(config Config, store *replay.Store, log *logger.Logger) *App {
	return &App{
		config: config,
		store:  store,
		log:    log.Named("simulator"),
	}
}

// Locate implements automation.Driver.
func (a *App) Locate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.config.WindowMissing {
		return errors.New(errors.ErrCodeWindowNotFound, "Historical Data window not found")
	}

	return nil
}

// SetFieldText implements automation.Driver.
func (a *App) SetFieldText(_ context.Context, field automation.Control, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch field {
	case automation.ControlInstrument:
		a.instrument = text
	case automation.ControlDate:
		a.dateText = text
	default:
		return errors.Newf(errors.ErrCodeUnknownControl, "%s is not a text field", field)
	}

	return nil
}

// Click implements automation.Driver. Clicks on a disabled button are lost.
func (a *App) Click(_ context.Context, control automation.Control) error {
	if control != automation.ControlDownload {
		return errors.Newf(errors.ErrCodeUnknownControl, "%s is not clickable", control)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.busy {
		return nil
	}

	a.press()

	return nil
}

// Invoke implements automation.Driver. Invoking a disabled button queues the
// download once it re-enables, which the simulator collapses into an
// immediate press.
func (a *App) Invoke(_ context.Context, control automation.Control) error {
	if control != automation.ControlDownload {
		return errors.Newf(errors.ErrCodeUnknownControl, "%s cannot be invoked", control)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.press()

	return nil
}

// IsEnabled implements automation.Driver.
func (a *App) IsEnabled(_ context.Context, control automation.Control) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch control {
	case automation.ControlDownload:
		return !a.busy, nil
	case automation.ControlInstrument, automation.ControlDate:
		return true, nil
	default:
		return false, errors.Newf(errors.ErrCodeUnknownControl, "unknown control %s", control)
	}
}

// DismissErrorPopup implements automation.Driver.
func (a *App) DismissErrorPopup(context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.popup {
		return false, nil
	}

	a.popup = false

	return true, nil
}

// Clicks returns how many times the download button was pressed.
func (a *App) Clicks() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.clicks
}

// Downloads returns how many artifacts were written.
func (a *App) Downloads() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.downloads
}

// Close cancels a running download.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true

	if a.timer != nil {
		a.timer.Stop()
	}
}

// press must be called with mu held.
func (a *App) press() {
	a.clicks++

	c, err := contract.Parse(a.instrument)
	if err != nil {
		a.popup = true

		return
	}

	day, err := time.Parse(contract.FieldLayout, a.dateText)
	if err != nil {
		a.popup = true

		return
	}

	if a.config.Silent(day) {
		return
	}

	if !a.config.Available(c, day) {
		a.popup = true

		return
	}

	a.busy = true
	a.timer = time.AfterFunc(a.config.downloadDuration(), func() {
		a.finish(c, day)
	})
}

func (a *App) finish(c contract.Contract, day time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.busy = false

	if a.closed {
		return
	}

	path := a.store.Path(c, day)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.log.Error("Failed to create contract directory", zap.String("path", path), zap.Error(err))

		return
	}

	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		a.log.Error("Failed to write replay artifact", zap.String("path", path), zap.Error(err))

		return
	}

	a.downloads++
}
