// Package keystroke drives the Historical Data dialog with mouse clicks and
// keystrokes at calibrated screen positions.
package keystroke

import (
	"context"
	"strings"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

// Driver implements automation.Driver on top of a Desktop.
type Driver struct {
	config  Config
	desktop Desktop
	log     *logger.Logger
	pid     int
}

var _ automation.Driver = (*Driver)(nil)

// NewDriver creates a driver. The config is validated by the caller.
func NewDriver(config Config, desktop Desktop, log *logger.Logger) *Driver {
	return &Driver{
		config:  config,
		desktop: desktop,
		log:     log.Named("keystroke"),
	}
}

// Locate implements automation.Driver.
func (d *Driver) Locate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if missing := d.uncalibrated(); len(missing) > 0 {
		return errors.Newf(errors.ErrCodeControlNotFound,
			"controls not calibrated: %s", strings.Join(missing, ", "))
	}

	pid, err := d.desktop.FindProcess(d.config.ProcessName)
	if err != nil {
		return err
	}

	if err := d.desktop.Activate(pid); err != nil {
		return err
	}

	d.pid = pid
	d.log.Debug("Dialog located", zap.Int("pid", pid), zap.String("title", d.desktop.ActiveTitle()))

	return nil
}

func (d *Driver) uncalibrated() []string {
	var missing []string

	if d.config.Instrument.IsZero() {
		missing = append(missing, string(automation.ControlInstrument))
	}

	if len(d.config.Dates) == 0 {
		missing = append(missing, string(automation.ControlDate))
	}

	for _, p := range d.config.Dates {
		if p.IsZero() {
			missing = append(missing, string(automation.ControlDate))

			break
		}
	}

	if d.config.Download.IsZero() {
		missing = append(missing, string(automation.ControlDownload))
	}

	return missing
}

// SetFieldText implements automation.Driver.
func (d *Driver) SetFieldText(ctx context.Context, field automation.Control, text string) error {
	var points []Point

	switch field {
	case automation.ControlInstrument:
		points = []Point{d.config.Instrument}
	case automation.ControlDate:
		points = d.config.Dates
	default:
		return errors.Newf(errors.ErrCodeUnknownControl, "%s is not a text field", field)
	}

	for _, p := range points {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.desktop.ClickAt(p.X, p.Y)

		if err := d.desktop.ReplaceText(text); err != nil {
			return err
		}

		if err := d.desktop.KeyTap("tab"); err != nil {
			return err
		}
	}

	return nil
}

// Click implements automation.Driver.
func (d *Driver) Click(_ context.Context, control automation.Control) error {
	if control != automation.ControlDownload {
		return errors.Newf(errors.ErrCodeUnknownControl, "%s is not clickable", control)
	}

	d.desktop.ClickAt(d.config.Download.X, d.config.Download.Y)

	return nil
}

// Invoke implements automation.Driver. Without an accessibility API the best
// equivalent is bringing the window forward again and clicking.
func (d *Driver) Invoke(ctx context.Context, control automation.Control) error {
	if control != automation.ControlDownload {
		return errors.Newf(errors.ErrCodeUnknownControl, "%s cannot be invoked", control)
	}

	if d.pid != 0 {
		if err := d.desktop.Activate(d.pid); err != nil {
			return err
		}
	}

	return d.Click(ctx, control)
}

// IsEnabled implements automation.Driver.
func (d *Driver) IsEnabled(_ context.Context, control automation.Control) (bool, error) {
	switch control {
	case automation.ControlInstrument, automation.ControlDate:
		return true, nil
	case automation.ControlDownload:
		if d.config.EnabledColor == "" {
			return true, nil
		}

		color := d.desktop.PixelColor(d.config.Download.X, d.config.Download.Y)

		return strings.EqualFold(color, d.config.EnabledColor), nil
	default:
		return false, errors.Newf(errors.ErrCodeUnknownControl, "unknown control %s", control)
	}
}

// DismissErrorPopup implements automation.Driver. Enter closes the popup;
// Escape follows when it is still in the foreground.
func (d *Driver) DismissErrorPopup(context.Context) (bool, error) {
	title := d.desktop.ActiveTitle()
	if !d.isPopup(title) {
		return false, nil
	}

	d.log.Debug("Dismissing popup", zap.String("title", title))

	delay := time.Duration(d.config.PopupDelayMillis) * time.Millisecond

	d.desktop.Sleep(delay)

	if err := d.desktop.KeyTap("enter"); err != nil {
		return false, err
	}

	d.desktop.Sleep(delay)

	if d.desktop.ActiveTitle() == title {
		if err := d.desktop.KeyTap("esc"); err != nil {
			d.log.Warn("Failed to escape popup", zap.String("title", title), zap.Error(err))
		}
	}

	return true, nil
}

func (d *Driver) isPopup(title string) bool {
	if title == "" || strings.Contains(title, d.config.DialogTitle) {
		return false
	}

	for _, popup := range d.config.PopupTitles {
		if title == popup {
			return true
		}
	}

	return false
}
