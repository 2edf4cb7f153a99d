// Package automation defines the port the mining engine uses to drive the
// replay download dialog of the desktop trading application.
package automation

import (
	"context"
)

// Control names a control of the download dialog. Drivers bind each name to a
// concrete widget, screen position or accessibility element.
type Control string

const (
	// ControlInstrument is the instrument text field.
	ControlInstrument Control = "instrument"
	// ControlDate is the date text field. Drivers that expose several date
	// fields (from/to) write the same value into each of them.
	ControlDate Control = "date"
	// ControlDownload is the button that triggers the replay download.
	ControlDownload Control = "download"
)

// AllControls lists every control a driver must be able to bind.
var AllControls = []Control{ControlInstrument, ControlDate, ControlDownload}

// Driver is the UI-automation capability the engine needs. Implementations
// must be safe to call from a single worker goroutine; the engine never issues
// two commands at once.
//
// Errors coded errors.ErrCodeWindowNotFound or errors.ErrCodeControlNotFound
// abort the session. Any other error is logged and folded into classification.
type Driver interface {
	// Locate verifies that the target window and all controls can be found and
	// brings the window to the foreground.
	Locate(ctx context.Context) error
	// SetFieldText replaces the text of a field.
	SetFieldText(ctx context.Context, field Control, text string) error
	// Click clicks a control the way a user would.
	Click(ctx context.Context, control Control) error
	// Invoke triggers a control's default action without relying on it being
	// enabled or visible. Used as a fallback when Click is not possible.
	Invoke(ctx context.Context, control Control) error
	// IsEnabled reports whether a control currently accepts input.
	IsEnabled(ctx context.Context, control Control) (bool, error)
	// DismissErrorPopup checks whether the foreground window is an error popup
	// and closes it. It reports true when a popup was found.
	DismissErrorPopup(ctx context.Context) (bool, error)
}
