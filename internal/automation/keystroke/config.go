package keystroke

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// Point is a screen position captured by calibration.
type Point struct {
	X int `yaml:"x" json:"x" validate:"gte=0"`
	Y int `yaml:"y" json:"y" validate:"gte=0"`
}

// IsZero reports whether the point was never calibrated.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Config binds the dialog controls to screen positions.
type Config struct {
	// ProcessName is the process owning the Historical Data window.
	ProcessName string `yaml:"processName" json:"processName" jsonschema:"title=Process Name,default=NinjaTrader" validate:"required"`
	// DialogTitle is the title prefix of the Historical Data window. A popup
	// whose title contains it is never dismissed.
	DialogTitle string `yaml:"dialogTitle" json:"dialogTitle" jsonschema:"title=Dialog Title,default=Historical Data" validate:"required"`
	// PopupTitles are the titles of foreground windows treated as error popups.
	PopupTitles []string `yaml:"popupTitles" json:"popupTitles" jsonschema:"title=Popup Titles" validate:"min=1,dive,required"`
	Instrument  Point    `yaml:"instrument" json:"instrument" jsonschema:"title=Instrument Field"`
	// Dates are the from/to date fields; each receives the probed day.
	Dates    []Point `yaml:"dates" json:"dates" jsonschema:"title=Date Fields" validate:"dive"`
	Download Point   `yaml:"download" json:"download" jsonschema:"title=Download Button"`
	// EnabledColor is the hex pixel color of the download button while it
	// accepts clicks. When empty the button always reads enabled and only the
	// artifact on disk signals a finished download.
	EnabledColor string `yaml:"enabledColor,omitempty" json:"enabledColor,omitempty" jsonschema:"title=Enabled Color" validate:"omitempty,hexadecimal,len=6"`
	// PopupDelayMillis is the pause around the keys that dismiss a popup.
	PopupDelayMillis int `yaml:"popupDelayMillis" json:"popupDelayMillis" jsonschema:"title=Popup Delay,minimum=0" validate:"gte=0"`
}

// DefaultConfig returns an uncalibrated config for NinjaTrader 8.
func DefaultConfig() Config {
	return Config{
		ProcessName:      "NinjaTrader",
		DialogTitle:      "Historical Data",
		PopupTitles:      []string{"Error", "NinjaTrader"},
		Instrument:       Point{},
		Dates:            nil,
		Download:         Point{},
		EnabledColor:     "",
		PopupDelayMillis: 100,
	}
}

// Validate checks the config shape. Calibration is checked by Driver.Locate.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid keystroke driver config", err)
	}

	return nil
}
