package simulator

import (
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
)

// Config describes which days the simulated data provider can serve and how
// the download dialog behaves.
type Config struct {
	// LeadDays extends availability before the contract's active trading
	// period, mimicking providers that keep back-month history.
	LeadDays int `yaml:"leadDays" json:"leadDays" jsonschema:"title=Lead Days,description=Days of history available before the active trading period,minimum=0" validate:"gte=0"`
	// DownloadMillis is how long the download button stays disabled.
	DownloadMillis int `yaml:"downloadMillis" json:"downloadMillis" jsonschema:"title=Download Duration,description=Milliseconds a download keeps the button disabled,minimum=0" validate:"gte=0"`
	// Holidays are YYYY-MM-DD days the provider has no data for.
	Holidays []string `yaml:"holidays" json:"holidays" jsonschema:"title=Holidays,description=Days without data in YYYY-MM-DD form" validate:"dive,datetime=2006-01-02"`
	// SilentDays are YYYY-MM-DD days on which the dialog ignores the click.
	SilentDays []string `yaml:"silentDays" json:"silentDays" jsonschema:"title=Silent Days,description=Days on which the download button does not react" validate:"dive,datetime=2006-01-02"`
	// WindowMissing makes Locate fail as if the application were closed.
	WindowMissing bool `yaml:"windowMissing" json:"windowMissing" jsonschema:"title=Window Missing,description=Simulate a closed Historical Data window"`
}

// DefaultConfig serves the active trading period of every contract with a
// short download.
func DefaultConfig() Config {
	return Config{
		LeadDays:       0,
		DownloadMillis: 200,
		Holidays:       nil,
		SilentDays:     nil,
		WindowMissing:  false,
	}
}

// Available reports whether the provider has data for c on day.
func (c Config) Available(ct contract.Contract, day time.Time) bool {
	if contract.IsSaturday(day) || containsDay(c.Holidays, day) {
		return false
	}

	window := contract.ActiveTradingPeriod(ct)
	first := window.StartExpiry.AddDate(0, 0, -c.LeadDays)

	return !day.Before(first) && !day.After(window.EndExpiry)
}

// Silent reports whether the dialog ignores a click for day.
func (c Config) Silent(day time.Time) bool {
	return containsDay(c.SilentDays, day)
}

func (c Config) downloadDuration() time.Duration {
	return time.Duration(c.DownloadMillis) * time.Millisecond
}

func containsDay(days []string, day time.Time) bool {
	for _, s := range days {
		d, err := contract.ParseDate(s)
		if err == nil && d.Equal(day) {
			return true
		}
	}

	return false
}
