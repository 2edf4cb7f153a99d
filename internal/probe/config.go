package probe

import "time"

// Config holds the time budgets of a probe.
type Config struct {
	// Timeout bounds the wait for the first UI reaction after the click.
	Timeout time.Duration
	// PollInterval is the sampling interval while waiting for a reaction.
	PollInterval time.Duration
	// ReadyWait bounds the wait for the download control to become enabled
	// before clicking.
	ReadyWait time.Duration
	// BusyPollInterval is the sampling interval while a download is running.
	BusyPollInterval time.Duration
	// DownloadCeiling bounds a running download.
	DownloadCeiling time.Duration
	// NoReactionSettle is the pause before the final artifact check when the
	// UI never reacted.
	NoReactionSettle time.Duration
	// SuccessThrottle is the pause after a download the UI reported finished.
	SuccessThrottle time.Duration
}

// DefaultConfig returns the budgets used against the live application.
func DefaultConfig() Config {
	return Config{
		Timeout:          3 * time.Second,
		PollInterval:     100 * time.Millisecond,
		ReadyWait:        5 * time.Second,
		BusyPollInterval: 500 * time.Millisecond,
		DownloadCeiling:  5 * time.Minute,
		NoReactionSettle: 500 * time.Millisecond,
		SuccessThrottle:  time.Second,
	}
}
