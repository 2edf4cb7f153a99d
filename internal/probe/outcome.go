package probe

import (
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
)

// Outcome is the classification of a single probe.
type Outcome string

const (
	// OutcomeSuccess means the day's artifact was downloaded.
	OutcomeSuccess Outcome = "success"
	// OutcomeAlreadyPresent means the artifact existed before any UI action.
	OutcomeAlreadyPresent Outcome = "already_present"
	// OutcomeNoData means the application reported an error for the day.
	OutcomeNoData Outcome = "no_data"
	// OutcomeTimeout means nothing observable happened within the budget.
	OutcomeTimeout Outcome = "timeout"
)

// IsHit reports whether the outcome counts as a successful day.
func (o Outcome) IsHit() bool {
	return o == OutcomeSuccess || o == OutcomeAlreadyPresent
}

// IsMiss reports whether the outcome counts toward the stop-loss.
func (o Outcome) IsMiss() bool {
	return o == OutcomeNoData || o == OutcomeTimeout
}

// Label returns the short operator-facing label of the outcome.
func (o Outcome) Label() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeAlreadyPresent:
		return "Already Exists (Skip)"
	case OutcomeNoData:
		return "No Data"
	case OutcomeTimeout:
		return "No Data / Timeout"
	default:
		return string(o)
	}
}

// Detail qualifies how an outcome was reached.
type Detail string

const (
	DetailNone             Detail = ""
	DetailExisting         Detail = "already exists"
	DetailDownloaded       Detail = "download finished"
	DetailArtifactAppeared Detail = "artifact appeared"
	DetailFileWithoutUI    Detail = "file found despite no UI reaction"
	DetailErrorPopup       Detail = "error popup"
	DetailLateError        Detail = "late error"
	DetailNoReaction       Detail = "no reaction from button/app"
	DetailCeilingExceeded  Detail = "download ceiling exceeded"
)

// Request identifies the day to probe.
type Request struct {
	Contract contract.Contract
	Day      time.Time
	// Wake, when non-nil, interrupts poll sleeps so the artifact is
	// re-checked immediately. A file watcher feeds it.
	Wake <-chan struct{}
}

// Result is the resolved probe.
type Result struct {
	Outcome Outcome
	Detail  Detail
	// Notes are operator-facing remarks collected while probing, such as a
	// dismissed popup or a click fallback.
	Notes []string
	// Elapsed is the wall time spent on the probe.
	Elapsed time.Duration
}
