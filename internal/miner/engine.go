// Package miner defines the mining session: its configuration, the engine
// contract and the lifecycle callbacks the presentation layers subscribe to.
package miner

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/probe"
)

// Mode selects whether the session rolls to earlier contracts.
type Mode string

const (
	// ModeDeep walks back through previous contracts up to maxContractsBack.
	ModeDeep Mode = "deep"
	// ModeSingle mines the starting contract only.
	ModeSingle Mode = "single"
)

// AllModes lists the accepted modes.
var AllModes = []Mode{ModeDeep, ModeSingle}

// Classifier resolves one probe. probe.Classifier is the production implementation.
type Classifier interface {
	Classify(ctx context.Context, req probe.Request) (probe.Result, error)
}

// Progress is the snapshot emitted after every probe.
type Progress struct {
	// SuccessCount counts the hits of the current contract pass.
	SuccessCount      int
	ConsecutiveMisses int
	// Qualifier names the miss kind when the UI reported one.
	Qualifier string
}

// Label renders the progress the way the status line shows it.
func (p Progress) Label() string {
	label := fmt.Sprintf("Total: %d | Streak: %d", p.SuccessCount, p.ConsecutiveMisses)
	if p.Qualifier != "" {
		label += " (" + p.Qualifier + ")"
	}

	return label
}

// ContractSummary is the result of one contract pass.
type ContractSummary struct {
	Contract contract.Contract
	// Succeeded counts the days classified Success or AlreadyPresent.
	Succeeded int
	Probes    int
	// StoppedOut reports whether the pass ended on the stop-loss.
	StoppedOut bool
	// Aborted reports whether the pass ended on an automation failure.
	Aborted bool
}

// Summary is the result of a whole session.
type Summary struct {
	SessionID          string
	StartedAt          time.Time
	EndedAt            time.Time
	SuccessCount       int
	ContractsProcessed int
	Cancelled          bool
	Contracts          []ContractSummary
}

// Lifecycle callback types for mining phases.
// Callbacks run on the worker goroutine and must not block.

// OnSessionStartCallback is called once before the first contract.
type OnSessionStartCallback func(sessionID string, config Config)

// OnSessionEndCallback is called when the session ends (always called via defer).
type OnSessionEndCallback func(summary Summary, err error)

// OnContractStartCallback is called when a contract pass begins.
type OnContractStartCallback func(c contract.Contract, startDay time.Time)

// OnContractEndCallback is called when a contract pass ends.
type OnContractEndCallback func(summary ContractSummary)

// OnProbeCallback is called for each classified day.
type OnProbeCallback func(c contract.Contract, day time.Time, result probe.Result)

// OnProgressCallback is called after every probe.
type OnProgressCallback func(progress Progress)

// OnLogCallback receives the operator-facing log lines.
type OnLogCallback func(line string)

// Callbacks holds all lifecycle callback functions for the mining engine.
// All fields are pointers - nil means no callback will be invoked.
type Callbacks struct {
	OnSessionStart  *OnSessionStartCallback
	OnSessionEnd    *OnSessionEndCallback
	OnContractStart *OnContractStartCallback
	OnContractEnd   *OnContractEndCallback
	OnProbe         *OnProbeCallback
	OnProgress      *OnProgressCallback
	OnLog           *OnLogCallback
}

// Engine runs mining sessions.
type Engine interface {
	// Initialize validates the configuration. It must be called before Run.
	Initialize(config Config) error
	// Run mines until the session ends or ctx is cancelled. Cancellation is
	// not an error: the summary is returned with Cancelled set.
	Run(ctx context.Context, callbacks Callbacks) (Summary, error)
	// GetConfigSchema returns the JSON schema of the session configuration.
	GetConfigSchema() (string, error)
}
