package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/miner"
)

// LogLineMsg carries an operator-facing log line.
type LogLineMsg struct {
	Line string
}

// ProgressMsg carries the snapshot emitted after a probe.
type ProgressMsg struct {
	Progress miner.Progress
}

// ContractStartedMsg signals a new contract pass.
type ContractStartedMsg struct {
	Contract contract.Contract
}

// SessionStartedMsg carries the worker of a started session.
type SessionStartedMsg struct {
	Worker *miner.Worker
}

// SessionEndedMsg carries the result of a session.
type SessionEndedMsg struct {
	Summary miner.Summary
	Err     error
}

// SessionErrorMsg indicates the session could not start.
type SessionErrorMsg struct {
	Err error
}

// EventBatchMsg delivers the events queued since the last delivery.
type EventBatchMsg struct {
	Msgs []tea.Msg

	box *mailbox
}

// mailboxClosedMsg releases a waiter of a mailbox whose session never started.
type mailboxClosedMsg struct{}

// mailbox hands engine events to the UI without ever blocking the worker.
type mailbox struct {
	mu      sync.Mutex
	pending []tea.Msg
	notify  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

func (b *mailbox) post(msg tea.Msg) {
	b.mu.Lock()
	b.pending = append(b.pending, msg)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// close releases any pending wait. The mailbox is not reused afterwards.
func (b *mailbox) close() {
	b.post(mailboxClosedMsg{})
}

// wait returns a command that resolves with the next batch of events.
func (b *mailbox) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.notify

		b.mu.Lock()
		msgs := b.pending
		b.pending = nil
		b.mu.Unlock()

		return EventBatchMsg{Msgs: msgs, box: b}
	}
}

// callbacks routes engine callbacks into the mailbox.
func (b *mailbox) callbacks() miner.Callbacks {
	onLog := miner.OnLogCallback(func(line string) {
		b.post(LogLineMsg{Line: line})
	})
	onProgress := miner.OnProgressCallback(func(progress miner.Progress) {
		b.post(ProgressMsg{Progress: progress})
	})
	onContractStart := miner.OnContractStartCallback(func(c contract.Contract, _ time.Time) {
		b.post(ContractStartedMsg{Contract: c})
	})
	onSessionEnd := miner.OnSessionEndCallback(func(summary miner.Summary, err error) {
		b.post(SessionEndedMsg{Summary: summary, Err: err})
	})

	return miner.Callbacks{
		OnLog:           &onLog,
		OnProgress:      &onProgress,
		OnContractStart: &onContractStart,
		OnSessionEnd:    &onSessionEnd,
	}
}
