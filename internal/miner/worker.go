package miner

import (
	"context"
	"sync"

	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// Worker runs at most one session at a time on a background goroutine.
// The driven application exposes a single UI surface, so a second session
// is refused while one is live.
type Worker struct {
	engine Engine

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	summary Summary
	err     error
}

// NewWorker creates a worker around an initialized engine.
func NewWorker(engine Engine) *Worker {
	done := make(chan struct{})
	close(done)

	return &Worker{
		engine: engine,
		done:   done,
	}
}

// Start launches a session. It returns ErrCodeSessionRunning while another
// session is live.
func (w *Worker) Start(ctx context.Context, callbacks Callbacks) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.New(errors.ErrCodeSessionRunning, "a mining session is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	w.running = true
	w.cancel = cancel
	w.done = done
	w.summary = Summary{}
	w.err = nil

	go func() {
		defer close(done)
		defer cancel()

		summary, err := w.engine.Run(runCtx, callbacks)

		w.mu.Lock()
		w.running = false
		w.summary = summary
		w.err = err
		w.mu.Unlock()
	}()

	return nil
}

// Stop requests cooperative cancellation of the live session, if any.
// It does not wait; use Done or Wait.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
}

// Running reports whether a session is live.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// Done is closed when the current session ends. It is already closed when
// no session was started.
func (w *Worker) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.done
}

// Wait blocks until the current session ends and returns its result.
func (w *Worker) Wait() (Summary, error) {
	<-w.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.summary, w.err
}
