package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// cronParser accepts standard five-field specs, an optional leading seconds
// field and descriptors such as @daily.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler starts a mining session on every cron tick. A tick that fires
// while a session is live is skipped, and failed sessions are not retried.
type Scheduler struct {
	cron      *cron.Cron
	starter   SessionStarter
	session   miner.Config
	callbacks miner.Callbacks
	log       *logger.Logger

	mu      sync.Mutex
	ctx     context.Context
	worker  *miner.Worker
	started int
	skipped int
}

// NewScheduler creates a scheduler for one session config.
func NewScheduler(starter SessionStarter, session miner.Config, callbacks miner.Callbacks, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithParser(cronParser)),
		starter:   starter,
		session:   session,
		callbacks: callbacks,
		log:       log.Named("scheduler"),
		ctx:       context.Background(),
	}
}

// Add registers a cron spec.
func (s *Scheduler) Add(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return errors.Wrapf(errors.ErrCodeSchedulerConfigFailed, err, "invalid schedule %q", spec)
	}

	s.log.Info("Mining session scheduled", zap.String("schedule", spec))

	return nil
}

// Start runs the cron loop. Sessions started by ticks inherit ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
}

// Stop halts the cron loop, cancels the live session and waits for it.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()

	s.mu.Lock()
	worker := s.worker
	s.mu.Unlock()

	if worker != nil {
		worker.Stop()
		<-worker.Done()
	}
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.worker != nil && s.worker.Running() {
		s.skipped++
		s.log.Warn("Skipping scheduled session: previous session still running")

		return
	}

	worker, err := s.starter(s.ctx, s.session, s.callbacks)
	if err != nil {
		s.log.Error("Failed to start scheduled session", zap.Error(err))

		return
	}

	s.started++
	s.worker = worker
}

// scheduleAction runs sessions on a cron schedule until interrupted.
func scheduleAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("cron") {
		config.Schedule = cmd.String("cron")
	}

	if config.Schedule == "" {
		return errors.New(errors.ErrCodeSchedulerConfigFailed, "no schedule: set --cron or schedule in the config file")
	}

	if err := config.Session.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	onLog := miner.OnLogCallback(func(line string) {
		fmt.Fprintln(os.Stdout, line)
	})
	onSessionEnd := miner.OnSessionEndCallback(func(summary miner.Summary, err error) {
		if err != nil {
			log.Error("Scheduled session failed", zap.String("session_id", summary.SessionID), zap.Error(err))

			return
		}

		fmt.Fprint(os.Stdout, formatSummary(summary))
	})

	scheduler := NewScheduler(engineStarter(config, log), config.Session, miner.Callbacks{
		OnLog:        &onLog,
		OnSessionEnd: &onSessionEnd,
	}, log)

	if err := scheduler.Add(config.Schedule); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	scheduler.Start(ctx)
	<-ctx.Done()
	scheduler.Stop()

	return nil
}
