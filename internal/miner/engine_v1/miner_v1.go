package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/internal/probe"
	"github.com/rxtech-lab/replay-miner/internal/replay"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"go.uber.org/zap"
)

type MinerEngineV1 struct {
	config      miner.Config
	driver      automation.Driver
	store       *replay.Store
	classifier  miner.Classifier
	log         *logger.Logger
	now         func() time.Time
	initialized bool
}

// Option customizes a MinerEngineV1.
type Option func(*MinerEngineV1)

// WithClassifier replaces the probe classifier built from the config.
func WithClassifier(classifier miner.Classifier) Option {
	return func(m *MinerEngineV1) {
		m.classifier = classifier
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *logger.Logger) Option {
	return func(m *MinerEngineV1) {
		m.log = log
	}
}

// WithClock sets the clock used to compute "yesterday".
func WithClock(now func() time.Time) Option {
	return func(m *MinerEngineV1) {
		m.now = now
	}
}

func NewMinerEngineV1(driver automation.Driver, opts ...Option) miner.Engine {
	m := &MinerEngineV1{
		config:      miner.DefaultConfig(),
		driver:      driver,
		store:       nil,
		classifier:  nil,
		log:         nil,
		now:         time.Now,
		initialized: false,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize implements miner.Engine.
func (m *MinerEngineV1) Initialize(config miner.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if m.log == nil {
		log, err := logger.NewLogger()
		if err != nil {
			return err
		}

		m.log = log
	}

	m.log = m.log.Named("miner")

	root := config.ReplayDir
	if root == "" {
		var err error

		root, err = replay.DefaultRoot()
		if err != nil {
			return err
		}
	}

	m.config = config
	m.store = replay.NewStore(root, config.ArtifactExtension)

	if m.classifier == nil {
		m.classifier = probe.NewClassifier(m.driver, m.store, config.ProbeConfig(), m.log)
	}

	m.initialized = true

	m.log.Debug("Miner engine initialized",
		zap.String("starting_contract", config.StartingContract),
		zap.String("mode", string(config.Mode)),
		zap.Int("max_contracts_back", config.MaxContractsBack),
		zap.Int("stop_loss_limit", config.StopLossLimit),
		zap.String("replay_dir", root),
	)

	return nil
}

// GetConfigSchema implements miner.Engine.
func (m *MinerEngineV1) GetConfigSchema() (string, error) {
	config := m.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

// Run implements miner.Engine.
func (m *MinerEngineV1) Run(ctx context.Context, callbacks miner.Callbacks) (summary miner.Summary, err error) {
	if !m.initialized {
		return miner.Summary{}, errors.New(errors.ErrCodeEngineNotInitialized, "miner engine is not initialized")
	}

	s := &session{
		engine:    m,
		callbacks: callbacks,
		summary:   &summary,
	}

	summary.SessionID = uuid.NewString()
	summary.StartedAt = m.now()
	s.log = &logger.Logger{Logger: m.log.With(zap.String("session_id", summary.SessionID))}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Mining session panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			s.emit("CRITICAL CRASH: %v", r)

			err = errors.Newf(errors.ErrCodeSessionFailed, "mining session failed: %v", r)
		}

		summary.EndedAt = m.now()

		if callbacks.OnSessionEnd != nil {
			(*callbacks.OnSessionEnd)(summary, err)
		}
	}()

	if callbacks.OnSessionStart != nil {
		(*callbacks.OnSessionStart)(summary.SessionID, m.config)
	}

	s.emit("==================================================")
	s.emit(banner(m.config.Mode))
	s.emit("Start Contract: %s", m.config.StartingContract)

	current := m.config.Contract()
	first := true

	for {
		if ctx.Err() != nil {
			summary.Cancelled = true

			break
		}

		passErr := s.mineContract(ctx, current, first)
		if passErr != nil {
			if ctx.Err() != nil {
				summary.Cancelled = true

				break
			}

			s.emit("ERROR: %v", passErr)

			return summary, passErr
		}

		first = false

		if m.config.Mode == miner.ModeSingle {
			break
		}

		if summary.ContractsProcessed+1 > m.config.MaxContractsBack {
			break
		}

		if ctx.Err() != nil {
			summary.Cancelled = true

			break
		}

		previous := contract.Previous(current)
		s.emit("Rolling back: %s -> %s", current, previous)

		summary.ContractsProcessed++
		current = previous
	}

	if summary.Cancelled {
		s.emit("! STOP REQUESTED")
	}

	s.emit("MINING COMPLETE. Total: %d", summary.SuccessCount)

	s.log.Info("Mining session finished",
		zap.Int("success_count", summary.SuccessCount),
		zap.Int("contracts_processed", summary.ContractsProcessed),
		zap.Bool("cancelled", summary.Cancelled),
	)

	return summary, nil
}

func banner(mode miner.Mode) string {
	if mode == miner.ModeSingle {
		return "STARTING SINGLE CONTRACT MINE"
	}

	return "STARTING DEEP HISTORY MINE"
}
