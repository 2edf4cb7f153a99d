package main

import (
	"context"

	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	engine "github.com/rxtech-lab/replay-miner/internal/miner/engine_v1"
)

// newEngine builds an initialized engine and the driver behind it.
func newEngine(config FileConfig, session miner.Config, log *logger.Logger) (miner.Engine, func(), error) {
	driver, release, err := buildDriver(config, log)
	if err != nil {
		return nil, nil, err
	}

	minerEngine := engine.NewMinerEngineV1(driver, engine.WithLogger(log))
	if err := minerEngine.Initialize(session); err != nil {
		release()

		return nil, nil, err
	}

	return minerEngine, release, nil
}

// SessionStarter starts a mining session in the background.
type SessionStarter func(ctx context.Context, session miner.Config, callbacks miner.Callbacks) (*miner.Worker, error)

// engineStarter returns a SessionStarter backed by the configured driver.
// The driver is released when the session ends.
func engineStarter(config FileConfig, log *logger.Logger) SessionStarter {
	return func(ctx context.Context, session miner.Config, callbacks miner.Callbacks) (*miner.Worker, error) {
		minerEngine, release, err := newEngine(config, session, log)
		if err != nil {
			return nil, err
		}

		worker := miner.NewWorker(minerEngine)
		if err := worker.Start(ctx, callbacks); err != nil {
			release()

			return nil, err
		}

		go func() {
			<-worker.Done()
			release()
		}()

		return worker, nil
	}
}
