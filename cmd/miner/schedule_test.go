package main

import (
	"context"
	"testing"

	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SchedulerTestSuite struct {
	suite.Suite
	engine    *scriptedEngine
	scheduler *Scheduler
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (suite *SchedulerTestSuite) SetupTest() {
	suite.engine = &scriptedEngine{hold: true}
	suite.scheduler = NewScheduler(scriptedStarter(suite.engine), testBaseConfig(), miner.Callbacks{}, logger.NewNopLogger())
}

func (suite *SchedulerTestSuite) TearDownTest() {
	suite.scheduler.Stop()
}

func (suite *SchedulerTestSuite) TestTickSkipsWhileSessionRunning() {
	suite.scheduler.tick()
	suite.scheduler.tick()

	suite.Equal(1, suite.scheduler.started)
	suite.Equal(1, suite.scheduler.skipped)
	suite.True(suite.scheduler.worker.Running())
}

func (suite *SchedulerTestSuite) TestTickStartsAgainAfterSessionEnds() {
	suite.scheduler.tick()

	first := suite.scheduler.worker
	first.Stop()
	<-first.Done()

	suite.scheduler.tick()

	suite.Equal(2, suite.scheduler.started)
	suite.Equal(0, suite.scheduler.skipped)
	suite.NotSame(first, suite.scheduler.worker)
}

func (suite *SchedulerTestSuite) TestStartErrorIsNotRetried() {
	calls := 0
	scheduler := NewScheduler(func(context.Context, miner.Config, miner.Callbacks) (*miner.Worker, error) {
		calls++

		return nil, errors.New(errors.ErrCodeWindowNotFound, "application window not found")
	}, testBaseConfig(), miner.Callbacks{}, logger.NewNopLogger())

	scheduler.tick()

	suite.Equal(1, calls)
	suite.Equal(0, scheduler.started)
	suite.Nil(scheduler.worker)
}

func (suite *SchedulerTestSuite) TestAddValidatesSpec() {
	suite.NoError(suite.scheduler.Add("0 18 * * 1-5"))
	suite.NoError(suite.scheduler.Add("@daily"))
	suite.NoError(suite.scheduler.Add("30 0 18 * * 1-5"))

	err := suite.scheduler.Add("every evening")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSchedulerConfigFailed))
}

func (suite *SchedulerTestSuite) TestStopCancelsLiveSession() {
	suite.scheduler.Start(context.Background())
	suite.scheduler.tick()

	worker := suite.scheduler.worker
	suite.scheduler.Stop()

	suite.False(worker.Running())

	summary, err := worker.Wait()
	suite.NoError(err)
	suite.True(summary.Cancelled)
}
