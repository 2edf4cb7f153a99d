package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestNewLoggerWithLevel() {
	logger, err := NewLoggerWithLevel(zapcore.DebugLevel)
	suite.NoError(err)
	suite.True(logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLoggerWithLevel(zapcore.WarnLevel)
	suite.NoError(err)
	suite.False(logger.Core().Enabled(zapcore.InfoLevel))
}

func (suite *LoggerTestSuite) TestLoggerSync() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)

	// Sync may fail on some systems when syncing stdout, but must not panic
	_ = logger.Sync()
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	logger.Info("discarded", zap.String("contract", "MNQ 03-26"))
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNamed() {
	logger, err := NewLogger()
	suite.NoError(err)

	child := logger.Named("classifier")
	suite.NotNil(child.Logger)

	var nilLogger *Logger
	suite.NotNil(nilLogger.Named("engine").Logger)
}

func (suite *LoggerTestSuite) TestLoggerWithFields() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)

	// Should not panic
	logger.With(zap.String("session_id", "abc")).Info("test message with fields")
}
