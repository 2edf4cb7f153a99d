package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/automation"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/logger"
	"github.com/rxtech-lab/replay-miner/internal/probe"
	"github.com/rxtech-lab/replay-miner/internal/replay"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	store *replay.Store
	app   *App
	ctx   context.Context
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.store = replay.NewStore(s.T().TempDir(), "")
	s.ctx = context.Background()

	config := DefaultConfig()
	config.DownloadMillis = 20
	config.Holidays = []string{"2026-01-01"}
	config.SilentDays = []string{"2026-02-03"}

	s.app = NewApp(config, s.store, logger.NewNopLogger())
}

func (s *AppTestSuite) TearDownTest() {
	s.app.Close()
}

func (s *AppTestSuite) request(instrument string, day time.Time) {
	s.Require().NoError(s.app.SetFieldText(s.ctx, automation.ControlInstrument, instrument))
	s.Require().NoError(s.app.SetFieldText(s.ctx, automation.ControlDate, contract.FormatField(day)))
	s.Require().NoError(s.app.Click(s.ctx, automation.ControlDownload))
}

func (s *AppTestSuite) TestAvailability() {
	config := DefaultConfig()
	mnq := contract.MustParse("MNQ 03-26")

	s.True(config.Available(mnq, contract.Date(2026, time.March, 20)))
	s.True(config.Available(mnq, contract.Date(2025, time.December, 19)))
	s.False(config.Available(mnq, contract.Date(2026, time.March, 21)))
	s.False(config.Available(mnq, contract.Date(2025, time.December, 18)))
	s.False(config.Available(mnq, contract.Date(2026, time.March, 7)), "Saturday")

	config.LeadDays = 10
	s.True(config.Available(mnq, contract.Date(2025, time.December, 10)))
}

func (s *AppTestSuite) TestDownloadWritesArtifact() {
	mnq := contract.MustParse("MNQ 03-26")
	day := contract.Date(2026, time.March, 5)

	s.request("MNQ 03-26", day)

	enabled, err := s.app.IsEnabled(s.ctx, automation.ControlDownload)
	s.Require().NoError(err)
	s.False(enabled)

	s.Eventually(func() bool {
		enabled, _ := s.app.IsEnabled(s.ctx, automation.ControlDownload)

		return enabled
	}, time.Second, 5*time.Millisecond)

	exists, err := s.store.Exists(mnq, day)
	s.Require().NoError(err)
	s.True(exists)
	s.Equal(1, s.app.Downloads())
}

func (s *AppTestSuite) TestUnavailableDayRaisesPopup() {
	s.request("MNQ 03-26", contract.Date(2026, time.January, 1))

	dismissed, err := s.app.DismissErrorPopup(s.ctx)
	s.Require().NoError(err)
	s.True(dismissed)

	dismissed, err = s.app.DismissErrorPopup(s.ctx)
	s.Require().NoError(err)
	s.False(dismissed)
}

func (s *AppTestSuite) TestUnknownInstrumentRaisesPopup() {
	s.request("not a contract", contract.Date(2026, time.March, 5))

	dismissed, err := s.app.DismissErrorPopup(s.ctx)
	s.Require().NoError(err)
	s.True(dismissed)
}

func (s *AppTestSuite) TestSilentDayIgnoresClick() {
	s.request("MNQ 03-26", contract.Date(2026, time.February, 3))

	enabled, err := s.app.IsEnabled(s.ctx, automation.ControlDownload)
	s.Require().NoError(err)
	s.True(enabled)

	dismissed, err := s.app.DismissErrorPopup(s.ctx)
	s.Require().NoError(err)
	s.False(dismissed)
	s.Equal(1, s.app.Clicks())
}

func (s *AppTestSuite) TestUnknownControls() {
	err := s.app.SetFieldText(s.ctx, automation.ControlDownload, "x")
	s.True(errors.HasCode(err, errors.ErrCodeUnknownControl))

	err = s.app.Click(s.ctx, automation.ControlDate)
	s.True(errors.HasCode(err, errors.ErrCodeUnknownControl))

	_, err = s.app.IsEnabled(s.ctx, automation.Control("volume"))
	s.True(errors.HasCode(err, errors.ErrCodeUnknownControl))
}

func (s *AppTestSuite) TestMissingWindow() {
	app := NewApp(Config{WindowMissing: true}, s.store, logger.NewNopLogger())

	err := app.Locate(s.ctx)
	s.True(errors.HasCode(err, errors.ErrCodeWindowNotFound))
	s.NoError(s.app.Locate(s.ctx))
}

func (s *AppTestSuite) TestClassifierAgainstSimulator() {
	classifier := probe.NewClassifier(s.app, s.store, probe.Config{
		Timeout:          100 * time.Millisecond,
		PollInterval:     5 * time.Millisecond,
		ReadyWait:        50 * time.Millisecond,
		BusyPollInterval: 5 * time.Millisecond,
		DownloadCeiling:  time.Second,
	}, logger.NewNopLogger())

	mnq := contract.MustParse("MNQ 03-26")
	s.Require().NoError(s.app.SetFieldText(s.ctx, automation.ControlInstrument, mnq.String()))

	tests := []struct {
		day      time.Time
		expected probe.Outcome
	}{
		{day: contract.Date(2026, time.March, 5), expected: probe.OutcomeSuccess},
		{day: contract.Date(2026, time.March, 5), expected: probe.OutcomeAlreadyPresent},
		{day: contract.Date(2026, time.January, 1), expected: probe.OutcomeNoData},
		{day: contract.Date(2026, time.February, 3), expected: probe.OutcomeTimeout},
	}

	for _, tt := range tests {
		result, err := classifier.Classify(s.ctx, probe.Request{Contract: mnq, Day: tt.day})
		s.Require().NoError(err)
		s.Equal(tt.expected, result.Outcome, tt.day.Format(time.DateOnly))
	}

	s.Equal(3, s.app.Clicks())
}
