package miner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/version"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Equal(ModeDeep, config.Mode)
	suite.Equal(4, config.MaxContractsBack)
	suite.Equal(5, config.StopLossLimit)
	suite.Equal(3.0, config.ProbeTimeoutSeconds)
	suite.Equal("nrd", config.ArtifactExtension)
	suite.Empty(config.StartingContract)

	// Defaults alone are not runnable: the starting contract is required.
	suite.True(errors.HasCode(config.Validate(), errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseMinimalConfigKeepsDefaults() {
	config, err := ParseConfig([]byte("startingContract: MNQ 03-26\n"))
	suite.Require().NoError(err)

	suite.Equal("MNQ 03-26", config.StartingContract)
	suite.Equal(contract.MustParse("MNQ 03-26"), config.Contract())
	suite.Equal(ModeDeep, config.Mode)
	suite.Equal(5, config.StopLossLimit)
	suite.True(config.StartDateOverride().IsNone())
}

func (suite *ConfigTestSuite) TestParseFullConfig() {
	data := `
startingContract: ES 06-26
mode: single
maxContractsBack: 0
stopLossLimit: 2
probeTimeoutSeconds: 1.5
pollIntervalMillis: 50
readyWaitSeconds: 0
downloadCeilingSeconds: 30
noReactionSettleMillis: 0
instrumentSettleMillis: 250
successThrottleSeconds: 0.5
replayDir: /tmp/replay
artifactExtension: nrd
startDate: "2026-03-01"
`
	config, err := ParseConfig([]byte(data))
	suite.Require().NoError(err)

	suite.Equal(ModeSingle, config.Mode)
	suite.Equal(0, config.MaxContractsBack)
	suite.Equal("/tmp/replay", config.ReplayDir)
	suite.Equal(250*time.Millisecond, config.InstrumentSettle())
	suite.True(config.StartDateOverride().IsSome())
	suite.Equal(contract.Date(2026, time.March, 1), config.StartDateOverride().Unwrap())

	probeConfig := config.ProbeConfig()
	suite.Equal(1500*time.Millisecond, probeConfig.Timeout)
	suite.Equal(50*time.Millisecond, probeConfig.PollInterval)
	suite.Equal(time.Duration(0), probeConfig.ReadyWait)
	suite.Equal(30*time.Second, probeConfig.DownloadCeiling)
	suite.Equal(500*time.Millisecond, probeConfig.SuccessThrottle)
}

func (suite *ConfigTestSuite) TestRejectsMalformedValues() {
	tests := []struct {
		name     string
		data     string
		contains string
	}{
		{name: "malformed contract", data: "startingContract: MNQ03-26\n", contains: "startingContract"},
		{name: "bad month", data: "startingContract: MNQ 13-26\n", contains: "startingContract"},
		{name: "unknown mode", data: "startingContract: MNQ 03-26\nmode: wide\n", contains: "mode"},
		{name: "zero stop loss", data: "startingContract: MNQ 03-26\nstopLossLimit: 0\n", contains: "stopLossLimit"},
		{name: "negative depth", data: "startingContract: MNQ 03-26\nmaxContractsBack: -1\n", contains: "maxContractsBack"},
		{name: "zero timeout", data: "startingContract: MNQ 03-26\nprobeTimeoutSeconds: 0\n", contains: "probeTimeoutSeconds"},
		{name: "non-numeric timeout", data: "startingContract: MNQ 03-26\nprobeTimeoutSeconds: soon\n", contains: "failed to parse config"},
		{name: "bad start date", data: "startingContract: MNQ 03-26\nstartDate: 03/01/2026\n", contains: "startDate"},
		{name: "bad extension", data: "startingContract: MNQ 03-26\nartifactExtension: .nrd\n", contains: "artifactExtension"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := ParseConfig([]byte(tt.data))
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
			suite.Contains(err.Error(), tt.contains)
		})
	}
}

func (suite *ConfigTestSuite) TestVersionCompatibility() {
	original := version.Version
	defer func() { version.Version = original }()

	version.Version = "1.2.0"

	_, err := ParseConfig([]byte("startingContract: MNQ 03-26\nversion: 1.2.3\n"))
	suite.NoError(err)

	_, err = ParseConfig([]byte("startingContract: MNQ 03-26\nversion: 2.0.0\n"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	path := filepath.Join(suite.T().TempDir(), "miner.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("startingContract: GC 04-26\nmode: single\n"), 0o644))

	config, err := LoadConfig(path)
	suite.Require().NoError(err)
	suite.Equal("GC 04-26", config.StartingContract)

	_, err = LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &schema))

	suite.Equal("replay-miner-config", schema["title"])

	properties, ok := schema["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "startingContract")
	suite.Contains(properties, "stopLossLimit")

	mode, ok := properties["mode"].(map[string]any)
	suite.Require().True(ok)
	suite.ElementsMatch([]any{"deep", "single"}, mode["enum"])

	suite.Contains(schema["required"], "startingContract")
}
