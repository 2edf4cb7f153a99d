package miner

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/probe"
	"github.com/rxtech-lab/replay-miner/internal/version"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the session configuration read once at worker start.
type Config struct {
	StartingContract       string  `yaml:"startingContract" json:"startingContract" jsonschema:"title=Starting Contract,description=Contract to mine first in SYMBOL MM-YY form,example=MNQ 03-26,required" validate:"required,contract"`
	Mode                   Mode    `yaml:"mode" json:"mode" jsonschema:"title=Mode,description=deep rolls to previous contracts and single mines the starting contract only" validate:"required,oneof=deep single"`
	MaxContractsBack       int     `yaml:"maxContractsBack" json:"maxContractsBack" jsonschema:"title=Max Contracts Back,description=How many previous contracts deep mode may roll to,minimum=0" validate:"gte=0"`
	StopLossLimit          int     `yaml:"stopLossLimit" json:"stopLossLimit" jsonschema:"title=Stop-Loss Limit,description=Consecutive misses that end a contract pass,minimum=1" validate:"gte=1"`
	ProbeTimeoutSeconds    float64 `yaml:"probeTimeoutSeconds" json:"probeTimeoutSeconds" jsonschema:"title=Probe Timeout,description=Seconds to wait for the first UI reaction after the click,exclusiveMinimum=0" validate:"gt=0"`
	PollIntervalMillis     int     `yaml:"pollIntervalMillis" json:"pollIntervalMillis" jsonschema:"title=Poll Interval,description=Milliseconds between reaction checks,minimum=1" validate:"gte=1"`
	ReadyWaitSeconds       float64 `yaml:"readyWaitSeconds" json:"readyWaitSeconds" jsonschema:"title=Ready Wait,description=Seconds to wait for the download button to enable before clicking,minimum=0" validate:"gte=0"`
	BusyPollMillis         int     `yaml:"busyPollMillis" json:"busyPollMillis" jsonschema:"title=Busy Poll Interval,description=Milliseconds between checks while a download is running,minimum=1" validate:"gte=1"`
	DownloadCeilingSeconds float64 `yaml:"downloadCeilingSeconds" json:"downloadCeilingSeconds" jsonschema:"title=Download Ceiling,description=Seconds a running download may take before it is recorded as a timeout,exclusiveMinimum=0" validate:"gt=0"`
	NoReactionSettleMillis int     `yaml:"noReactionSettleMillis" json:"noReactionSettleMillis" jsonschema:"title=No-Reaction Settle,description=Milliseconds to wait before the final file check when the UI did not react,minimum=0" validate:"gte=0"`
	InstrumentSettleMillis int     `yaml:"instrumentSettleMillis" json:"instrumentSettleMillis" jsonschema:"title=Instrument Settle,description=Milliseconds to wait after setting the instrument field,minimum=0" validate:"gte=0"`
	SuccessThrottleSeconds float64 `yaml:"successThrottleSeconds" json:"successThrottleSeconds" jsonschema:"title=Success Throttle,description=Seconds to pause after a finished download,minimum=0" validate:"gte=0"`
	ReplayDir              string  `yaml:"replayDir,omitempty" json:"replayDir,omitempty" jsonschema:"title=Replay Directory,description=Directory holding the per-contract replay folders. Defaults to Documents/NinjaTrader 8/db/replay"`
	ArtifactExtension      string  `yaml:"artifactExtension" json:"artifactExtension" jsonschema:"title=Artifact Extension,description=Extension of replay files without the dot,default=nrd" validate:"required,alphanum"`
	StartDate              string  `yaml:"startDate,omitempty" json:"startDate,omitempty" jsonschema:"title=Start Date,description=First day probed for the starting contract in YYYY-MM-DD form. Defaults to yesterday" validate:"omitempty,datetime=2006-01-02"`
	Version                string  `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Miner version the config was written for"`
}

// DefaultConfig returns a Config with the documented defaults. The starting
// contract has no default.
func DefaultConfig() Config {
	return Config{
		StartingContract:       "",
		Mode:                   ModeDeep,
		MaxContractsBack:       4,
		StopLossLimit:          5,
		ProbeTimeoutSeconds:    3,
		PollIntervalMillis:     100,
		ReadyWaitSeconds:       5,
		BusyPollMillis:         500,
		DownloadCeilingSeconds: 300,
		NoReactionSettleMillis: 500,
		InstrumentSettleMillis: 500,
		SuccessThrottleSeconds: 1,
		ReplayDir:              "",
		ArtifactExtension:      "nrd",
		StartDate:              "",
		Version:                "",
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(data)
}

// Validate rejects malformed values. Nothing is defaulted here: a session
// with an invalid config never starts.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("contract", validateContract); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to register contract validation", err)
	}

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, describeValidation(err), err)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "config version is not supported", err)
	}

	return nil
}

func validateContract(fl validator.FieldLevel) bool {
	_, err := contract.Parse(fl.Field().String())

	return err == nil
}

func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "invalid configuration"
	}

	messages := make([]string, 0, len(validationErrors))

	for _, fieldErr := range validationErrors {
		name := fieldErr.Field()
		if field, ok := reflect.TypeOf(Config{}).FieldByName(fieldErr.StructField()); ok {
			name = strings.Split(field.Tag.Get("yaml"), ",")[0]
		}

		if fieldErr.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s fails %s=%s (got %v)", name, fieldErr.Tag(), fieldErr.Param(), fieldErr.Value()))
		} else {
			messages = append(messages, fmt.Sprintf("%s fails %s (got %v)", name, fieldErr.Tag(), fieldErr.Value()))
		}
	}

	return "invalid configuration: " + strings.Join(messages, "; ")
}

// Contract returns the parsed starting contract. The config must be valid.
func (c Config) Contract() contract.Contract {
	return contract.MustParse(c.StartingContract)
}

// StartDateOverride returns the configured first day, if any.
func (c Config) StartDateOverride() optional.Option[time.Time] {
	if c.StartDate == "" {
		return optional.None[time.Time]()
	}

	day, err := contract.ParseDate(c.StartDate)
	if err != nil {
		return optional.None[time.Time]()
	}

	return optional.Some(day)
}

// ProbeConfig converts the timing knobs into classifier budgets.
func (c Config) ProbeConfig() probe.Config {
	return probe.Config{
		Timeout:          seconds(c.ProbeTimeoutSeconds),
		PollInterval:     time.Duration(c.PollIntervalMillis) * time.Millisecond,
		ReadyWait:        seconds(c.ReadyWaitSeconds),
		BusyPollInterval: time.Duration(c.BusyPollMillis) * time.Millisecond,
		DownloadCeiling:  seconds(c.DownloadCeilingSeconds),
		NoReactionSettle: time.Duration(c.NoReactionSettleMillis) * time.Millisecond,
		SuccessThrottle:  seconds(c.SuccessThrottleSeconds),
	}
}

// InstrumentSettle is the pause after setting the instrument field.
func (c Config) InstrumentSettle() time.Duration {
	return time.Duration(c.InstrumentSettleMillis) * time.Millisecond
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(Mode("")) {
				enum := make([]any, 0, len(AllModes))
				for _, mode := range AllModes {
					enum = append(enum, string(mode))
				}

				return &jsonschema.Schema{
					Type: "string",
					Enum: enum,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "replay-miner-config"
	schema.Description = "Configuration schema for a replay mining session"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
