package config

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"
	"github.com/spf13/viper"

	"github.com/chrisconley/cltv/specs"
)

// EnvPrefix prefixes every environment override, e.g. CLTV_PROFIT_RATE or
// CLTV_INPUT_PATH.
const EnvPrefix = "CLTV"

// Output formats of the customer table.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Settings represents the configuration of a CLTV batch run.
type Settings struct {
	ProfitRate string         `json:"profit-rate" mapstructure:"profit-rate"`
	LogLevel   string         `json:"log-level" mapstructure:"log-level"`
	Input      InputSettings  `json:"input" mapstructure:"input"`
	Output     OutputSettings `json:"output" mapstructure:"output"`
}

type InputSettings struct {
	Path  string `json:"path" mapstructure:"path"`
	Sheet string `json:"sheet" mapstructure:"sheet"`
}

type OutputSettings struct {
	Path        string `json:"path" mapstructure:"path"`
	Format      string `json:"format" mapstructure:"format"`
	SummaryPath string `json:"summary-path" mapstructure:"summary-path"`
}

var defaults = map[string]any{
	"profit-rate":         specs.DefaultProfitRate,
	"log-level":           "INFO",
	"input.path":          "",
	"input.sheet":         "",
	"output.path":         "",
	"output.format":       FormatCSV,
	"output.summary-path": "",
}

var requiredFields = []string{
	"input.path",
	"output.path",
}

// Load reads settings from the file at path (YAML, JSON or TOML by
// extension) and from environment variables. Environment variables take
// precedence over the file. An empty path reads the environment only.
func Load(path string) (*Settings, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if v.GetString(field) == "" {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks values that viper cannot type-check.
func (s *Settings) Validate() error {
	switch s.Output.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("invalid output format: %q", s.Output.Format)
	}
	if _, err := logging.LogLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	if s.Input.Path == "" {
		return fmt.Errorf("missing required config field: input.path")
	}
	if s.Output.Path == "" {
		return fmt.Errorf("missing required config field: output.path")
	}
	return nil
}

// CLTVConfig returns the pipeline parameters.
func (s *Settings) CLTVConfig() specs.CLTVConfigSpec {
	return specs.CLTVConfigSpec{ProfitRate: s.ProfitRate}
}
