package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"github.com/shirerpeton/srtReflow/internal/reflow"
	"github.com/shirerpeton/srtReflow/internal/substitute"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	ReflowConfig struct {
		Columns int `yaml:"columns" validate:"min=1"`
		Rows    int `yaml:"rows" validate:"min=1"`
	}

	RegexConfig struct {
		IgnoreCase   bool          `yaml:"ignore_case"`
		RE2Syntax    bool          `yaml:"re2_syntax"`
		MatchTimeout time.Duration `yaml:"match_timeout" validate:"gte=0"`
	}

	DictionaryConfig struct {
		Path string `yaml:"path" validate:"required"`
	}

	InputConfig struct {
		Encoding string `yaml:"encoding" validate:"required"`
	}

	OutputConfig struct {
		Directory string `yaml:"directory" validate:"required"`
		Suffix    string `yaml:"suffix"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Reflow     ReflowConfig     `yaml:"reflow"`
		Regex      RegexConfig      `yaml:"regex"`
		Dictionary DictionaryConfig `yaml:"dictionary"`
		Input      InputConfig      `yaml:"input"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration superimposes the file at path, if any, on top of the
// embedded defaults and validates the result.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded configuration as is.
func Default() []byte {
	return defaultConfig
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

func (c *Config) Layout() reflow.Layout {
	return reflow.Layout{Columns: c.Reflow.Columns, Rows: c.Reflow.Rows}
}

func (c *Config) RegexOptions() substitute.Options {
	return substitute.Options{
		IgnoreCase:   c.Regex.IgnoreCase,
		RE2Syntax:    c.Regex.RE2Syntax,
		MatchTimeout: c.Regex.MatchTimeout,
	}
}
