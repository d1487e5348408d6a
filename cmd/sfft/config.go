package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
)

// recoverConfig holds the settings of the recover command. It is read
// from an optional YAML file; command-line flags take precedence.
type recoverConfig struct {
	Sparsity     int     `yaml:"sparsity" validate:"gte=1"`
	Rank         int     `yaml:"rank" validate:"gte=1,lte=16"`
	Seed         int64   `yaml:"seed"`
	Tolerance    float64 `yaml:"tolerance" validate:"gt=0"`
	SampleFactor float64 `yaml:"sample_factor" validate:"gt=0"`
	Preemptive   bool    `yaml:"preemptive"`
}

func defaultRecoverConfig() recoverConfig {
	return recoverConfig{
		Rank:         1,
		Seed:         sfft.DefaultSeed,
		Tolerance:    sfft.DefaultTolerance,
		SampleFactor: sfft.DefaultSampleFactor,
		Preemptive:   true,
	}
}

// loadRecoverConfig returns the defaults overlaid with the file at path.
// An empty path yields the defaults.
func loadRecoverConfig(path string) (recoverConfig, error) {
	cfg := defaultRecoverConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c recoverConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid recover config: %w", err)
	}
	return nil
}

func (c recoverConfig) options() []sfft.Option {
	return []sfft.Option{
		sfft.WithSeed(c.Seed),
		sfft.WithTolerance(c.Tolerance),
		sfft.WithSampleFactor(c.SampleFactor),
		sfft.WithPreemptiveTests(c.Preemptive),
	}
}
