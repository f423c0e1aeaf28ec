// Package config provides configuration loading and management for girfdata.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Acquisition stream parameters
	Stream struct {
		// MaxAcquisitions limits how many acquisitions are read, 0 reads all
		MaxAcquisitions int `yaml:"maxAcquisitions"`

		// SkipNoise drops noise measurement readouts before building the acquisition info
		SkipNoise bool `yaml:"skipNoise"`
	} `yaml:"stream"`

	// Spectrum parameters
	Spectrum struct {
		// DwellTimeUs is the sampling interval of gradient waveforms in micro seconds
		DwellTimeUs float64 `yaml:"dwellTimeUs"`

		// NFFT is the zero padded FFT length, 0 uses the signal length
		NFFT int `yaml:"nfft"`
	} `yaml:"spectrum"`

	// Output parameters
	Output struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// SliceDir is where gridded data slices are exported as JPEG
		SliceDir string `yaml:"sliceDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Stream.MaxAcquisitions = 0
	cfg.Stream.SkipNoise = true

	cfg.Spectrum.DwellTimeUs = 10
	cfg.Spectrum.NFFT = 0

	cfg.Output.Verbose = false
	cfg.Output.SliceDir = "slices"

	return cfg
}

// DwellTime returns the spectrum dwell time as a duration.
func (c *Config) DwellTime() time.Duration {
	return time.Duration(c.Spectrum.DwellTimeUs * float64(time.Microsecond))
}

// Validate checks that all values are usable
func (c *Config) Validate() error {
	var errs []error
	if c.Stream.MaxAcquisitions < 0 {
		errs = append(errs, fmt.Errorf("stream.maxAcquisitions must not be negative, got %d", c.Stream.MaxAcquisitions))
	}
	if c.Spectrum.DwellTimeUs <= 0 {
		errs = append(errs, fmt.Errorf("spectrum.dwellTimeUs must be positive, got %g", c.Spectrum.DwellTimeUs))
	}
	if c.Spectrum.NFFT < 0 {
		errs = append(errs, fmt.Errorf("spectrum.nfft must not be negative, got %d", c.Spectrum.NFFT))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
