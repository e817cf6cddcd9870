// SPDX-License-Identifier: EPL-2.0

// Package config reads the command line tool's YAML configuration. Every
// setting can be overridden by an AUDREMIX_* environment variable.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audremix/dsp"
)

var (
	ErrInvalidMergeRate = errors.New("merge rate must be positive")
	ErrInvalidEnv       = errors.New("malformed environment variable")
)

type Logging struct {
	Level  string `yaml:"level"`
	JSON   bool   `yaml:"json"`
	Colors bool   `yaml:"colors"`
}

type Resampler struct {
	Algorithm string `yaml:"algorithm"`
	Preset    string `yaml:"preset"`
	Quality   int    `yaml:"quality"`
}

type Merge struct {
	Rate int `yaml:"rate"`
}

type Metrics struct {
	// Textfile is where metrics are written after a run, in the Prometheus
	// text format. Empty disables it.
	Textfile string `yaml:"textfile"`
}

type Config struct {
	Logging   Logging   `yaml:"logging"`
	Resampler Resampler `yaml:"resampler"`
	Merge     Merge     `yaml:"merge"`
	Metrics   Metrics   `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	best := dsp.SincBest()
	return Config{
		Logging: Logging{Level: "info"},
		Resampler: Resampler{
			Algorithm: string(best.Algorithm),
			Preset:    best.Preset,
			Quality:   4,
		},
		Merge: Merge{Rate: 40000},
	}
}

// Load reads the file at path on top of Default, applies the environment
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		if err := c.decode(f); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// applyEnv overrides c from the environment. Malformed values are reported
// together and leave their settings unchanged.
func (c *Config) applyEnv(getenv func(string) string) error {
	e := &env{getenv: getenv}
	c.Logging.Level = e.str("AUDREMIX_LOG_LEVEL", c.Logging.Level)
	c.Logging.JSON = e.boolean("AUDREMIX_LOG_JSON", c.Logging.JSON)
	c.Logging.Colors = e.boolean("AUDREMIX_LOG_COLORS", c.Logging.Colors)

	c.Resampler.Algorithm = e.str("AUDREMIX_RESAMPLER", c.Resampler.Algorithm)
	c.Resampler.Preset = e.str("AUDREMIX_RESAMPLER_PRESET", c.Resampler.Preset)
	c.Resampler.Quality = e.integer("AUDREMIX_QUALITY", c.Resampler.Quality)

	c.Merge.Rate = e.integer("AUDREMIX_MERGE_RATE", c.Merge.Rate)
	c.Metrics.Textfile = e.str("AUDREMIX_METRICS_TEXTFILE", c.Metrics.Textfile)
	return errors.Join(e.errs...)
}

// Validate checks the log level, the resampler settings and the merge rate.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if err := c.ResamplerConfig().Validate(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	if c.Merge.Rate <= 0 {
		return fmt.Errorf("merge.rate %d: %w", c.Merge.Rate, ErrInvalidMergeRate)
	}
	return nil
}

func (c Config) ResamplerConfig() dsp.ResamplerConfig {
	return dsp.ResamplerConfig{
		Algorithm: dsp.Algorithm(c.Resampler.Algorithm),
		Preset:    c.Resampler.Preset,
		Quality:   c.Resampler.Quality,
	}
}

type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) str(key, fallback string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e *env) integer(key string, fallback int) int {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", key, v, ErrInvalidEnv))
		return fallback
	}
	return n
}

func (e *env) boolean(key string, fallback bool) bool {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", key, v, ErrInvalidEnv))
		return fallback
	}
	return b
}
