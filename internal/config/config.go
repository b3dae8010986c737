// Package config loads the YAML configuration shared by plt2csv and fixtiers.
//
// Every key is optional; missing keys keep the values from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-plotnik/internal/textenc"
	"github.com/shapestone/shape-plotnik/pkg/plotnik"
)

// On-error policies for batches.
const (
	OnErrorSkip  = "skip"
	OnErrorAbort = "abort"
)

// PlotnikConfig configures token file decoding.
type PlotnikConfig struct {
	Demographics   bool   `yaml:"demographics"`
	Encoding       string `yaml:"encoding"`
	SubjectPattern string `yaml:"subject_pattern"`
}

// OutputConfig configures CSV output.
type OutputConfig struct {
	Comma string `yaml:"comma"`
	CRLF  bool   `yaml:"crlf"`
	NaN   string `yaml:"nan"`
}

// TiersConfig configures TextGrid reading.
type TiersConfig struct {
	Encoding string `yaml:"encoding"`
}

// BatchConfig configures how batches treat failing files.
type BatchConfig struct {
	OnError string `yaml:"on_error"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models the configuration file.
type Config struct {
	Plotnik PlotnikConfig `yaml:"plotnik"`
	Output  OutputConfig  `yaml:"output"`
	Tiers   TiersConfig   `yaml:"tiers"`
	Batch   BatchConfig   `yaml:"batch"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Plotnik: PlotnikConfig{
			Encoding:       "utf-8",
			SubjectPattern: plotnik.DefaultSubjectPattern,
		},
		Output: OutputConfig{
			Comma: ",",
			CRLF:  true,
			NaN:   plotnik.DefaultNaN,
		},
		Tiers: TiersConfig{Encoding: textenc.Auto},
		Batch: BatchConfig{OnError: OnErrorSkip},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the file at path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Plotnik.Encoding = strings.ToLower(strings.TrimSpace(c.Plotnik.Encoding))
	c.Tiers.Encoding = strings.ToLower(strings.TrimSpace(c.Tiers.Encoding))
	c.Batch.OnError = strings.ToLower(strings.TrimSpace(c.Batch.OnError))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Plotnik.Encoding == "" {
		c.Plotnik.Encoding = "utf-8"
	}
	if c.Tiers.Encoding == "" {
		c.Tiers.Encoding = textenc.Auto
	}
	if c.Batch.OnError == "" {
		c.Batch.OnError = OnErrorSkip
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := textenc.Lookup(c.Plotnik.Encoding); err != nil {
		return fmt.Errorf("plotnik.encoding: %w", err)
	}
	if _, err := plotnik.NewSubjectMatcher(c.Plotnik.SubjectPattern); err != nil {
		return fmt.Errorf("plotnik.subject_pattern: %w", err)
	}
	if _, err := c.Output.CommaRune(); err != nil {
		return err
	}
	if _, err := textenc.Lookup(c.Tiers.Encoding); err != nil {
		return fmt.Errorf("tiers.encoding: %w", err)
	}
	switch c.Batch.OnError {
	case OnErrorSkip, OnErrorAbort:
	default:
		return fmt.Errorf("batch.on_error must be %q or %q, got %q", OnErrorSkip, OnErrorAbort, c.Batch.OnError)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// CommaRune returns the delimiter, which must be a single character.
func (o OutputConfig) CommaRune() (rune, error) {
	if utf8.RuneCountInString(o.Comma) != 1 {
		return 0, fmt.Errorf("output.comma must be one character, got %q", o.Comma)
	}
	r, _ := utf8.DecodeRuneInString(o.Comma)
	return r, nil
}

// WriterOptions converts the output section for plotnik.NewWriter.
func (c Config) WriterOptions() (plotnik.WriterOptions, error) {
	comma, err := c.Output.CommaRune()
	if err != nil {
		return plotnik.WriterOptions{}, err
	}
	return plotnik.WriterOptions{
		Demographics: c.Plotnik.Demographics,
		NaN:          c.Output.NaN,
		Comma:        comma,
		UseCRLF:      c.Output.CRLF,
	}, nil
}

// StopOnError reports whether batches abort on the first failure.
func (c Config) StopOnError() bool {
	return c.Batch.OnError == OnErrorAbort
}
