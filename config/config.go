// Package config provides YAML configuration parsing for the cloudstatus CLI.
//
// The provider table and its URLs are fixed; configuration only covers how
// a run is presented and which of the fixed providers are checked by
// default.
//
// Example configuration:
//
//	output: json
//	log_level: info
//	providers: [aws, cloudflare]
//
// Values support environment variable substitution: ${VAR} or
// ${VAR:-default}.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/cloudstatus"
)

const (
	// DefaultOutput is the output format used when none is configured.
	DefaultOutput = "text"

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Output is the report format: "text", "json" or "yaml".
	// Defaults to "text".
	Output string `yaml:"output" validate:"oneof=text json yaml"`

	// LogLevel is the minimum level written to stderr: "debug", "info",
	// "warn" or "error". Defaults to "warn".
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Providers lists the provider ids checked when none are given on the
	// command line. Empty means all providers in table order.
	Providers []string `yaml:"providers" validate:"dive,provider"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""
		defaultVal := submatches[3]

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Unknown keys are rejected. Environment variables are expanded in every
// value, then defaults are applied for Output and LogLevel, and provider ids
// are normalised to lower case.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expand(); err != nil {
		return nil, err
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	for i, id := range cfg.Providers {
		cfg.Providers[i] = strings.ToLower(strings.TrimSpace(id))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expand substitutes environment variables in all string values.
func (c *Config) expand() error {
	var err error
	if c.Output, err = expandEnvVars(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.LogLevel, err = expandEnvVars(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for i := range c.Providers {
		if c.Providers[i], err = expandEnvVars(c.Providers[i]); err != nil {
			return fmt.Errorf("providers[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// validate is shared; validator caches struct metadata per instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their YAML names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		_, ok := cloudstatus.LookupProvider(fl.Field().String())
		return ok
	})

	return v
}

// describe turns a validation failure into a readable message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "provider":
		return fmt.Sprintf("%s: unknown provider %q (expected one of %s)",
			fe.Field(), fe.Value(), strings.Join(cloudstatus.ProviderIDs(), ", "))
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
