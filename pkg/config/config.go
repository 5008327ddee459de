package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/telephony-observer/observer-go/pkg/gateway"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Validation errors.
var (
	ErrInvalidSlotCount   = errors.New("config: slot_count must not be negative")
	ErrInvalidDefaultSlot = errors.New("config: default_slot out of range")
	ErrInvalidLogLevel    = errors.New("config: unknown log_level")
	ErrInvalidFailCode    = errors.New("config: invalid fail_codes entry")
)

// Config holds the settings shared by the observer tools.
type Config struct {
	// SlotCount is the number of physical SIM slots.
	SlotCount int32 `yaml:"slot_count"`

	// DefaultSlot is used when a command omits the slot.
	DefaultSlot int32 `yaml:"default_slot"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// TraceFile receives registry trace events when set.
	TraceFile string `yaml:"trace_file"`

	// FailCodes maps a category name to the gateway status its activation
	// should fail with. Used to exercise failure paths.
	FailCodes map[string]string `yaml:"fail_codes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SlotCount:   gateway.DefaultSlotCount,
		DefaultSlot: telephony.DefaultSlotID,
		LogLevel:    "info",
	}
}

// LoadError describes a configuration file that could not be used.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return e.File + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.SlotCount < 0 {
		return ErrInvalidSlotCount
	}
	if c.DefaultSlot < 0 || c.DefaultSlot > c.SlotCount {
		return fmt.Errorf("%w: %d with %d slots", ErrInvalidDefaultSlot, c.DefaultSlot, c.SlotCount)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.ActivationFailures(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ActivationFailures resolves FailCodes into category masks and status codes.
func (c Config) ActivationFailures() (map[telephony.EventType]int32, error) {
	out := make(map[telephony.EventType]int32, len(c.FailCodes))
	for name, statusName := range c.FailCodes {
		et, err := telephony.ParseEventType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFailCode, err)
		}
		status, ok := gateway.ParseStatus(strings.ToUpper(statusName))
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q for %s", ErrInvalidFailCode, statusName, name)
		}
		out[et] = status
	}
	return out, nil
}

// ParseLevel maps a level name to an slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}
