package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/telephony-observer/observer-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output     string
	RegistryID string
	TimeStart  string
	TimeEnd    string
	Category   string
	Event      string
	Slot       string
}

// BuildFilter converts flag values into a trace filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{RegistryID: opts.RegistryID}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	if opts.Event != "" {
		et, err := ParseEventFlag(opts.Event)
		if err != nil {
			return filter, err
		}
		filter.EventType = &et
	}

	if opts.Slot != "" {
		slot, err := ParseSlotFlag(opts.Slot)
		if err != nil {
			return filter, err
		}
		filter.SlotID = &slot
	}

	return filter, nil
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := BuildFilter(opts)
	if err != nil {
		return 0, err
	}

	// Open input
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Create file logger to write filtered events
	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return logger.Written(), fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	if err := logger.Sync(); err != nil {
		return logger.Written(), fmt.Errorf("failed to flush output: %w", err)
	}
	return logger.Written(), nil
}
