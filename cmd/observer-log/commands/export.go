package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/telephony-observer/observer-go/pkg/log"
)

// record is the flat export form of a trace event.
type record struct {
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	RegistryID string `json:"registry_id" yaml:"registry_id"`
	Category   string `json:"category" yaml:"category"`
	Kind       string `json:"kind" yaml:"kind"`
	EventType  string `json:"event_type" yaml:"event_type"`
	Slot       string `json:"slot" yaml:"slot"`

	Variant   string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Count     int    `json:"count,omitempty" yaml:"count,omitempty"`
	Remaining *int   `json:"remaining,omitempty" yaml:"remaining,omitempty"`

	Mask   string `json:"mask,omitempty" yaml:"mask,omitempty"`
	Failed bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
	Code   *int32 `json:"code,omitempty" yaml:"code,omitempty"`

	Invoked    *int   `json:"invoked,omitempty" yaml:"invoked,omitempty"`
	Skipped    int    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	DurationNS int64  `json:"duration_ns,omitempty" yaml:"duration_ns,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Context    string `json:"context,omitempty" yaml:"context,omitempty"`
}

func newRecord(event log.Event) record {
	slot := strconv.Itoa(int(event.SlotID))
	if event.SlotID == log.AllSlots {
		slot = "all"
	}
	r := record{
		Timestamp:  event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		RegistryID: event.RegistryID,
		Category:   event.Category.String(),
		Kind:       event.Kind(),
		EventType:  event.EventType.String(),
		Slot:       slot,
	}

	switch {
	case event.Subscription != nil:
		s := event.Subscription
		r.Variant = s.Variant
		r.Count = s.Count
		r.Remaining = &s.Remaining
	case event.Gateway != nil:
		g := event.Gateway
		r.Mask = fmt.Sprintf("0x%08x", g.Mask)
		r.Failed = g.Failed
		if g.Failed {
			r.Code = &g.Code
			r.Message = g.Message
		}
	case event.Dispatch != nil:
		d := event.Dispatch
		r.Invoked = &d.Invoked
		r.Skipped = d.Skipped
		r.DurationNS = d.Duration.Nanoseconds()
	case event.Error != nil:
		e := event.Error
		r.Code = e.Code
		r.Message = e.Message
		r.Context = e.Context
	}
	return r
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var write func(io.Writer, *log.Reader) error
	switch format {
	case "jsonl":
		write = exportJSONL
	case "csv":
		write = exportCSV
	case "yaml":
		write = exportYAML
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv, yaml)", format)
	}

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return write(w, reader)
}

// eachEvent calls fn for every event until end of stream.
func eachEvent(reader *log.Reader, fn func(log.Event) error) error {
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

func exportJSONL(w io.Writer, reader *log.Reader) error {
	encoder := json.NewEncoder(w)
	return eachEvent(reader, func(event log.Event) error {
		if err := encoder.Encode(newRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportYAML(w io.Writer, reader *log.Reader) error {
	records := []record{}
	if err := eachEvent(reader, func(event log.Event) error {
		records = append(records, newRecord(event))
		return nil
	}); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(map[string][]record{"events": records}); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return encoder.Close()
}

var csvHeader = []string{
	"timestamp", "registry_id", "category", "kind", "event_type", "slot",
	"variant", "count", "remaining", "mask", "failed", "code",
	"invoked", "skipped", "duration_ns", "message", "context",
}

func exportCSV(w io.Writer, reader *log.Reader) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	err := eachEvent(reader, func(event log.Event) error {
		r := newRecord(event)
		row := []string{
			r.Timestamp, r.RegistryID, r.Category, r.Kind, r.EventType, r.Slot,
			r.Variant, optInt(r.Count, r.Count != 0), optPtr(r.Remaining), r.Mask,
			optBool(r.Failed), optPtr(r.Code),
			optPtr(r.Invoked), optInt(r.Skipped, r.Skipped != 0),
			optInt(r.DurationNS, r.DurationNS != 0), r.Message, r.Context,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func optInt[T int | int32 | int64](v T, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatInt(int64(v), 10)
}

func optPtr[T int | int32](v *T) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

func optBool(v bool) string {
	if !v {
		return ""
	}
	return "true"
}
