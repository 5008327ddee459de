package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByType     map[telephony.EventType]int
	EventsBySlot     map[int32]int
	Registries       map[string]*RegistryStats
	GatewayFailures  int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RegistryStats holds statistics for a single registry instance.
type RegistryStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Added       int
	Removed     int
	Duplicates  int
	Dispatches  int
	Invoked     int
	Skipped     int
	MaxDispatch time.Duration
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsByType:     make(map[telephony.EventType]int),
		EventsBySlot:     make(map[int32]int),
		Registries:       make(map[string]*RegistryStats),
	}

	err = eachEvent(reader, func(event log.Event) error {
		stats.add(event)
		return nil
	})
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByType[event.EventType]++
	s.EventsBySlot[event.SlotID]++

	// Track time range
	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	// Track registry stats
	reg, ok := s.Registries[event.RegistryID]
	if !ok {
		reg = &RegistryStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Registries[event.RegistryID] = reg
	}
	reg.Events++
	if event.Timestamp.After(reg.LastSeen) {
		reg.LastSeen = event.Timestamp
	}

	switch {
	case event.Subscription != nil:
		switch event.Subscription.Action {
		case log.SubscriptionAdded:
			reg.Added += event.Subscription.Count
		case log.SubscriptionRemoved:
			reg.Removed += event.Subscription.Count
		case log.SubscriptionDuplicate:
			reg.Duplicates++
		}
	case event.Gateway != nil:
		if event.Gateway.Failed {
			s.GatewayFailures++
		}
	case event.Dispatch != nil:
		reg.Dispatches++
		reg.Invoked += event.Dispatch.Invoked
		reg.Skipped += event.Dispatch.Skipped
		reg.MaxDispatch = max(reg.MaxDispatch, event.Dispatch.Duration)
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Telephony Observer Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategorySubscription, log.CategoryGateway, log.CategoryDispatch, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by notification category, in bit order
	fmt.Fprintln(w, "Events by Type:")
	for _, et := range slices.Sorted(maps.Keys(stats.EventsByType)) {
		fmt.Fprintf(w, "  %-20s %d\n", et.String()+":", stats.EventsByType[et])
	}
	fmt.Fprintln(w)

	// Events by slot
	fmt.Fprintln(w, "Events by Slot:")
	for _, slot := range slices.Sorted(maps.Keys(stats.EventsBySlot)) {
		fmt.Fprintf(w, "  %-20s %d\n", formatSlot(slot)+":", stats.EventsBySlot[slot])
	}
	fmt.Fprintln(w)

	// Registries
	fmt.Fprintf(w, "Registries: %d\n", len(stats.Registries))
	if len(stats.Registries) > 0 {
		// Sort by first seen time
		type regInfo struct {
			id    string
			stats *RegistryStats
		}
		regs := make([]regInfo, 0, len(stats.Registries))
		for id, rs := range stats.Registries {
			regs = append(regs, regInfo{id, rs})
		}
		sort.Slice(regs, func(i, j int) bool {
			return regs[i].stats.FirstSeen.Before(regs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, r := range regs {
			duration := r.stats.LastSeen.Sub(r.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(r.id), r.stats.Events, duration)
			fmt.Fprintf(w, "           Listeners: +%d -%d (duplicates %d)\n",
				r.stats.Added, r.stats.Removed, r.stats.Duplicates)
			if r.stats.Dispatches > 0 {
				fmt.Fprintf(w, "           Dispatches: %d, callbacks %d, skipped %d, slowest %s\n",
					r.stats.Dispatches, r.stats.Invoked, r.stats.Skipped, formatDuration(r.stats.MaxDispatch))
			}
		}
	}

	// Failures
	if stats.GatewayFailures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Gateway Failures: %d\n", stats.GatewayFailures)
	}
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
