// Package commands implements the observer-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [reg:id] CATEGORY kind EVENT slot
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	regID := shortenID(event.RegistryID)

	fmt.Fprintf(w, "%s [reg:%s] %-12s %-22s %s %s\n",
		ts, regID, event.Category, event.Kind(), event.EventType, formatSlot(event.SlotID))

	// Type-specific details
	switch {
	case event.Subscription != nil:
		formatSubscriptionDetails(w, event.Subscription)
	case event.Gateway != nil:
		formatGatewayDetails(w, event.Gateway)
	case event.Dispatch != nil:
		formatDispatchDetails(w, event.Dispatch)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a registry ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatSlot(slot int32) string {
	if slot == log.AllSlots {
		return "slot=all"
	}
	return "slot=" + strconv.Itoa(int(slot))
}

func formatSubscriptionDetails(w io.Writer, sub *log.SubscriptionEvent) {
	if sub.Variant != "" {
		fmt.Fprintf(w, "  Callback: %s\n", sub.Variant)
	}
	if sub.Action == log.SubscriptionRemoved {
		fmt.Fprintf(w, "  Removed: %d\n", sub.Count)
	}
	fmt.Fprintf(w, "  Remaining: %d\n", sub.Remaining)
}

func formatGatewayDetails(w io.Writer, gw *log.GatewayEvent) {
	fmt.Fprintf(w, "  Mask: 0x%08x\n", gw.Mask)
	if gw.Failed {
		fmt.Fprintf(w, "  Failed: %s (%d)\n", gw.Message, gw.Code)
	}
}

func formatDispatchDetails(w io.Writer, d *log.DispatchEvent) {
	fmt.Fprintf(w, "  Invoked: %d", d.Invoked)
	if d.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped: %d", d.Skipped)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(d.Duration))
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be subscription, gateway, dispatch, or error)", s)
	}
	return c, nil
}

// ParseEventFlag parses a notification category such as "sim-state".
func ParseEventFlag(s string) (telephony.EventType, error) {
	et, err := telephony.ParseEventType(s)
	if err != nil {
		return 0, fmt.Errorf("invalid event: %w", err)
	}
	return et, nil
}

// ParseSlotFlag parses a slot number. "all" selects events that are not
// scoped to one slot.
func ParseSlotFlag(s string) (int32, error) {
	if strings.EqualFold(s, "all") {
		return log.AllSlots, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid slot: %s (must be a number or all)", s)
	}
	return int32(n), nil
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
