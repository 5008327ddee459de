package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
// Error category events are written at Warn.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single structured record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("registry_id", event.RegistryID),
		slog.String("category", event.Category.String()),
		slog.String("event_type", event.EventType.String()),
	}
	if event.SlotID != AllSlots {
		attrs = append(attrs, slog.Int("slot_id", int(event.SlotID)))
	}

	level := slog.LevelDebug
	switch {
	case event.Subscription != nil:
		attrs = append(attrs,
			slog.String("action", event.Subscription.Action.String()),
			slog.Int("count", event.Subscription.Count),
			slog.Int("remaining", event.Subscription.Remaining),
		)
		if event.Subscription.Variant != "" {
			attrs = append(attrs, slog.String("variant", event.Subscription.Variant))
		}
	case event.Gateway != nil:
		attrs = append(attrs,
			slog.String("action", event.Gateway.Action.String()),
			slog.Uint64("mask", uint64(event.Gateway.Mask)),
		)
		if event.Gateway.Failed {
			attrs = append(attrs,
				slog.Int("code", int(event.Gateway.Code)),
				slog.String("message", event.Gateway.Message),
			)
		}
	case event.Dispatch != nil:
		attrs = append(attrs,
			slog.Int("invoked", event.Dispatch.Invoked),
			slog.Duration("duration", event.Dispatch.Duration),
		)
		if event.Dispatch.Skipped > 0 {
			attrs = append(attrs, slog.Int("skipped", event.Dispatch.Skipped))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", int(*event.Error.Code)))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "registry", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
