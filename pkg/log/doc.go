// Package log provides structured trace capture for the observer registry.
//
// This package defines the Logger interface and Event types for recording
// registry lifecycle events: subscriptions being added or removed, the
// activation gateway being toggled, notifications fanned out to subscribers
// and internal inconsistencies. It is separate from operational logging
// (slog); the trace is a machine-readable record for debugging and analysis.
//
// # Basic Usage
//
// Applications pass a Logger to the registry:
//
//	// For development: trace to console via slog
//	reg := observer.NewRegistryWithConfig(gw, observer.Config{
//	    TraceLogger: log.NewSlogAdapter(slog.Default()),
//	})
//
//	// For analysis: write to a binary file
//	fl, _ := log.NewFileLogger("/var/log/observer/registry.otrace")
//	reg := observer.NewRegistryWithConfig(gw, observer.Config{TraceLogger: fl})
//
//	// Both: use MultiLogger
//	reg := observer.NewRegistryWithConfig(gw, observer.Config{
//	    TraceLogger: log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl),
//	})
//
// # Event Categories
//
//   - Subscription: a listener was added, found duplicate, or removed
//   - Gateway: the notification source was activated or deactivated
//   - Dispatch: a notification was fanned out (with invoked/skipped counts)
//   - Error: an internal inconsistency or a rejected operation
//
// # File Format
//
// Trace files are a concatenated stream of CBOR-encoded events with integer
// keys (.otrace extension). The observer-log CLI provides viewing,
// filtering, statistics and export.
package log
