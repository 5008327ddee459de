// Package source feeds raw telephony notifications into a registry.
//
// A Frame is one raw notification: the category, the slot and the
// category's raw payload codes. Frames are stored as a concatenated CBOR
// stream (.ocap) or as a YAML scenario list, and Replay delivers them to a
// Sink, normally an *observer.Registry.
//
//	f, _ := os.Open("boot.ocap")
//	n, err := source.Replay(ctx, f, registry, source.ReplayConfig{Pace: true})
//
// Recorder wraps a Sink and writes every notification it forwards, so a live
// session can be captured and replayed later.
package source
