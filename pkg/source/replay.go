package source

import (
	"context"
	"errors"
	"io"
	"time"
)

// ReplayConfig configures Replay.
type ReplayConfig struct {
	// Pace waits until each frame's Offset before delivering it.
	Pace bool

	// Speed scales paced delays; 2 replays twice as fast. Zero means 1.
	Speed float64

	// SkipInvalid drops frames that fail validation instead of stopping.
	SkipInvalid bool
}

// Replay decodes frames from r and delivers them to sink until end of
// stream, a decode error or ctx cancellation. It returns the number of
// frames delivered.
func Replay(ctx context.Context, r io.Reader, sink Sink, config ReplayConfig) (int, error) {
	dec := NewDecoder(r)
	next := func() (Frame, error) { return dec.Decode() }
	return replay(ctx, next, sink, config)
}

// ReplayFrames delivers an in-memory frame list, such as a loaded scenario.
func ReplayFrames(ctx context.Context, frames []Frame, sink Sink, config ReplayConfig) (int, error) {
	i := 0
	next := func() (Frame, error) {
		if i >= len(frames) {
			return Frame{}, io.EOF
		}
		f := frames[i]
		i++
		return f, nil
	}
	return replay(ctx, next, sink, config)
}

func replay(ctx context.Context, next func() (Frame, error), sink Sink, config ReplayConfig) (int, error) {
	speed := config.Speed
	if speed <= 0 {
		speed = 1
	}

	start := time.Now()
	delivered := 0
	for {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		f, err := next()
		if errors.Is(err, io.EOF) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}

		if config.Pace && f.Offset > 0 {
			due := start.Add(time.Duration(float64(f.Offset) / speed))
			if err := sleepUntil(ctx, due); err != nil {
				return delivered, err
			}
		}

		if err := f.Deliver(sink); err != nil {
			if config.SkipInvalid {
				continue
			}
			return delivered, err
		}
		delivered++
	}
}

func sleepUntil(ctx context.Context, due time.Time) error {
	wait := time.Until(due)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
