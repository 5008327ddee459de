package interactive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/telephony-observer/observer-go/pkg/gateway"
	"github.com/telephony-observer/observer-go/pkg/observer"
	"github.com/telephony-observer/observer-go/pkg/source"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// cmdOn subscribes a console listener that prints every notification.
func (c *Console) cmdOn(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: on <event> [slot]")
		return
	}
	et, err := telephony.ParseEventType(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	slot, err := parseSlot(args[1:], c.config.DefaultSlot)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	id := uuid.NewString()[:8]
	cb, ok := c.printingCallback(et, slot, id)
	if !ok {
		fmt.Fprintf(c.out, "Error: %s is not delivered to subscribers\n", et)
		return
	}
	l := observer.Listener{EventType: et, SlotID: slot, Callback: cb}
	if err := c.registry.Register(l); err != nil {
		fmt.Fprintf(c.out, "Subscribe failed: %v\n", err)
		return
	}

	c.mu.Lock()
	c.subscribers = append(c.subscribers, subscriber{id: id, listener: l})
	c.mu.Unlock()
	fmt.Fprintf(c.out, "Subscribed %s on slot %d (id %s)\n", et, slot, id)
}

// cmdOff removes one console listener by id, or every listener of the event.
func (c *Console) cmdOff(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: off <event> [id]")
		return
	}
	et, err := telephony.ParseEventType(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	var cb observer.Callback
	if len(args) > 1 {
		sub, ok := c.findSubscriber(args[1])
		if !ok || sub.listener.EventType != et {
			fmt.Fprintf(c.out, "No %s listener with id %s\n", et, args[1])
			return
		}
		cb = sub.listener.Callback
	}

	before := c.registry.Len()
	err = c.registry.Unregister(et, cb)
	removed := before - c.registry.Len()

	c.mu.Lock()
	c.subscribers = slices.DeleteFunc(c.subscribers, func(s subscriber) bool {
		if s.listener.EventType != et {
			return false
		}
		return cb == nil || observer.SameCallback(s.listener.Callback, cb)
	})
	c.mu.Unlock()

	fmt.Fprintf(c.out, "Removed %d %s listener(s)\n", removed, et)
	if err != nil {
		fmt.Fprintf(c.out, "Deactivation failed: %v\n", err)
	}
}

func (c *Console) findSubscriber(id string) (subscriber, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subscribers {
		if s.id == id {
			return s, true
		}
	}
	return subscriber{}, false
}

// cmdEmit delivers one notification built from key=value fields.
func (c *Console) cmdEmit(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: emit <event> [key=value ...]")
		return
	}
	et, err := telephony.ParseEventType(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	frame, err := buildFrame(et, args[1:], c.config.DefaultSlot)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if err := frame.Deliver(c.sink()); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// cmdReplay delivers a recording or scenario file.
func (c *Console) cmdReplay(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: replay <file> [speed]")
		return
	}
	cfg := source.ReplayConfig{SkipInvalid: true}
	if len(args) > 1 {
		speed, err := strconv.ParseFloat(args[1], 64)
		if err != nil || speed < 0 {
			fmt.Fprintf(c.out, "Invalid speed: %s\n", args[1])
			return
		}
		cfg.Pace = speed > 0
		cfg.Speed = speed
	}

	n, err := ReplayFile(c.ctx, args[0], c.sink(), cfg)
	fmt.Fprintf(c.out, "Replayed %d notification(s)\n", n)
	if err != nil {
		fmt.Fprintf(c.out, "Replay stopped: %v\n", err)
	}
}

// cmdRecord starts or stops recording emitted notifications.
func (c *Console) cmdRecord(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: record <file>|stop")
		return
	}
	if strings.ToLower(args[0]) == "stop" {
		path, count, err := c.stopRecording()
		switch {
		case path == "":
			fmt.Fprintln(c.out, "Not recording")
		case err != nil:
			fmt.Fprintf(c.out, "Recording to %s stopped with error: %v\n", path, err)
		default:
			fmt.Fprintf(c.out, "Recorded %d notification(s) to %s\n", count, path)
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recorder != nil {
		fmt.Fprintf(c.out, "Already recording to %s\n", c.recordFile.Name())
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.recordFile = f
	c.recorder = source.NewRecorder(c.registry, source.NewEncoder(f))
	fmt.Fprintf(c.out, "Recording to %s\n", f.Name())
}

// stopRecording closes the recording, if any, and returns its path, the
// number of frames written and the first error seen.
func (c *Console) stopRecording() (string, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recorder == nil {
		return "", 0, nil
	}
	path := c.recordFile.Name()
	count := c.recorder.Count()
	err := c.recorder.Err()
	if cerr := c.recordFile.Close(); err == nil {
		err = cerr
	}
	c.recorder = nil
	c.recordFile = nil
	return path, count, err
}

// cmdList shows console listeners.
func (c *Console) cmdList() {
	c.mu.Lock()
	subs := slices.Clone(c.subscribers)
	c.mu.Unlock()

	if len(subs) == 0 {
		fmt.Fprintln(c.out, "No listeners")
		return
	}
	fmt.Fprintf(c.out, "Listeners (%d):\n", len(subs))
	for _, s := range subs {
		fmt.Fprintf(c.out, "  %s  %s\n", s.id, s.listener)
	}
}

// cmdStatus shows registry and gateway state.
func (c *Console) cmdStatus() {
	fmt.Fprintf(c.out, "Registry:   %s\n", c.registry.ID())
	fmt.Fprintf(c.out, "Listeners:  %d\n", c.registry.Len())

	pairs := c.registry.ActivePairs()
	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.String()
	}
	if len(names) == 0 {
		names = []string{"-"}
	}
	fmt.Fprintf(c.out, "Active:     %s\n", strings.Join(names, " "))

	if c.state != nil {
		slots := c.state.ActiveSlots()
		if len(slots) == 0 {
			fmt.Fprintln(c.out, "Gateway:    idle")
		}
		for _, slot := range slots {
			mask := c.state.ActiveMask(slot)
			fmt.Fprintf(c.out, "Gateway:    slot %d mask 0x%x (%s)\n", slot, mask, maskNames(mask))
		}
		calls := c.state.Calls()
		failed := 0
		for _, call := range calls {
			if call.Status != gateway.StatusSuccess {
				failed++
			}
		}
		fmt.Fprintf(c.out, "Calls:      %d (%d failed)\n", len(calls), failed)
	}

	c.mu.Lock()
	if c.recorder != nil {
		fmt.Fprintf(c.out, "Recording:  %s (%d frames)\n", c.recordFile.Name(), c.recorder.Count())
	}
	c.mu.Unlock()
}

// cmdFail injects gateway failures.
func (c *Console) cmdFail(args []string) {
	if c.state == nil {
		fmt.Fprintln(c.out, "Failure injection needs the in-memory gateway")
		return
	}
	if len(args) == 1 && strings.ToLower(args[0]) == "clear" {
		c.state.ClearFailures()
		fmt.Fprintln(c.out, "Cleared injected failures")
		return
	}
	if len(args) != 3 {
		fmt.Fprintln(c.out, "Usage: fail add|remove <event> <status> | fail clear")
		return
	}
	et, err := telephony.ParseEventType(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	status, err := parseStatus(args[2])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	switch strings.ToLower(args[0]) {
	case "add", "activate":
		c.state.FailAdd(et.Mask(), status)
	case "remove", "deactivate":
		c.state.FailRemove(et.Mask(), status)
	default:
		fmt.Fprintf(c.out, "Unknown fail target: %s\n", args[0])
		return
	}
	fmt.Fprintf(c.out, "%s %s will return %s\n", args[0], et, gateway.StatusName(status))
}

// parseStatus accepts a status name or a numeric code.
func parseStatus(s string) (int32, error) {
	if code, ok := gateway.ParseStatus(strings.ToUpper(s)); ok {
		return code, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown status %q", s)
	}
	return int32(n), nil
}

// printingCallback builds a callback for et that prints each notification.
func (c *Console) printingCallback(et telephony.EventType, slot int32, id string) (observer.Callback, bool) {
	show := func(payload any) {
		fmt.Fprintf(c.out, "[%s] %s slot=%d: %v\n", id, et, slot, payload)
	}

	switch et {
	case telephony.EventNetworkStateUpdate:
		return observer.NetworkStateCallback{Invoker: observer.NewFunc(func(s telephony.NetworkState) { show(s) })}, true
	case telephony.EventCallStateUpdate:
		return observer.CallStateCallback{Invoker: observer.NewFunc(func(s telephony.CallStateInfo) { show(s) })}, true
	case telephony.EventCellInfoUpdate:
		return observer.CellInfoCallback{Invoker: observer.NewFunc(func(cells []telephony.CellInformation) { show(cells) })}, true
	case telephony.EventSignalStrengthsUpdate:
		return observer.SignalInfoCallback{Invoker: observer.NewFunc(func(sigs []telephony.SignalInformation) { show(sigs) })}, true
	case telephony.EventSimStateUpdate:
		return observer.SimStateCallback{Invoker: observer.NewFunc(func(s telephony.SimStateData) { show(s) })}, true
	case telephony.EventDataConnectionUpdate:
		return observer.DataConnectionCallback{Invoker: observer.NewFunc(func(s telephony.DataConnectionStateInfo) { show(s) })}, true
	case telephony.EventCellularDataFlowUpdate:
		return observer.DataFlowCallback{Invoker: observer.NewFunc(func(t telephony.DataFlowType) { show(t) })}, true
	case telephony.EventIccAccountChange:
		return observer.AccountChangeCallback{Invoker: observer.NewFunc(func(struct{}) { show("account changed") })}, true
	default:
		return nil, false
	}
}

// ReplayFile delivers a .yaml scenario or a CBOR recording to sink.
func ReplayFile(ctx context.Context, path string, sink source.Sink, cfg source.ReplayConfig) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		frames, err := source.LoadScenario(path)
		if err != nil {
			return 0, err
		}
		return source.ReplayFrames(ctx, frames, sink, cfg)
	default:
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		return source.Replay(ctx, f, sink, cfg)
	}
}
