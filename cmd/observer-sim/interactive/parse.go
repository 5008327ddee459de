package interactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/telephony-observer/observer-go/pkg/source"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// fields holds key=value arguments. Repeated keys keep every value in order.
type fields map[string][]string

// parseFields splits key=value arguments.
func parseFields(args []string) (fields, error) {
	out := make(fields, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		key = strings.ToLower(key)
		out[key] = append(out[key], value)
	}
	return out, nil
}

// take removes key and returns its last value.
func (f fields) take(key string) (string, bool) {
	values, ok := f[key]
	if !ok {
		return "", false
	}
	delete(f, key)
	return values[len(values)-1], true
}

// takeAll removes key and returns every value.
func (f fields) takeAll(key string) []string {
	values := f[key]
	delete(f, key)
	return values
}

func (f fields) intValue(key string, def int32) (int32, error) {
	s, ok := f.take(key)
	if !ok {
		return def, nil
	}
	return parseInt32(key, s)
}

func (f fields) boolValue(key string) (bool, error) {
	s, ok := f.take(key)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return b, nil
}

// rest reports keys that no parser consumed.
func (f fields) rest() error {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	return fmt.Errorf("unknown field(s): %s", strings.Join(keys, ", "))
}

func parseInt32(key, s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return int32(n), nil
}

// parseSlot parses an optional positional slot argument.
func parseSlot(args []string, def int32) (int32, error) {
	if len(args) == 0 {
		return def, nil
	}
	return parseInt32("slot", args[0])
}

// buildFrame builds a notification frame for an emit command.
func buildFrame(et telephony.EventType, args []string, defaultSlot int32) (source.Frame, error) {
	f, err := parseFields(args)
	if err != nil {
		return source.Frame{}, err
	}

	frame := source.Frame{EventType: et}
	if frame.SlotID, err = f.intValue("slot", defaultSlot); err != nil {
		return source.Frame{}, err
	}

	switch et {
	case telephony.EventCellularDataFlowUpdate:
		frame.DataFlowType, err = f.intValue("type", 0)

	case telephony.EventIccAccountChange:

	case telephony.EventSimStateUpdate:
		frame.CardType, err = f.intValue("card", 0)
		if err == nil {
			frame.SimState, err = f.intValue("state", 0)
		}
		if err == nil {
			frame.LockReason, err = f.intValue("reason", 0)
		}

	case telephony.EventSignalStrengthsUpdate:
		for _, s := range f.takeAll("signal") {
			sig, perr := parseSignal(s)
			if perr != nil {
				return source.Frame{}, perr
			}
			frame.Signals = append(frame.Signals, sig)
		}

	case telephony.EventCellInfoUpdate:
		for _, s := range f.takeAll("cell") {
			sig, perr := parseSignal(s)
			if perr != nil {
				return source.Frame{}, perr
			}
			frame.Cells = append(frame.Cells, telephony.RawCellInformation{
				NetworkType:       sig.SignalType,
				SignalInformation: sig,
			})
		}

	case telephony.EventDataConnectionUpdate:
		frame.DataState, err = f.intValue("state", 0)
		if err == nil {
			frame.NetworkType, err = f.intValue("network", 0)
		}

	case telephony.EventNetworkStateUpdate:
		frame.Network, err = parseNetworkState(f)

	case telephony.EventCallStateUpdate:
		state, serr := f.intValue("state", 0)
		if serr != nil {
			return source.Frame{}, serr
		}
		number, _ := f.take("number")
		frame.Call = &telephony.RawCallState{State: state, Number: number}

	default:
		return source.Frame{}, fmt.Errorf("%s is not delivered to subscribers", et)
	}
	if err != nil {
		return source.Frame{}, err
	}
	if err := f.rest(); err != nil {
		return source.Frame{}, err
	}
	return frame, nil
}

func parseNetworkState(f fields) (*telephony.RawNetworkState, error) {
	var (
		ns  telephony.RawNetworkState
		err error
	)
	if ns.RegState, err = f.intValue("reg", 0); err != nil {
		return nil, err
	}
	if ns.CfgTech, err = f.intValue("tech", 0); err != nil {
		return nil, err
	}
	if ns.NsaState, err = f.intValue("nsa", 0); err != nil {
		return nil, err
	}
	if ns.IsRoaming, err = f.boolValue("roaming"); err != nil {
		return nil, err
	}
	if ns.IsEmergency, err = f.boolValue("emergency"); err != nil {
		return nil, err
	}
	ns.LongOperatorName, _ = f.take("long")
	ns.ShortOperatorName, _ = f.take("short")
	ns.PlmnNumeric, _ = f.take("plmn")
	return &ns, nil
}

// parseSignal parses TYPE:LEVEL:DBM.
func parseSignal(s string) (telephony.RawSignalInformation, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return telephony.RawSignalInformation{}, fmt.Errorf("expected TYPE:LEVEL:DBM, got %q", s)
	}
	var vals [3]int32
	for i, name := range []string{"type", "level", "dbm"} {
		v, err := parseInt32(name, parts[i])
		if err != nil {
			return telephony.RawSignalInformation{}, err
		}
		vals[i] = v
	}
	return telephony.RawSignalInformation{SignalType: vals[0], SignalLevel: vals[1], DBm: vals[2]}, nil
}

// maskNames lists the categories set in a gateway mask.
func maskNames(mask uint32) string {
	var names []string
	for _, et := range telephony.AllEventTypes {
		if mask&et.Mask() != 0 {
			names = append(names, et.String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
