package observer

import (
	"reflect"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Invoker is an opaque capability to deliver a payload to caller code.
// The registry never owns an Invoker; it only compares and invokes it.
// Two callbacks are the same subscription when their invokers compare equal.
type Invoker[T any] interface {
	Invoke(payload T)
}

// Func adapts a plain function to an Invoker. Identity is the *Func pointer,
// so wrapping the same function twice yields two distinct subscriptions.
type Func[T any] struct {
	fn func(T)
}

// NewFunc wraps fn.
func NewFunc[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: fn}
}

// Invoke calls the wrapped function.
func (f *Func[T]) Invoke(payload T) {
	if f == nil || f.fn == nil {
		return
	}
	f.fn(payload)
}

// Callback is the closed set of callback variants, one per dispatchable
// category. The unexported method keeps the set sealed to this package.
type Callback interface {
	// EventType returns the category the variant serves.
	EventType() telephony.EventType

	// Variant returns the variant name.
	Variant() string

	invoker() any
}

// DataFlowCallback receives cellular data flow changes.
type DataFlowCallback struct {
	Invoker Invoker[telephony.DataFlowType]
}

// AccountChangeCallback receives ICC account changes. It carries no payload.
type AccountChangeCallback struct {
	Invoker Invoker[struct{}]
}

// SimStateCallback receives SIM state changes.
type SimStateCallback struct {
	Invoker Invoker[telephony.SimStateData]
}

// SignalInfoCallback receives signal strength lists.
type SignalInfoCallback struct {
	Invoker Invoker[[]telephony.SignalInformation]
}

// CellInfoCallback receives cell information lists.
type CellInfoCallback struct {
	Invoker Invoker[[]telephony.CellInformation]
}

// DataConnectionCallback receives data connection state changes.
type DataConnectionCallback struct {
	Invoker Invoker[telephony.DataConnectionStateInfo]
}

// NetworkStateCallback receives network registration changes.
type NetworkStateCallback struct {
	Invoker Invoker[telephony.NetworkState]
}

// CallStateCallback receives call state changes.
type CallStateCallback struct {
	Invoker Invoker[telephony.CallStateInfo]
}

func (DataFlowCallback) EventType() telephony.EventType {
	return telephony.EventCellularDataFlowUpdate
}
func (AccountChangeCallback) EventType() telephony.EventType { return telephony.EventIccAccountChange }
func (SimStateCallback) EventType() telephony.EventType      { return telephony.EventSimStateUpdate }
func (SignalInfoCallback) EventType() telephony.EventType {
	return telephony.EventSignalStrengthsUpdate
}
func (CellInfoCallback) EventType() telephony.EventType { return telephony.EventCellInfoUpdate }
func (DataConnectionCallback) EventType() telephony.EventType {
	return telephony.EventDataConnectionUpdate
}
func (NetworkStateCallback) EventType() telephony.EventType { return telephony.EventNetworkStateUpdate }
func (CallStateCallback) EventType() telephony.EventType    { return telephony.EventCallStateUpdate }

func (DataFlowCallback) Variant() string       { return "DataFlow" }
func (AccountChangeCallback) Variant() string  { return "AccountChange" }
func (SimStateCallback) Variant() string       { return "SimState" }
func (SignalInfoCallback) Variant() string     { return "SignalInfo" }
func (CellInfoCallback) Variant() string       { return "CellInfo" }
func (DataConnectionCallback) Variant() string { return "DataConnection" }
func (NetworkStateCallback) Variant() string   { return "NetworkState" }
func (CallStateCallback) Variant() string      { return "CallState" }

func (c DataFlowCallback) invoker() any       { return c.Invoker }
func (c AccountChangeCallback) invoker() any  { return c.Invoker }
func (c SimStateCallback) invoker() any       { return c.Invoker }
func (c SignalInfoCallback) invoker() any     { return c.Invoker }
func (c CellInfoCallback) invoker() any       { return c.Invoker }
func (c DataConnectionCallback) invoker() any { return c.Invoker }
func (c NetworkStateCallback) invoker() any   { return c.Invoker }
func (c CallStateCallback) invoker() any      { return c.Invoker }

// SameCallback reports whether a and b are the same variant wrapping
// identical invokers. Invokers whose dynamic type is not comparable are
// never equal to anything; Register rejects them.
func SameCallback(a, b Callback) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return sameInvoker(a.invoker(), b.invoker())
}

func sameInvoker(a, b any) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// isNil reports whether v is a nil interface or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// validCallback reports whether cb can serve category et. The invoker must
// be comparable so the callback can later be matched for removal.
func validCallback(et telephony.EventType, cb Callback) bool {
	if cb == nil || cb.EventType() != et {
		return false
	}
	inv := cb.invoker()
	return !isNil(inv) && reflect.ValueOf(inv).Comparable()
}
