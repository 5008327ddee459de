package observer

import "github.com/telephony-observer/observer-go/pkg/telephony"

// Options scopes a subscription.
type Options struct {
	// SlotID is the slot to observe.
	SlotID int32
}

func defaultOptions() Options {
	return Options{SlotID: telephony.DefaultSlotID}
}

// subscribe wraps fn, registers it on Default and returns the handle.
func subscribe[T any, C Callback](et telephony.EventType, opts Options, fn func(T), wrap func(Invoker[T]) C) (*Func[T], error) {
	if fn == nil {
		return nil, telephony.NewBusinessError(telephony.CodeInvalidParameter)
	}
	handle := NewFunc(fn)
	err := Default().Register(Listener{
		EventType: et,
		SlotID:    opts.SlotID,
		Callback:  wrap(handle),
	})
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// unsubscribe removes handle, or every listener of et when handle is nil.
func unsubscribe[T any, C Callback](et telephony.EventType, handle *Func[T], wrap func(Invoker[T]) C) error {
	if handle == nil {
		return Default().Unregister(et, nil)
	}
	return Default().Unregister(et, wrap(handle))
}

func wrapNetworkState(i Invoker[telephony.NetworkState]) NetworkStateCallback {
	return NetworkStateCallback{Invoker: i}
}
func wrapSignalInfo(i Invoker[[]telephony.SignalInformation]) SignalInfoCallback {
	return SignalInfoCallback{Invoker: i}
}
func wrapCellInfo(i Invoker[[]telephony.CellInformation]) CellInfoCallback {
	return CellInfoCallback{Invoker: i}
}
func wrapCallState(i Invoker[telephony.CallStateInfo]) CallStateCallback {
	return CallStateCallback{Invoker: i}
}
func wrapSimState(i Invoker[telephony.SimStateData]) SimStateCallback {
	return SimStateCallback{Invoker: i}
}
func wrapDataConnection(i Invoker[telephony.DataConnectionStateInfo]) DataConnectionCallback {
	return DataConnectionCallback{Invoker: i}
}
func wrapDataFlow(i Invoker[telephony.DataFlowType]) DataFlowCallback {
	return DataFlowCallback{Invoker: i}
}
func wrapAccountChange(i Invoker[struct{}]) AccountChangeCallback {
	return AccountChangeCallback{Invoker: i}
}

// OnNetworkStateChange subscribes fn to network state on the default slot.
func OnNetworkStateChange(fn func(telephony.NetworkState)) (*Func[telephony.NetworkState], error) {
	return OnNetworkStateChangeWithOptions(defaultOptions(), fn)
}

// OnNetworkStateChangeWithOptions subscribes fn to network state on opts.SlotID.
func OnNetworkStateChangeWithOptions(opts Options, fn func(telephony.NetworkState)) (*Func[telephony.NetworkState], error) {
	return subscribe(telephony.EventNetworkStateUpdate, opts, fn, wrapNetworkState)
}

// OffNetworkStateChange removes handle, or all network state listeners if nil.
func OffNetworkStateChange(handle *Func[telephony.NetworkState]) error {
	return unsubscribe(telephony.EventNetworkStateUpdate, handle, wrapNetworkState)
}

// OnSignalInfoChange subscribes fn to signal information on the default slot.
func OnSignalInfoChange(fn func([]telephony.SignalInformation)) (*Func[[]telephony.SignalInformation], error) {
	return OnSignalInfoChangeWithOptions(defaultOptions(), fn)
}

// OnSignalInfoChangeWithOptions subscribes fn to signal information on opts.SlotID.
func OnSignalInfoChangeWithOptions(opts Options, fn func([]telephony.SignalInformation)) (*Func[[]telephony.SignalInformation], error) {
	return subscribe(telephony.EventSignalStrengthsUpdate, opts, fn, wrapSignalInfo)
}

// OffSignalInfoChange removes handle, or all signal listeners if nil.
func OffSignalInfoChange(handle *Func[[]telephony.SignalInformation]) error {
	return unsubscribe(telephony.EventSignalStrengthsUpdate, handle, wrapSignalInfo)
}

// OnCellInfoChange subscribes fn to cell information on the default slot.
func OnCellInfoChange(fn func([]telephony.CellInformation)) (*Func[[]telephony.CellInformation], error) {
	return OnCellInfoChangeWithOptions(defaultOptions(), fn)
}

// OnCellInfoChangeWithOptions subscribes fn to cell information on opts.SlotID.
func OnCellInfoChangeWithOptions(opts Options, fn func([]telephony.CellInformation)) (*Func[[]telephony.CellInformation], error) {
	return subscribe(telephony.EventCellInfoUpdate, opts, fn, wrapCellInfo)
}

// OffCellInfoChange removes handle, or all cell listeners if nil.
func OffCellInfoChange(handle *Func[[]telephony.CellInformation]) error {
	return unsubscribe(telephony.EventCellInfoUpdate, handle, wrapCellInfo)
}

// OnCallStateChange subscribes fn to call state on the default slot.
func OnCallStateChange(fn func(telephony.CallStateInfo)) (*Func[telephony.CallStateInfo], error) {
	return OnCallStateChangeWithOptions(defaultOptions(), fn)
}

// OnCallStateChangeWithOptions subscribes fn to call state on opts.SlotID.
func OnCallStateChangeWithOptions(opts Options, fn func(telephony.CallStateInfo)) (*Func[telephony.CallStateInfo], error) {
	return subscribe(telephony.EventCallStateUpdate, opts, fn, wrapCallState)
}

// OffCallStateChange removes handle, or all call state listeners if nil.
func OffCallStateChange(handle *Func[telephony.CallStateInfo]) error {
	return unsubscribe(telephony.EventCallStateUpdate, handle, wrapCallState)
}

// OnSimStateChange subscribes fn to SIM state on the default slot.
func OnSimStateChange(fn func(telephony.SimStateData)) (*Func[telephony.SimStateData], error) {
	return OnSimStateChangeWithOptions(defaultOptions(), fn)
}

// OnSimStateChangeWithOptions subscribes fn to SIM state on opts.SlotID.
func OnSimStateChangeWithOptions(opts Options, fn func(telephony.SimStateData)) (*Func[telephony.SimStateData], error) {
	return subscribe(telephony.EventSimStateUpdate, opts, fn, wrapSimState)
}

// OffSimStateChange removes handle, or all SIM state listeners if nil.
func OffSimStateChange(handle *Func[telephony.SimStateData]) error {
	return unsubscribe(telephony.EventSimStateUpdate, handle, wrapSimState)
}

// OnCellularDataConnectionStateChange subscribes fn to data connection state
// on the default slot.
func OnCellularDataConnectionStateChange(fn func(telephony.DataConnectionStateInfo)) (*Func[telephony.DataConnectionStateInfo], error) {
	return OnCellularDataConnectionStateChangeWithOptions(defaultOptions(), fn)
}

// OnCellularDataConnectionStateChangeWithOptions subscribes fn to data
// connection state on opts.SlotID.
func OnCellularDataConnectionStateChangeWithOptions(opts Options, fn func(telephony.DataConnectionStateInfo)) (*Func[telephony.DataConnectionStateInfo], error) {
	return subscribe(telephony.EventDataConnectionUpdate, opts, fn, wrapDataConnection)
}

// OffCellularDataConnectionStateChange removes handle, or all data
// connection listeners if nil.
func OffCellularDataConnectionStateChange(handle *Func[telephony.DataConnectionStateInfo]) error {
	return unsubscribe(telephony.EventDataConnectionUpdate, handle, wrapDataConnection)
}

// OnCellularDataFlowChange subscribes fn to data flow on the default slot.
func OnCellularDataFlowChange(fn func(telephony.DataFlowType)) (*Func[telephony.DataFlowType], error) {
	return OnCellularDataFlowChangeWithOptions(defaultOptions(), fn)
}

// OnCellularDataFlowChangeWithOptions subscribes fn to data flow on opts.SlotID.
func OnCellularDataFlowChangeWithOptions(opts Options, fn func(telephony.DataFlowType)) (*Func[telephony.DataFlowType], error) {
	return subscribe(telephony.EventCellularDataFlowUpdate, opts, fn, wrapDataFlow)
}

// OffCellularDataFlowChange removes handle, or all data flow listeners if nil.
func OffCellularDataFlowChange(handle *Func[telephony.DataFlowType]) error {
	return unsubscribe(telephony.EventCellularDataFlowUpdate, handle, wrapDataFlow)
}

// OnIccAccountInfoChange subscribes fn to account changes. Account changes
// are not slot-scoped.
func OnIccAccountInfoChange(fn func()) (*Func[struct{}], error) {
	if fn == nil {
		return nil, telephony.NewBusinessError(telephony.CodeInvalidParameter)
	}
	return subscribe(telephony.EventIccAccountChange, defaultOptions(), func(struct{}) { fn() }, wrapAccountChange)
}

// OffIccAccountInfoChange removes handle, or all account listeners if nil.
func OffIccAccountInfoChange(handle *Func[struct{}]) error {
	return unsubscribe(telephony.EventIccAccountChange, handle, wrapAccountChange)
}
