package observer

import (
	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// fanOut invokes every listener of et on slotID with payload. Account
// change notifications carry no slot and reach every account listener.
func fanOut[T any](r *Registry, et telephony.EventType, slotID int32, payload T) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.listeners) == 0 {
		r.logger.Debug("dispatch: no listeners",
			"event", et.String(),
			"slotID", slotID)
		return
	}

	anySlot := et == telephony.EventIccAccountChange
	start := r.now()
	invoked, skipped := 0, 0
	for _, l := range r.listeners {
		if l.EventType != et || (!anySlot && l.SlotID != slotID) {
			continue
		}
		inv, ok := invokerFor[T](et, l.Callback)
		if !ok {
			skipped++
			variant := "<nil>"
			if l.Callback != nil {
				variant = l.Callback.Variant()
			}
			r.logger.Error("dispatch: callback variant does not match category",
				"event", et.String(),
				"slotID", l.SlotID,
				"variant", variant)
			r.emitError(et, l.SlotID, "dispatch", "callback variant "+variant+" does not match category", telephony.CodeSystemError)
			continue
		}
		inv.Invoke(payload)
		invoked++
	}

	if anySlot {
		slotID = log.AllSlots
	}
	r.emit(log.Event{
		Category:  log.CategoryDispatch,
		EventType: et,
		SlotID:    slotID,
		Dispatch: &log.DispatchEvent{
			Invoked:  invoked,
			Skipped:  skipped,
			Duration: r.now().Sub(start),
		},
	})
}

func invokerFor[T any](et telephony.EventType, cb Callback) (Invoker[T], bool) {
	if cb == nil || cb.EventType() != et {
		return nil, false
	}
	inv, ok := cb.invoker().(Invoker[T])
	if !ok || isNil(inv) {
		return nil, false
	}
	return inv, true
}

// OnCellularDataFlowUpdated delivers a data flow change on slotID.
func (r *Registry) OnCellularDataFlowUpdated(slotID, dataFlowType int32) {
	fanOut(r, telephony.EventCellularDataFlowUpdate, slotID, telephony.DataFlowTypeFromCode(dataFlowType))
}

// OnIccAccountUpdated delivers an account change to every account listener.
func (r *Registry) OnIccAccountUpdated() {
	fanOut(r, telephony.EventIccAccountChange, telephony.DefaultSlotID, struct{}{})
}

// OnSimStateUpdated delivers a SIM state change on slotID.
func (r *Registry) OnSimStateUpdated(slotID, cardType, state, reason int32) {
	fanOut(r, telephony.EventSimStateUpdate, slotID, telephony.NewSimStateData(cardType, state, reason))
}

// OnSignalInfoUpdated delivers a signal list on slotID. Every listener
// receives the same slice and must not modify it.
func (r *Registry) OnSignalInfoUpdated(slotID int32, signals []telephony.RawSignalInformation) {
	fanOut(r, telephony.EventSignalStrengthsUpdate, slotID, telephony.NormalizeSignals(signals))
}

// OnCellInfoUpdated delivers a cell list on slotID. Every listener receives
// the same slice and must not modify it.
func (r *Registry) OnCellInfoUpdated(slotID int32, cells []telephony.RawCellInformation) {
	fanOut(r, telephony.EventCellInfoUpdate, slotID, telephony.NormalizeCells(cells))
}

// OnCellularDataConnectStateUpdated delivers a data connection change on slotID.
func (r *Registry) OnCellularDataConnectStateUpdated(slotID, dataState, networkType int32) {
	fanOut(r, telephony.EventDataConnectionUpdate, slotID, telephony.NewDataConnectionStateInfo(dataState, networkType))
}

// OnNetworkStateUpdated delivers a network registration change on slotID.
func (r *Registry) OnNetworkStateUpdated(slotID int32, state telephony.RawNetworkState) {
	fanOut(r, telephony.EventNetworkStateUpdate, slotID, state.Normalize())
}

// OnCallStateUpdated delivers a call state change on slotID.
func (r *Registry) OnCallStateUpdated(slotID int32, state telephony.RawCallState) {
	fanOut(r, telephony.EventCallStateUpdate, slotID, state.Normalize())
}

// Package-level entry points deliver to the default registry.

// OnCellularDataFlowUpdated delivers a data flow change to Default().
func OnCellularDataFlowUpdated(slotID, dataFlowType int32) {
	Default().OnCellularDataFlowUpdated(slotID, dataFlowType)
}

// OnIccAccountUpdated delivers an account change to Default().
func OnIccAccountUpdated() {
	Default().OnIccAccountUpdated()
}

// OnSimStateUpdated delivers a SIM state change to Default().
func OnSimStateUpdated(slotID, cardType, state, reason int32) {
	Default().OnSimStateUpdated(slotID, cardType, state, reason)
}

// OnSignalInfoUpdated delivers a signal list to Default().
func OnSignalInfoUpdated(slotID int32, signals []telephony.RawSignalInformation) {
	Default().OnSignalInfoUpdated(slotID, signals)
}

// OnCellInfoUpdated delivers a cell list to Default().
func OnCellInfoUpdated(slotID int32, cells []telephony.RawCellInformation) {
	Default().OnCellInfoUpdated(slotID, cells)
}

// OnCellularDataConnectStateUpdated delivers a data connection change to Default().
func OnCellularDataConnectStateUpdated(slotID, dataState, networkType int32) {
	Default().OnCellularDataConnectStateUpdated(slotID, dataState, networkType)
}

// OnNetworkStateUpdated delivers a network registration change to Default().
func OnNetworkStateUpdated(slotID int32, state telephony.RawNetworkState) {
	Default().OnNetworkStateUpdated(slotID, state)
}

// OnCallStateUpdated delivers a call state change to Default().
func OnCallStateUpdated(slotID int32, state telephony.RawCallState) {
	Default().OnCallStateUpdated(slotID, state)
}
