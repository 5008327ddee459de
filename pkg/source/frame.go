package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Errors returned by frame handling.
var (
	ErrUnsupportedEvent = errors.New("source: unsupported event type")
	ErrMissingPayload   = errors.New("source: missing payload")
)

// Sink receives raw notifications. *observer.Registry
// implements Sink.
type Sink interface {
	OnCellularDataFlowUpdated(slotID, dataFlowType int32)
	OnIccAccountUpdated()
	OnSimStateUpdated(slotID, cardType, state, reason int32)
	OnSignalInfoUpdated(slotID int32, signals []telephony.RawSignalInformation)
	OnCellInfoUpdated(slotID int32, cells []telephony.RawCellInformation)
	OnCellularDataConnectStateUpdated(slotID, dataState, networkType int32)
	OnNetworkStateUpdated(slotID int32, state telephony.RawNetworkState)
	OnCallStateUpdated(slotID int32, state telephony.RawCallState)
}

// Frame is one raw notification. Only the fields for EventType are used.
type Frame struct {
	EventType telephony.EventType `cbor:"1,keyasint" yaml:"-"`
	SlotID    int32               `cbor:"2,keyasint" yaml:"slot"`

	// Offset is the time since the start of the recording.
	Offset time.Duration `cbor:"3,keyasint,omitempty" yaml:"offset,omitempty"`

	DataFlowType int32 `cbor:"10,keyasint,omitempty" yaml:"data_flow_type,omitempty"`

	CardType   int32 `cbor:"11,keyasint,omitempty" yaml:"card_type,omitempty"`
	SimState   int32 `cbor:"12,keyasint,omitempty" yaml:"sim_state,omitempty"`
	LockReason int32 `cbor:"13,keyasint,omitempty" yaml:"lock_reason,omitempty"`

	Signals []telephony.RawSignalInformation `cbor:"14,keyasint,omitempty" yaml:"signals,omitempty"`
	Cells   []telephony.RawCellInformation   `cbor:"15,keyasint,omitempty" yaml:"cells,omitempty"`

	DataState   int32 `cbor:"16,keyasint,omitempty" yaml:"data_state,omitempty"`
	NetworkType int32 `cbor:"17,keyasint,omitempty" yaml:"network_type,omitempty"`

	Network *telephony.RawNetworkState `cbor:"18,keyasint,omitempty" yaml:"network,omitempty"`
	Call    *telephony.RawCallState    `cbor:"19,keyasint,omitempty" yaml:"call,omitempty"`
}

// Validate checks that the frame can be delivered.
func (f Frame) Validate() error {
	if !f.EventType.Dispatchable() {
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, f.EventType)
	}
	switch f.EventType {
	case telephony.EventNetworkStateUpdate:
		if f.Network == nil {
			return fmt.Errorf("%w: network state", ErrMissingPayload)
		}
	case telephony.EventCallStateUpdate:
		if f.Call == nil {
			return fmt.Errorf("%w: call state", ErrMissingPayload)
		}
	}
	return nil
}

// Deliver hands the frame to the matching Sink entry point.
func (f Frame) Deliver(sink Sink) error {
	if err := f.Validate(); err != nil {
		return err
	}
	switch f.EventType {
	case telephony.EventCellularDataFlowUpdate:
		sink.OnCellularDataFlowUpdated(f.SlotID, f.DataFlowType)
	case telephony.EventIccAccountChange:
		sink.OnIccAccountUpdated()
	case telephony.EventSimStateUpdate:
		sink.OnSimStateUpdated(f.SlotID, f.CardType, f.SimState, f.LockReason)
	case telephony.EventSignalStrengthsUpdate:
		sink.OnSignalInfoUpdated(f.SlotID, f.Signals)
	case telephony.EventCellInfoUpdate:
		sink.OnCellInfoUpdated(f.SlotID, f.Cells)
	case telephony.EventDataConnectionUpdate:
		sink.OnCellularDataConnectStateUpdated(f.SlotID, f.DataState, f.NetworkType)
	case telephony.EventNetworkStateUpdate:
		sink.OnNetworkStateUpdated(f.SlotID, *f.Network)
	case telephony.EventCallStateUpdate:
		sink.OnCallStateUpdated(f.SlotID, *f.Call)
	}
	return nil
}

// String returns a compact description of the frame.
func (f Frame) String() string {
	return fmt.Sprintf("%s slot=%d offset=%s", f.EventType, f.SlotID, f.Offset)
}
