package telephony

import (
	"fmt"
	"strings"
)

// DefaultSlotID is the slot used when a subscriber does not name one.
const DefaultSlotID int32 = 0

// EventType identifies a notification category. The numeric value is the
// bit flag handed to the activation gateway.
type EventType uint32

const (
	EventNone                        EventType = 0x00000000
	EventNetworkStateUpdate          EventType = 0x00000001
	EventCallStateUpdate             EventType = 0x00000004
	EventCellInfoUpdate              EventType = 0x00000008
	EventSignalStrengthsUpdate       EventType = 0x00000010
	EventSimStateUpdate              EventType = 0x00000020
	EventDataConnectionUpdate        EventType = 0x00000040
	EventCellularDataFlowUpdate      EventType = 0x00000080
	EventCfuIndicatorUpdate          EventType = 0x00000100
	EventVoiceMailMsgIndicatorUpdate EventType = 0x00000200
	EventIccAccountChange            EventType = 0x00000400
)

// AllEventTypes lists every category except EventNone, in bit order.
var AllEventTypes = []EventType{
	EventNetworkStateUpdate,
	EventCallStateUpdate,
	EventCellInfoUpdate,
	EventSignalStrengthsUpdate,
	EventSimStateUpdate,
	EventDataConnectionUpdate,
	EventCellularDataFlowUpdate,
	EventCfuIndicatorUpdate,
	EventVoiceMailMsgIndicatorUpdate,
	EventIccAccountChange,
}

// Mask returns the bit flag for the gateway.
func (e EventType) Mask() uint32 {
	return uint32(e)
}

// Dispatchable reports whether notifications of this category are routed
// to subscribers. The reserved indicator categories are not.
func (e EventType) Dispatchable() bool {
	switch e {
	case EventNetworkStateUpdate, EventCallStateUpdate, EventCellInfoUpdate,
		EventSignalStrengthsUpdate, EventSimStateUpdate, EventDataConnectionUpdate,
		EventCellularDataFlowUpdate, EventIccAccountChange:
		return true
	default:
		return false
	}
}

// String returns the category name.
func (e EventType) String() string {
	switch e {
	case EventNone:
		return "NONE"
	case EventNetworkStateUpdate:
		return "NETWORK_STATE"
	case EventCallStateUpdate:
		return "CALL_STATE"
	case EventCellInfoUpdate:
		return "CELL_INFO"
	case EventSignalStrengthsUpdate:
		return "SIGNAL_INFO"
	case EventSimStateUpdate:
		return "SIM_STATE"
	case EventDataConnectionUpdate:
		return "DATA_CONNECTION"
	case EventCellularDataFlowUpdate:
		return "DATA_FLOW"
	case EventCfuIndicatorUpdate:
		return "CFU_INDICATOR"
	case EventVoiceMailMsgIndicatorUpdate:
		return "VOICEMAIL_INDICATOR"
	case EventIccAccountChange:
		return "ICC_ACCOUNT"
	default:
		return fmt.Sprintf("EVENT(0x%x)", uint32(e))
	}
}

// ParseEventType parses a category name as produced by String. Matching is
// case-insensitive and accepts '-' in place of '_'.
func ParseEventType(s string) (EventType, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, e := range AllEventTypes {
		if e.String() == name {
			return e, nil
		}
	}
	return EventNone, fmt.Errorf("unknown event type %q", s)
}
