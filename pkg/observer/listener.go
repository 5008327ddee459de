package observer

import (
	"fmt"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Listener is one subscription. The (EventType, SlotID, Callback) triple is
// its identity; at most one equal Listener is stored.
type Listener struct {
	EventType telephony.EventType
	SlotID    int32
	Callback  Callback
}

// Same reports whether l and o are the same subscription.
func (l Listener) Same(o Listener) bool {
	return l.EventType == o.EventType && l.SlotID == o.SlotID && SameCallback(l.Callback, o.Callback)
}

// String returns a compact representation for display.
func (l Listener) String() string {
	variant := "<nil>"
	if l.Callback != nil {
		variant = l.Callback.Variant()
	}
	return fmt.Sprintf("%s slot=%d callback=%s", l.EventType, l.SlotID, variant)
}

// Pair identifies a (category, slot) activation on the gateway.
type Pair struct {
	EventType telephony.EventType
	SlotID    int32
}

// String returns the pair as "CATEGORY/slot".
func (p Pair) String() string {
	return fmt.Sprintf("%s/%d", p.EventType, p.SlotID)
}
