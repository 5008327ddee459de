package log

import (
	"strings"
	"time"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Event represents one registry trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RegistryID identifies the registry instance (UUID).
	RegistryID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// EventType is the notification category the event concerns.
	EventType telephony.EventType `cbor:"4,keyasint"`

	// SlotID is the slot the event concerns. AllSlots when the event is not
	// slot-scoped (unregister-all, account change dispatch).
	SlotID int32 `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Subscription *SubscriptionEvent `cbor:"10,keyasint,omitempty"`
	Gateway      *GatewayEvent      `cbor:"11,keyasint,omitempty"`
	Dispatch     *DispatchEvent     `cbor:"12,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"13,keyasint,omitempty"`
}

// AllSlots marks an event that is not scoped to a single slot.
const AllSlots int32 = -2

// Category classifies the event type.
type Category uint8

const (
	// CategorySubscription indicates a listener change.
	CategorySubscription Category = 0
	// CategoryGateway indicates an activation gateway call.
	CategoryGateway Category = 1
	// CategoryDispatch indicates a notification fan-out.
	CategoryDispatch Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySubscription:
		return "SUBSCRIPTION"
	case CategoryGateway:
		return "GATEWAY"
	case CategoryDispatch:
		return "DISPATCH"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(s) {
	case "subscription", "sub":
		return CategorySubscription, true
	case "gateway", "gw":
		return CategoryGateway, true
	case "dispatch":
		return CategoryDispatch, true
	case "error":
		return CategoryError, true
	default:
		return 0, false
	}
}

// SubscriptionAction is what happened to a listener.
type SubscriptionAction uint8

const (
	// SubscriptionAdded indicates a new listener was stored.
	SubscriptionAdded SubscriptionAction = 0
	// SubscriptionDuplicate indicates the listener was already stored.
	SubscriptionDuplicate SubscriptionAction = 1
	// SubscriptionRemoved indicates listeners were removed.
	SubscriptionRemoved SubscriptionAction = 2
)

// String returns the action name.
func (a SubscriptionAction) String() string {
	switch a {
	case SubscriptionAdded:
		return "ADDED"
	case SubscriptionDuplicate:
		return "DUPLICATE"
	case SubscriptionRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionEvent captures a listener change.
type SubscriptionEvent struct {
	// Action is what happened.
	Action SubscriptionAction `cbor:"1,keyasint"`

	// Count is the number of listeners affected.
	Count int `cbor:"2,keyasint"`

	// Remaining is the number of listeners for the (category, slot) pair
	// after the change.
	Remaining int `cbor:"3,keyasint"`

	// Variant names the callback variant.
	Variant string `cbor:"4,keyasint,omitempty"`
}

// GatewayAction is the gateway call that was made.
type GatewayAction uint8

const (
	// GatewayActivate indicates the source was asked to start producing events.
	GatewayActivate GatewayAction = 0
	// GatewayDeactivate indicates the source was asked to stop.
	GatewayDeactivate GatewayAction = 1
	// GatewayRejected indicates the validity check refused the slot.
	GatewayRejected GatewayAction = 2
)

// String returns the action name.
func (a GatewayAction) String() string {
	switch a {
	case GatewayActivate:
		return "ACTIVATE"
	case GatewayDeactivate:
		return "DEACTIVATE"
	case GatewayRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// GatewayEvent captures one activation gateway call.
type GatewayEvent struct {
	// Action is the call made.
	Action GatewayAction `cbor:"1,keyasint"`

	// Mask is the bit flag passed to the gateway.
	Mask uint32 `cbor:"2,keyasint"`

	// Failed indicates the gateway reported failure.
	Failed bool `cbor:"3,keyasint,omitempty"`

	// Code is the failure code (if Failed).
	Code int32 `cbor:"4,keyasint,omitempty"`

	// Message is the failure message (if Failed).
	Message string `cbor:"5,keyasint,omitempty"`
}

// DispatchEvent captures a notification fan-out.
type DispatchEvent struct {
	// Invoked is the number of callbacks invoked.
	Invoked int `cbor:"1,keyasint"`

	// Skipped is the number of matching listeners skipped because their
	// callback variant did not belong to the category.
	Skipped int `cbor:"2,keyasint,omitempty"`

	// Duration is the time taken to invoke all callbacks.
	Duration time.Duration `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures an error.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Code is the error code (if applicable).
	Code *int32 `cbor:"2,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// Kind returns a short name for the event's payload type.
func (e Event) Kind() string {
	switch {
	case e.Subscription != nil:
		return "subscription:" + strings.ToLower(e.Subscription.Action.String())
	case e.Gateway != nil:
		return "gateway:" + strings.ToLower(e.Gateway.Action.String())
	case e.Dispatch != nil:
		return "dispatch"
	case e.Error != nil:
		return "error"
	default:
		return "unknown"
	}
}
