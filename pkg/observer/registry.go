package observer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Gateway toggles the notification source for (slot, category) pairs.
// Registry calls Activate and Deactivate while holding its write lock, so
// implementations must return quickly. Failures should be
// *telephony.BusinessError values; they are returned to the caller as is.
type Gateway interface {
	// IsValid reports whether the slot is legal for the category.
	IsValid(slotID int32, eventType telephony.EventType) bool

	// Activate starts notifications for the pair.
	Activate(slotID int32, eventType telephony.EventType) error

	// Deactivate stops notifications for the pair.
	Deactivate(slotID int32, eventType telephony.EventType) error
}

// Config configures a Registry.
type Config struct {
	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// TraceLogger receives registry trace events.
	// If nil, tracing is disabled.
	TraceLogger log.Logger

	// ID identifies the registry in trace events. A random UUID is used
	// when empty.
	ID string
}

// Registry stores listeners and fans notifications out to them.
type Registry struct {
	mu sync.RWMutex

	gateway   Gateway
	listeners []Listener

	id     string
	logger *slog.Logger
	trace  log.Logger
	now    func() time.Time
}

// NewRegistry creates a registry with default configuration.
func NewRegistry(gw Gateway) *Registry {
	return NewRegistryWithConfig(gw, Config{})
}

// NewRegistryWithConfig creates a registry with custom configuration.
// It panics if gw is nil.
func NewRegistryWithConfig(gw Gateway, config Config) *Registry {
	if gw == nil {
		panic("observer: nil Gateway")
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.TraceLogger == nil {
		config.TraceLogger = log.NoopLogger{}
	}
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	return &Registry{
		gateway: gw,
		id:      config.ID,
		logger:  config.Logger,
		trace:   config.TraceLogger,
		now:     time.Now,
	}
}

// ID returns the registry identifier stamped on trace events.
func (r *Registry) ID() string {
	return r.id
}

// Register stores l and activates its (category, slot) pair if it is the
// first listener for that pair.
//
// It returns an invalid-parameter *telephony.BusinessError if the callback
// cannot serve the category or the gateway rejects the slot, and the
// gateway's error if activation fails. In both cases nothing is stored.
// A callback whose invoker is not comparable cannot serve any category.
// Registering a listener that is already stored succeeds without effect.
func (r *Registry) Register(l Listener) error {
	if !validCallback(l.EventType, l.Callback) {
		r.logger.Debug("Register: callback does not serve category",
			"event", l.EventType.String(),
			"slotID", l.SlotID)
		r.emitError(l.EventType, l.SlotID, "register", "callback does not serve category", telephony.CodeInvalidParameter)
		return telephony.NewBusinessError(telephony.CodeInvalidParameter)
	}
	if !r.gateway.IsValid(l.SlotID, l.EventType) {
		r.logger.Debug("Register: invalid slot",
			"event", l.EventType.String(),
			"slotID", l.SlotID)
		r.emit(log.Event{
			Category:  log.CategoryGateway,
			EventType: l.EventType,
			SlotID:    l.SlotID,
			Gateway: &log.GatewayEvent{
				Action:  log.GatewayRejected,
				Mask:    l.EventType.Mask(),
				Failed:  true,
				Code:    telephony.CodeInvalidParameter,
				Message: telephony.MessageForCode(telephony.CodeInvalidParameter),
			},
		})
		return telephony.NewBusinessError(telephony.CodeInvalidParameter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	first := true
	for _, existing := range r.listeners {
		if existing.Same(l) {
			r.emitSubscription(l, log.SubscriptionDuplicate, 0)
			return nil
		}
		if existing.EventType == l.EventType && existing.SlotID == l.SlotID {
			first = false
		}
	}

	if first {
		if err := r.gateway.Activate(l.SlotID, l.EventType); err != nil {
			r.emitGateway(log.GatewayActivate, l.EventType, l.SlotID, err)
			r.logger.Warn("Register: activation failed",
				"event", l.EventType.String(),
				"slotID", l.SlotID,
				"error", err)
			return gatewayError("activate", l.EventType, l.SlotID, err)
		}
		r.emitGateway(log.GatewayActivate, l.EventType, l.SlotID, nil)
	}

	r.listeners = append(r.listeners, l)
	r.emitSubscription(l, log.SubscriptionAdded, 1)
	r.logger.Debug("Register: listener added",
		"event", l.EventType.String(),
		"slotID", l.SlotID,
		"variant", l.Callback.Variant(),
		"total", len(r.listeners))
	return nil
}

// Unregister removes listeners of category et. A nil cb removes every
// listener of the category regardless of slot; otherwise only listeners
// whose callback is the same as cb are removed.
//
// Each slot left without listeners is deactivated on the gateway. Removal
// always takes effect locally; the first deactivation failure is returned
// after every affected slot has been attempted.
func (r *Registry) Unregister(et telephony.EventType, cb Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.listeners) == 0 {
		return nil
	}

	var slots []int32
	removed := 0
	kept := r.listeners[:0]
	for _, l := range r.listeners {
		if l.EventType == et && (cb == nil || SameCallback(l.Callback, cb)) {
			removed++
			if !slices.Contains(slots, l.SlotID) {
				slots = append(slots, l.SlotID)
			}
			continue
		}
		kept = append(kept, l)
	}
	clear(r.listeners[len(kept):])
	r.listeners = kept

	if removed == 0 {
		return nil
	}

	slotID, remaining := log.AllSlots, r.countCategoryLocked(et)
	if len(slots) == 1 {
		slotID, remaining = slots[0], r.countLocked(et, slots[0])
	}
	r.emit(log.Event{
		Category:  log.CategorySubscription,
		EventType: et,
		SlotID:    slotID,
		Subscription: &log.SubscriptionEvent{
			Action:    log.SubscriptionRemoved,
			Count:     removed,
			Remaining: remaining,
		},
	})
	r.logger.Debug("Unregister: listeners removed",
		"event", et.String(),
		"removed", removed,
		"slots", len(slots))

	var firstErr error
	for _, slot := range slots {
		if r.countLocked(et, slot) > 0 {
			continue
		}
		if err := r.gateway.Deactivate(slot, et); err != nil {
			r.emitGateway(log.GatewayDeactivate, et, slot, err)
			r.logger.Warn("Unregister: deactivation failed",
				"event", et.String(),
				"slotID", slot,
				"error", err)
			if firstErr == nil {
				firstErr = gatewayError("deactivate", et, slot, err)
			}
			continue
		}
		r.emitGateway(log.GatewayDeactivate, et, slot, nil)
	}
	return firstErr
}

// Len returns the number of stored listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Listeners returns a snapshot of the stored listeners.
func (r *Registry) Listeners() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Listener(nil), r.listeners...)
}

// Count returns the number of listeners for (et, slotID). AllSlots counts
// the category across every slot.
func (r *Registry) Count(et telephony.EventType, slotID int32) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if slotID == log.AllSlots {
		return r.countCategoryLocked(et)
	}
	return r.countLocked(et, slotID)
}

// ActivePairs returns the (category, slot) pairs that currently have at
// least one listener, in first-registration order. These are the pairs the
// gateway has been told to activate.
func (r *Registry) ActivePairs() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pairs []Pair
	seen := make(map[Pair]struct{})
	for _, l := range r.listeners {
		p := Pair{EventType: l.EventType, SlotID: l.SlotID}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs
}

// countLocked counts listeners for exactly (et, slotID). Caller must hold r.mu.
func (r *Registry) countLocked(et telephony.EventType, slotID int32) int {
	n := 0
	for _, l := range r.listeners {
		if l.EventType == et && l.SlotID == slotID {
			n++
		}
	}
	return n
}

// countCategoryLocked counts listeners of et on any slot. Caller must hold r.mu.
func (r *Registry) countCategoryLocked(et telephony.EventType) int {
	n := 0
	for _, l := range r.listeners {
		if l.EventType == et {
			n++
		}
	}
	return n
}

func (r *Registry) emit(event log.Event) {
	event.Timestamp = r.now()
	event.RegistryID = r.id
	r.trace.Log(event)
}

func (r *Registry) emitSubscription(l Listener, action log.SubscriptionAction, count int) {
	r.emit(log.Event{
		Category:  log.CategorySubscription,
		EventType: l.EventType,
		SlotID:    l.SlotID,
		Subscription: &log.SubscriptionEvent{
			Action:    action,
			Count:     count,
			Remaining: r.countLocked(l.EventType, l.SlotID),
			Variant:   l.Callback.Variant(),
		},
	})
}

func (r *Registry) emitGateway(action log.GatewayAction, et telephony.EventType, slotID int32, err error) {
	ev := &log.GatewayEvent{Action: action, Mask: et.Mask()}
	if err != nil {
		ev.Failed = true
		ev.Message = err.Error()
		var be *telephony.BusinessError
		if errors.As(err, &be) {
			ev.Code = be.Code
			ev.Message = be.Message
		}
	}
	r.emit(log.Event{
		Category:  log.CategoryGateway,
		EventType: et,
		SlotID:    slotID,
		Gateway:   ev,
	})
}

func (r *Registry) emitError(et telephony.EventType, slotID int32, context, msg string, code int32) {
	r.emit(log.Event{
		Category:  log.CategoryError,
		EventType: et,
		SlotID:    slotID,
		Error: &log.ErrorEventData{
			Message: msg,
			Code:    &code,
			Context: context,
		},
	})
}

// gatewayError returns business errors unchanged and wraps anything else.
func gatewayError(op string, et telephony.EventType, slotID int32, err error) error {
	var be *telephony.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return fmt.Errorf("%s %s on slot %d: %w", op, et, slotID, err)
}
