package gateway

import (
	"log/slog"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// DefaultSlotCount is the number of physical SIM slots assumed by
// DefaultConfig.
const DefaultSlotCount int32 = 2

// StateManager is the port to the telephony state service. Both methods
// return internal status codes; see ConvertError.
type StateManager interface {
	// AddStateObserver starts notifications for mask on slotID. isUpdate asks
	// the service to deliver the current state immediately.
	AddStateObserver(slotID int32, mask uint32, isUpdate bool) int32

	// RemoveStateObserver stops notifications for mask on slotID.
	RemoveStateObserver(slotID int32, mask uint32) int32
}

// Config configures a SlotGateway.
type Config struct {
	// SlotCount is the number of physical SIM slots.
	SlotCount int32

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with DefaultSlotCount slots.
func DefaultConfig() Config {
	return Config{SlotCount: DefaultSlotCount}
}

// SlotGateway validates slots and forwards activation to a StateManager.
type SlotGateway struct {
	manager   StateManager
	slotCount int32
	logger    *slog.Logger
}

// NewSlotGateway creates a gateway over manager.
func NewSlotGateway(manager StateManager, config Config) *SlotGateway {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SlotGateway{
		manager:   manager,
		slotCount: config.SlotCount,
		logger:    logger,
	}
}

// SlotCount returns the configured number of physical slots.
func (g *SlotGateway) SlotCount() int32 {
	return g.slotCount
}

// IsValid reports whether slotID is legal for eventType.
func (g *SlotGateway) IsValid(slotID int32, eventType telephony.EventType) bool {
	if g.slotCount <= 0 || !eventType.Dispatchable() {
		return false
	}
	lowest := telephony.DefaultSlotID
	if eventType == telephony.EventCallStateUpdate {
		lowest = -1
	}
	return slotID >= lowest && slotID < g.slotCount+1
}

// Activate asks the state service to start notifications. Call state
// subscribers receive the current state right away.
func (g *SlotGateway) Activate(slotID int32, eventType telephony.EventType) error {
	isUpdate := eventType == telephony.EventCallStateUpdate
	status := g.manager.AddStateObserver(slotID, eventType.Mask(), isUpdate)
	g.logger.Debug("Activate: state observer added",
		"event", eventType.String(),
		"slotID", slotID,
		"status", StatusName(status))
	return ConvertError(status)
}

// Deactivate asks the state service to stop notifications.
func (g *SlotGateway) Deactivate(slotID int32, eventType telephony.EventType) error {
	status := g.manager.RemoveStateObserver(slotID, eventType.Mask())
	g.logger.Debug("Deactivate: state observer removed",
		"event", eventType.String(),
		"slotID", slotID,
		"status", StatusName(status))
	return ConvertError(status)
}
