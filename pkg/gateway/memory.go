package gateway

import (
	"maps"
	"slices"
	"sync"
)

// Call records one StateManager invocation.
type Call struct {
	Remove   bool
	SlotID   int32
	Mask     uint32
	IsUpdate bool
	Status   int32
}

// MemoryStateManager is an in-process StateManager. It keeps the active
// mask per slot and returns injected failure statuses on request.
type MemoryStateManager struct {
	mu sync.Mutex

	// active holds the OR of active masks keyed by slot.
	active map[int32]uint32

	// addFailures and removeFailures map a mask to the status to return.
	addFailures    map[uint32]int32
	removeFailures map[uint32]int32

	calls []Call
}

// NewMemoryStateManager creates an empty state manager.
func NewMemoryStateManager() *MemoryStateManager {
	return &MemoryStateManager{
		active:         make(map[int32]uint32),
		addFailures:    make(map[uint32]int32),
		removeFailures: make(map[uint32]int32),
	}
}

// AddStateObserver marks mask active on slotID unless a failure is injected.
func (m *MemoryStateManager) AddStateObserver(slotID int32, mask uint32, isUpdate bool) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, fail := m.addFailures[mask]
	if !fail {
		status = StatusSuccess
		m.active[slotID] |= mask
	}
	m.calls = append(m.calls, Call{SlotID: slotID, Mask: mask, IsUpdate: isUpdate, Status: status})
	return status
}

// RemoveStateObserver clears mask on slotID unless a failure is injected.
func (m *MemoryStateManager) RemoveStateObserver(slotID int32, mask uint32) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, fail := m.removeFailures[mask]
	if !fail {
		status = StatusSuccess
		m.active[slotID] &^= mask
		if m.active[slotID] == 0 {
			delete(m.active, slotID)
		}
	}
	m.calls = append(m.calls, Call{Remove: true, SlotID: slotID, Mask: mask, Status: status})
	return status
}

// FailAdd makes AddStateObserver return status for mask.
// StatusSuccess clears the injection.
func (m *MemoryStateManager) FailAdd(mask uint32, status int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setFailure(m.addFailures, mask, status)
}

// FailRemove makes RemoveStateObserver return status for mask.
// StatusSuccess clears the injection.
func (m *MemoryStateManager) FailRemove(mask uint32, status int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setFailure(m.removeFailures, mask, status)
}

// ClearFailures removes every injected failure.
func (m *MemoryStateManager) ClearFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.addFailures)
	clear(m.removeFailures)
}

// ActiveMask returns the active mask for slotID.
func (m *MemoryStateManager) ActiveMask(slotID int32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[slotID]
}

// ActiveSlots returns the slots with a non-zero mask, sorted.
func (m *MemoryStateManager) ActiveSlots() []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.active))
}

// Calls returns a copy of the recorded invocations.
func (m *MemoryStateManager) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

func setFailure(failures map[uint32]int32, mask uint32, status int32) {
	if status == StatusSuccess {
		delete(failures, mask)
		return
	}
	failures[mask] = status
}

var _ StateManager = (*MemoryStateManager)(nil)
