package observer

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// ---------------------------------------------------------------------------
// stubGateway
// ---------------------------------------------------------------------------

type stubGateway struct{ mock.Mock }

func (g *stubGateway) IsValid(slotID int32, et telephony.EventType) bool {
	return g.Called(slotID, et).Bool(0)
}
func (g *stubGateway) Activate(slotID int32, et telephony.EventType) error {
	return g.Called(slotID, et).Error(0)
}
func (g *stubGateway) Deactivate(slotID int32, et telephony.EventType) error {
	return g.Called(slotID, et).Error(0)
}

// permissive registers catch-all expectations after any specific ones the
// test has already set.
func (g *stubGateway) permissive() *stubGateway {
	g.On("IsValid", mock.Anything, mock.Anything).Return(true).Maybe()
	g.On("Activate", mock.Anything, mock.Anything).Return(nil).Maybe()
	g.On("Deactivate", mock.Anything, mock.Anything).Return(nil).Maybe()
	return g
}

// ---------------------------------------------------------------------------
// captureTrace
// ---------------------------------------------------------------------------

type captureTrace struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureTrace) Log(event log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureTrace) kinds() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]string, 0, len(c.events))
	for _, e := range c.events {
		kinds = append(kinds, e.Kind())
	}
	return kinds
}

func simListener(slot int32, fn *Func[telephony.SimStateData]) Listener {
	return Listener{
		EventType: telephony.EventSimStateUpdate,
		SlotID:    slot,
		Callback:  SimStateCallback{Invoker: fn},
	}
}

func noopSim() *Func[telephony.SimStateData] {
	return NewFunc(func(telephony.SimStateData) {})
}

func TestRegisterIsIdempotent(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)
	fn := noopSim()

	require.NoError(t, r.Register(simListener(0, fn)))
	require.NoError(t, r.Register(simListener(0, fn)))

	assert.Equal(t, 1, r.Len())
	gw.AssertNumberOfCalls(t, "Activate", 1)
}

func TestRegisterActivatesOnFirstListenerOnly(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)

	require.NoError(t, r.Register(simListener(0, noopSim())))
	require.NoError(t, r.Register(simListener(0, noopSim())))

	gw.AssertNumberOfCalls(t, "Activate", 1)
	gw.AssertCalled(t, "Activate", int32(0), telephony.EventSimStateUpdate)
	assert.Equal(t, 2, r.Count(telephony.EventSimStateUpdate, 0))

	// A new slot is a new pair.
	require.NoError(t, r.Register(simListener(1, noopSim())))
	gw.AssertNumberOfCalls(t, "Activate", 2)
	gw.AssertCalled(t, "Activate", int32(1), telephony.EventSimStateUpdate)
}

func TestUnregisterDeactivatesOnLastListenerOnly(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)

	fns := []*Func[telephony.SimStateData]{noopSim(), noopSim(), noopSim()}
	for _, fn := range fns {
		require.NoError(t, r.Register(simListener(0, fn)))
	}

	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: fns[0]}))
	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: fns[1]}))
	gw.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)

	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: fns[2]}))
	gw.AssertNumberOfCalls(t, "Deactivate", 1)
	gw.AssertCalled(t, "Deactivate", int32(0), telephony.EventSimStateUpdate)
	assert.Zero(t, r.Len())
}

func TestUnregisterEmptyIsNoop(t *testing.T) {
	gw := &stubGateway{}
	r := NewRegistry(gw)

	assert.NoError(t, r.Unregister(telephony.EventCallStateUpdate, nil))
	assert.NoError(t, r.Unregister(telephony.EventCallStateUpdate, CallStateCallback{Invoker: NewFunc(func(telephony.CallStateInfo) {})}))

	gw.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

func TestUnregisterUnknownHandleIsNoop(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)
	require.NoError(t, r.Register(simListener(0, noopSim())))

	assert.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: noopSim()}))
	assert.Equal(t, 1, r.Len())
	gw.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestUnregisterTargetedVersusAll(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)
	a, b := noopSim(), noopSim()

	require.NoError(t, r.Register(simListener(0, a)))
	require.NoError(t, r.Register(simListener(1, a)))
	require.NoError(t, r.Register(simListener(0, b)))
	require.NoError(t, r.Register(simListener(1, b)))
	require.NoError(t, r.Register(Listener{
		EventType: telephony.EventCallStateUpdate,
		SlotID:    0,
		Callback:  CallStateCallback{Invoker: NewFunc(func(telephony.CallStateInfo) {})},
	}))

	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: b}))
	for _, l := range r.Listeners() {
		assert.False(t, SameCallback(l.Callback, SimStateCallback{Invoker: b}), "b should be gone: %s", l)
	}
	assert.Equal(t, 2, r.Count(telephony.EventSimStateUpdate, log.AllSlots))
	gw.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)

	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, nil))
	assert.Zero(t, r.Count(telephony.EventSimStateUpdate, log.AllSlots))
	assert.Equal(t, 1, r.Len(), "call state listener must survive")
	gw.AssertNumberOfCalls(t, "Deactivate", 2)
	gw.AssertCalled(t, "Deactivate", int32(0), telephony.EventSimStateUpdate)
	gw.AssertCalled(t, "Deactivate", int32(1), telephony.EventSimStateUpdate)
}

func TestRegisterInvalidSlot(t *testing.T) {
	gw := &stubGateway{}
	gw.On("IsValid", int32(7), telephony.EventSimStateUpdate).Return(false)
	r := NewRegistry(gw)

	err := r.Register(simListener(7, noopSim()))
	require.Error(t, err)

	var be *telephony.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, int32(8300001), be.Code)
	assert.Equal(t, "Invalid parameter value.", be.Message)
	assert.ErrorIs(t, err, telephony.ErrInvalidParameter)

	assert.Zero(t, r.Len())
	gw.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

func TestRegisterRejectsMismatchedCallback(t *testing.T) {
	gw := &stubGateway{}
	r := NewRegistry(gw)

	err := r.Register(Listener{
		EventType: telephony.EventSimStateUpdate,
		SlotID:    0,
		Callback:  CallStateCallback{Invoker: NewFunc(func(telephony.CallStateInfo) {})},
	})
	assert.ErrorIs(t, err, telephony.ErrInvalidParameter)

	err = r.Register(Listener{EventType: telephony.EventSimStateUpdate})
	assert.ErrorIs(t, err, telephony.ErrInvalidParameter)

	err = r.Register(Listener{EventType: telephony.EventSimStateUpdate, Callback: SimStateCallback{}})
	assert.ErrorIs(t, err, telephony.ErrInvalidParameter)

	assert.Zero(t, r.Len())
	gw.AssertNotCalled(t, "IsValid", mock.Anything, mock.Anything)
}

// simFunc is an invoker whose dynamic type cannot be compared.
type simFunc func(telephony.SimStateData)

func (f simFunc) Invoke(s telephony.SimStateData) { f(s) }

func TestRegisterRejectsIncomparableInvoker(t *testing.T) {
	gw := &stubGateway{}
	r := NewRegistry(gw)

	calls := 0
	l := Listener{
		EventType: telephony.EventSimStateUpdate,
		SlotID:    0,
		Callback:  SimStateCallback{Invoker: simFunc(func(telephony.SimStateData) { calls++ })},
	}
	assert.ErrorIs(t, r.Register(l), telephony.ErrInvalidParameter)
	assert.ErrorIs(t, r.Register(l), telephony.ErrInvalidParameter)

	r.OnSimStateUpdated(0, 1, 1, 0)
	assert.Zero(t, calls)
	assert.Zero(t, r.Len())
	gw.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

func TestUnregisterCountsSlotsExactly(t *testing.T) {
	gw := (&stubGateway{}).permissive()
	r := NewRegistry(gw)
	a, b := noopSim(), noopSim()

	require.NoError(t, r.Register(simListener(log.AllSlots, a)))
	require.NoError(t, r.Register(simListener(0, b)))
	assert.Equal(t, 1, r.Count(telephony.EventSimStateUpdate, 0))

	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: a}))
	gw.AssertNumberOfCalls(t, "Deactivate", 1)
	gw.AssertCalled(t, "Deactivate", log.AllSlots, telephony.EventSimStateUpdate)
	assert.Equal(t, []Pair{{EventType: telephony.EventSimStateUpdate, SlotID: 0}}, r.ActivePairs())
}

func TestRegisterActivationFailure(t *testing.T) {
	failure := telephony.NewBusinessError(telephony.CodeServiceError)
	gw := &stubGateway{}
	gw.On("Activate", int32(0), telephony.EventSimStateUpdate).Return(failure)
	gw.permissive()
	r := NewRegistry(gw)

	err := r.Register(simListener(0, noopSim()))
	assert.Same(t, failure, err)
	assert.Zero(t, r.Len())

	// The next attempt is again a first listener.
	_ = r.Register(simListener(0, noopSim()))
	gw.AssertNumberOfCalls(t, "Activate", 2)
}

func TestRegisterWrapsForeignGatewayError(t *testing.T) {
	sentinel := errors.New("transport down")
	gw := &stubGateway{}
	gw.On("Activate", int32(1), telephony.EventCellInfoUpdate).Return(sentinel)
	gw.permissive()
	r := NewRegistry(gw)

	err := r.Register(Listener{
		EventType: telephony.EventCellInfoUpdate,
		SlotID:    1,
		Callback:  CellInfoCallback{Invoker: NewFunc(func([]telephony.CellInformation) {})},
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "CELL_INFO")
}

func TestUnregisterDeactivationFailureKeepsRemoval(t *testing.T) {
	failure := telephony.NewBusinessError(telephony.CodeSystemError)
	gw := &stubGateway{}
	gw.On("Deactivate", int32(0), telephony.EventSimStateUpdate).Return(failure)
	gw.permissive()
	r := NewRegistry(gw)

	require.NoError(t, r.Register(simListener(0, noopSim())))
	require.NoError(t, r.Register(simListener(1, noopSim())))

	err := r.Unregister(telephony.EventSimStateUpdate, nil)
	assert.Same(t, failure, err)
	assert.Zero(t, r.Len())

	// Every affected slot is attempted even after a failure.
	gw.AssertCalled(t, "Deactivate", int32(1), telephony.EventSimStateUpdate)
	gw.AssertNumberOfCalls(t, "Deactivate", 2)
}

func TestActivePairs(t *testing.T) {
	r := NewRegistry((&stubGateway{}).permissive())
	require.NoError(t, r.Register(simListener(1, noopSim())))
	require.NoError(t, r.Register(simListener(1, noopSim())))
	require.NoError(t, r.Register(simListener(0, noopSim())))

	assert.Equal(t, []Pair{
		{EventType: telephony.EventSimStateUpdate, SlotID: 1},
		{EventType: telephony.EventSimStateUpdate, SlotID: 0},
	}, r.ActivePairs())
	assert.Equal(t, "SIM_STATE/1", r.ActivePairs()[0].String())
}

func TestRegistryTrace(t *testing.T) {
	trace := &captureTrace{}
	r := NewRegistryWithConfig((&stubGateway{}).permissive(), Config{TraceLogger: trace, ID: "reg-test"})
	fn := noopSim()

	require.NoError(t, r.Register(simListener(0, fn)))
	require.NoError(t, r.Register(simListener(0, fn)))
	r.OnSimStateUpdated(0, 20, 4, 0)
	require.NoError(t, r.Unregister(telephony.EventSimStateUpdate, nil))

	assert.Equal(t, []string{
		"gateway:activate",
		"subscription:added",
		"subscription:duplicate",
		"dispatch",
		"subscription:removed",
		"gateway:deactivate",
	}, trace.kinds())

	for _, e := range trace.events {
		assert.Equal(t, "reg-test", e.RegistryID)
		assert.False(t, e.Timestamp.IsZero())
	}
	assert.Equal(t, "reg-test", r.ID())
}

func TestRegistryGeneratesID(t *testing.T) {
	a := NewRegistry(&stubGateway{})
	b := NewRegistry(&stubGateway{})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewRegistryNilGatewayPanics(t *testing.T) {
	assert.Panics(t, func() { NewRegistry(nil) })
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry((&stubGateway{}).permissive())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(slot int32) {
			defer wg.Done()
			for range 50 {
				fn := noopSim()
				_ = r.Register(simListener(slot%2, fn))
				r.OnSimStateUpdated(slot%2, 20, 4, 0)
				_ = r.Unregister(telephony.EventSimStateUpdate, SimStateCallback{Invoker: fn})
			}
		}(int32(i))
	}
	wg.Wait()

	assert.Zero(t, r.Len())
	assert.Empty(t, r.ActivePairs())
}
