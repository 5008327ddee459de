// Package observer implements the telephony state observer registry.
//
// Callers subscribe to categories of state-change notifications (network
// registration, SIM state, signal strength, cell topology, data connection
// state, call state, data flow activity, account changes) scoped to a slot.
// The registry tells its Gateway to start producing events for a
// (category, slot) pair when the first subscriber arrives and to stop when
// the last one leaves.
//
// # Registry
//
// A Registry holds one collection of Listener records guarded by a single
// read-write lock:
//
//	reg := observer.NewRegistry(gw)
//	fn := observer.NewFunc(func(d telephony.SimStateData) {
//	    fmt.Println(d)
//	})
//	err := reg.Register(observer.Listener{
//	    EventType: telephony.EventSimStateUpdate,
//	    SlotID:    0,
//	    Callback:  observer.SimStateCallback{Invoker: fn},
//	})
//
// Default returns a lazily constructed process-wide registry. Use
// ConfigureDefault before the first call to Default to supply its gateway.
//
// # Registration Rules
//
//   - Registering the same (category, slot, callback) triple twice is a no-op.
//   - The first listener for a (category, slot) pair activates it on the Gateway.
//     If activation fails the listener is not stored.
//   - Removing the last listener for a pair deactivates it. A deactivation
//     failure is returned but the listener stays removed.
//   - Unregister with a nil Callback removes every listener of the category
//     across all slots.
//
// # Dispatch
//
// The On*Updated entry points normalize raw codes into telephony records and
// invoke every matching callback synchronously while holding the read lock.
// Callbacks must not call back into the same Registry: Register and
// Unregister would block on the held lock.
//
// # Subscription Helpers
//
// The On*Change, On*ChangeWithOptions and Off*Change functions wrap plain Go
// functions and register them on the default registry.
package observer
