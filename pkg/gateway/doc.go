// Package gateway implements the slot-validating activation gateway used by
// the observer registry.
//
// A SlotGateway checks slot legality and forwards activation requests to a
// StateManager, the process-side port of the telephony state service. The
// StateManager reports internal status codes; ConvertError maps them to the
// public *telephony.BusinessError codes callers see.
//
// # Slot Rules
//
// With SlotCount physical slots, legal slots are 0 through SlotCount
// inclusive (one extra slot for a virtual SIM). Call state additionally
// accepts -1. A SlotCount of zero rejects every slot, and the reserved
// categories (CFU and voicemail indicators) are always rejected.
//
// # In-Memory State Manager
//
// MemoryStateManager records the active mask per slot and can be told to fail
// specific categories. It backs the simulation console and tests.
package gateway
