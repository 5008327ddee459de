// Package telephony defines the shared data model for telephony state
// observation: event categories, slot identifiers, the closed enumerations
// carried by state-change notifications and the composite records delivered
// to subscribers.
//
// # Event Categories
//
// Each EventType has a fixed bit-flag value. The value is only meaningful to
// the activation gateway, which toggles the underlying notification source
// for a (slot, mask) pair. Two categories (CFU indicator and voicemail
// indicator) are reserved and never dispatched.
//
// # Raw Codes
//
// Notification sources deliver integer codes. Every enumeration offers a
// total conversion (CardTypeFromCode, SimStateFromCode, ...) that maps codes
// outside the known set to the enumeration's unknown or default member,
// so normalization never fails.
//
// # Errors
//
// Caller-visible failures are *BusinessError values carrying a public error
// code and message. The codes match the public observer API error table.
package telephony
