// Package order contains the Order aggregate of the back office and its status
// state machine.
//
// Lifecycle:
//
//	pending ──> assigned ──> in_transit ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──────> cancelled
//
// delivered and cancelled are terminal. Orders are created outside the back office
// and arrive pending with no rider. Only two transitions are driven from here:
// Assign (pending -> assigned) and Cancel (any non-terminal -> cancelled). Pickup and
// delivery are reported by the delivery side and are only ever restored from storage.
//
// Each milestone timestamp (assigned, picked up, delivered, cancelled) is set exactly
// once, and at most one of delivered_at / cancelled_at is ever set.
package order
