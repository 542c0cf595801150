// Package services provides domain services that span the Order and Rider
// aggregates.
//
// AvailabilityTracker derives assignability, ranks candidate riders by load and
// settles a rider's busy/available status from its count of active orders. It is
// stateless; persistence is left to the command handlers.
package services
