// Package ports defines the contracts between the back-office core and its
// infrastructure: repositories for the Order, Rider and Profile aggregates, the unit
// of work that scopes them to a transaction and the publisher for change events.
package ports
