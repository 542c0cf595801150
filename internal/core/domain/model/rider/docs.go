// Package rider provides the Rider aggregate: a delivery courier with an
// availability status, an active flag and the last reported location.
//
// Key business rules:
//   - A rider is assignable only when active and available
//   - The active flag is independent of status; an inactive rider is never assignable
//   - Status moves between available and busy only as a consequence of order
//     assignment, cancellation or completion; offline is set by the rider
//   - A busy rider has at least one assigned or in-transit order
package rider
