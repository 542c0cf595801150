// Package kernel provides the shared value objects of the back-office domain.
//
// The package includes:
//   - UUID: identifier for orders, riders, stores and profiles
//   - Location: a validated latitude/longitude pair reported by riders
//
// Both are immutable; their zero values are invalid and fail Validate.
package kernel
