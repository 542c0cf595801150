// Package queries contains the read side of the back office. Handlers read the
// tables directly with SQL and return flat views; they never load aggregates for
// writing and never open transactions.
package queries
