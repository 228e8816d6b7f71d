// Package core holds the pure domain model of the booking write path: the
// closed set of domain events for the booking aggregate, the DecisionResult
// returned by the per-command Decide functions, and the aggregate state fold
// those functions share.
//
// Nothing in this package performs I/O.
package core
