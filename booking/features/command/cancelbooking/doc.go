// Package cancelbooking implements the Cancel Booking use case.
//
// Cancellation is terminal: once a BookingCancelled event is appended, no
// further state changes are accepted for the aggregate. Cancelling an already
// cancelled booking is a no-op, so concurrent cancellations of the same
// booking produce exactly one cancellation event between them.
package cancelbooking
