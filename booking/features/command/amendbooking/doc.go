// Package amendbooking implements the Amend Booking use case.
//
// Amending changes the travel dates, party size or price of a confirmed
// booking. A cancelled booking cannot be amended, and re-delivering an amend
// that matches the current state appends nothing.
package amendbooking
