// Package bookflight implements the Book Flight use case.
//
// A flight booking is created against a provider offer: the handler asks the
// provider whether the offer is still bookable, the pure Decide function
// applies the business rules, and on success exactly one FlightBooked event
// starts the booking's stream at version 1. The booked price is the price the
// provider validated, not the price the client submitted.
package bookflight
