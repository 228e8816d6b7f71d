// Package bookhotel implements the Book Hotel use case.
//
// A hotel stay is booked against a provider offer, same flow as a flight:
// provider validation, pure Decide, one HotelBooked event at version 1.
package bookhotel
