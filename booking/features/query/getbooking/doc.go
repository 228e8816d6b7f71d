// Package getbooking implements the Get Booking query.
//
// The query reads the denormalized read model row only, it never touches the
// event log. A missing row is reported as NotFound, whether the booking never
// existed or its row simply has not been projected yet.
package getbooking
