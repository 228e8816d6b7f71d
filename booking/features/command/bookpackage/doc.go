// Package bookpackage implements the Book Package use case.
//
// A package combines a flight and a hotel stay under one booking aggregate,
// priced as one provider offer. It emits a single PackageBooked event, so the
// package is confirmed or rejected as a whole.
package bookpackage
