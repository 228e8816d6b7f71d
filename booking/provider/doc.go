// Package provider is the client side of the external travel provider:
// offer search and offer validation. The provider is consulted during booking
// creation only, it is never part of the durable write path.
package provider
