// Package shell contains the imperative rim around the pure domain core:
// mapping between domain events and storable events, the command error
// taxonomy, retry on concurrency conflicts, handler results, and the logger
// adapter. Command handlers and the projector are built from these parts.
package shell
