// Package service wires the feature slices into one facade: the command
// entry point, the query interface and the replay/audit tooling.
package service
