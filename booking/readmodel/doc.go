// Package readmodel holds the query-side booking rows and their stores.
//
// The read model is derived state: every row is a pure function of the
// aggregate's event history and can be dropped and rebuilt from the log at
// any time. Stores are keyed by booking id and guarded by the last applied
// version so that re-applying an already projected event is a no-op.
package readmodel
