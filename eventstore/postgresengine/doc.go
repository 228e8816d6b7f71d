// Package postgresengine implements the Postgres storage engine of the event log.
//
// The append path uses a conditional INSERT ... SELECT guarded by a CTE that
// computes the aggregate's current max version, so the optimistic concurrency
// check and the insert happen in one atomic statement without explicit locking.
// Fewer rows returned than events drafted means another writer won the race and
// eventstore.ErrConcurrencyConflict is reported.
//
// Three database handles are supported (pgx pool, database/sql, sqlx) behind an
// internal adapter interface; SQL is built with goqu.
package postgresengine
