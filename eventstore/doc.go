// Package eventstore provides the storage-agnostic contracts of the append-only
// event log that is the source of truth for the booking write path.
//
// The event log stores immutable events keyed by aggregate: every event carries
// a per-aggregate Version (gapless, starting at 1) used for optimistic
// concurrency and a global SequenceNumber used for replay tooling.
//
// Storage engines live in subpackages:
//   - postgresengine: the production engine (pgx pool, database/sql or sqlx handles)
//   - memoryengine: an in-process engine with identical semantics for tests and tooling
package eventstore
