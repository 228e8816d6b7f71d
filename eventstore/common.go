package eventstore

import (
	"errors"
)

// VersionUint is a type alias for uint, representing the per-aggregate version
// of an event. Versions are gapless and start at 1 for every aggregate.
type VersionUint = uint

// SequenceNumberUint is a type alias for uint64, representing the global,
// cross-aggregate append order of an event.
type SequenceNumberUint = uint64

// InitialVersion is the expected version for appending to a not-yet-existing aggregate.
const InitialVersion = VersionUint(0)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyEventsTableName = errors.New("empty events table name supplied")
var ErrConcurrencyConflict = errors.New("concurrency conflict, stored version does not match expected version")
var ErrNoEventsToAppend = errors.New("no events supplied to append")
var ErrMixedAggregateIDs = errors.New("all events of one append must share the aggregate id")
var ErrBuildingQueryFailed = errors.New("building database query failed")
var ErrQueryingEventsFailed = errors.New("querying events failed")
var ErrAppendingEventFailed = errors.New("appending event failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrBuildingStorableEventFailed = errors.New("building storable event from database row failed")
