package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tripmesh/bookingcore/eventstore"
	"github.com/tripmesh/bookingcore/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName        = "events"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildStoredEventFailed = "failed to build stored event from database row"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBExecFailed           = "database execution failed during event append"
	logMsgSingleEventSQLFailed   = "failed to convert single event insert statement to SQL"
	logMsgMultiEventSQLFailed    = "failed to convert multiple events insert statement to SQL"
	logMsgReadCompleted          = "read completed"
	logMsgReadAllCompleted       = "read all completed"
	logMsgEventsAppended         = "events appended"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "eventstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrAggregateID           = "aggregate_id"
	logAttrEventType             = "event_type"
	logAttrEventCount            = "event_count"
	logAttrDurationMS            = "duration_ms"
	logAttrExpectedEvents        = "expected_events"
	logAttrRowsReturned          = "rows_returned"
	logAttrExpectedVersion       = "expected_version"
	logActionRead                = "read"
	logActionReadAll             = "read_all"
	logActionAppend              = "append"
	colEventID                   = "event_id"
	colAggregateID               = "aggregate_id"
	colEventType                 = "event_type"
	colVersion                   = "version"
	colOccurredAt                = "occurred_at"
	colPayload                   = "payload"
	colMetadata                  = "metadata"
	colSequenceNumber            = "sequence_number"
	colVersionOffset             = "version_offset"
	cteStream                    = "stream"
	cteVals                      = "vals"
	dialectPostgres              = "postgres"
	aliasCurrentVersion          = "current_version"
	castText                     = "?::text"
	castUUID                     = "?::uuid"
	castInt                      = "?::int"
	castTimestamp                = "?::timestamp with time zone"
	castJsonb                    = "?::jsonb"
	pgUniqueViolationCode        = "23505"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// EventStore is the Postgres-backed append-only event log.
// Events are keyed by aggregate: the tuple (aggregate_id, version) is unique and
// versions are assigned consecutively by the store itself, starting at 1, guarded
// by an optimistic expected-version check. A global sequence number records the
// cross-aggregate append order for replay tooling.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	logger         Logger
}

type appendResultRow struct {
	sequenceNumber eventstore.SequenceNumberUint
	version        eventstore.VersionUint
}

type readResultRow struct {
	eventID        string
	aggregateID    string
	eventType      string
	version        eventstore.VersionUint
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber eventstore.SequenceNumberUint
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Append appends one or multiple events for a single aggregate, respecting the
// optimistic concurrency constraint: the append only takes effect if the current
// stored max version for the aggregate equals expectedVersion.
//
// All drafted events are inserted by one INSERT statement, so the batch is
// all-or-nothing: on any failure no partial subset becomes visible.
//
// On success, the returned StoredEvents carry the assigned consecutive versions
// (expectedVersion+1 ...) and global sequence numbers.
// Returns eventstore.ErrConcurrencyConflict when the expected version check
// fails, or when a racing append slips past the check and loses on the
// (aggregate_id, version) unique constraint.
func (es EventStore) Append(
	ctx context.Context,
	aggregateID string,
	expectedVersion eventstore.VersionUint,
	events ...eventstore.StorableEvent,
) (eventstore.StoredEvents, error) {

	if len(events) == 0 {
		return nil, eventstore.ErrNoEventsToAppend
	}

	for _, event := range events {
		if event.AggregateID != aggregateID {
			return nil, eventstore.ErrMixedAggregateIDs
		}
	}

	sqlQuery, buildQueryErr := es.buildAppendQuery(aggregateID, expectedVersion, events)
	if buildQueryErr != nil {
		return nil, buildQueryErr
	}

	start := time.Now()
	rows, execErr := es.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		// Two appends racing on the same aggregate can both pass the expected
		// version check; the loser then trips UNIQUE (aggregate_id, version).
		if isUniqueViolation(execErr) {
			es.logOperation(
				logMsgConcurrencyConflict,
				logAttrAggregateID, aggregateID,
				logAttrExpectedVersion, expectedVersion,
			)

			return nil, eventstore.ErrConcurrencyConflict
		}

		es.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}
	defer es.closeRows(rows)

	assigned, scanErr := es.scanAppendResults(rows)
	if scanErr != nil {
		return nil, scanErr
	}

	if len(assigned) < len(events) {
		es.logOperation(
			logMsgConcurrencyConflict,
			logAttrAggregateID, aggregateID,
			logAttrExpectedEvents, len(events),
			logAttrRowsReturned, len(assigned),
			logAttrExpectedVersion, expectedVersion,
		)

		return nil, eventstore.ErrConcurrencyConflict
	}

	storedEvents := make(eventstore.StoredEvents, 0, len(events))
	for i, event := range events {
		version := expectedVersion + eventstore.VersionUint(i) + 1

		storedEvents = append(storedEvents, eventstore.StoredEvent{
			StorableEvent:  event,
			Version:        version,
			SequenceNumber: assigned[version],
		})
	}

	es.logOperation(
		logMsgEventsAppended,
		logAttrAggregateID, aggregateID,
		logAttrEventCount, len(events),
		logAttrDurationMS, es.durationToMilliseconds(duration),
	)

	return storedEvents, nil
}

// Read retrieves the events of one aggregate in ascending version order,
// starting at fromVersion. Returns an empty slice for an unknown aggregate.
//
// Each read is one SELECT statement, so concurrent appends never become visible
// partially: readers observe a consistent snapshot without version gaps.
func (es EventStore) Read(
	ctx context.Context,
	aggregateID string,
	fromVersion eventstore.VersionUint,
) (eventstore.StoredEvents, error) {

	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventID, colAggregateID, colEventType, colVersion, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Where(goqu.Ex{colAggregateID: aggregateID}, goqu.C(colVersion).Gte(fromVersion)).
		Order(goqu.I(colVersion).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgBuildSelectQueryFailed, logAttrError, toSQLErr.Error())
		return nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	eventStream, duration, readErr := es.executeReadQuery(ctx, sqlQuery, logActionRead)
	if readErr != nil {
		return nil, readErr
	}

	es.logOperation(
		logMsgReadCompleted,
		logAttrAggregateID, aggregateID,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, es.durationToMilliseconds(duration),
	)

	return eventStream, nil
}

// ReadAll retrieves events across all aggregates in global append order,
// starting at fromSequence (inclusive). A limit of 0 means no limit.
// The sequence numbers are stable, so callers can resume with lastSeen+1.
func (es EventStore) ReadAll(
	ctx context.Context,
	fromSequence eventstore.SequenceNumberUint,
	limit uint,
) (eventstore.StoredEvents, error) {

	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventID, colAggregateID, colEventType, colVersion, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Where(goqu.C(colSequenceNumber).Gte(fromSequence)).
		Order(goqu.I(colSequenceNumber).Asc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(limit)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgBuildSelectQueryFailed, logAttrError, toSQLErr.Error())
		return nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	eventStream, duration, readErr := es.executeReadQuery(ctx, sqlQuery, logActionReadAll)
	if readErr != nil {
		return nil, readErr
	}

	es.logOperation(
		logMsgReadAllCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, es.durationToMilliseconds(duration),
	)

	return eventStream, nil
}

// executeReadQuery executes a SELECT and converts the rows to stored events.
func (es EventStore) executeReadQuery(ctx context.Context, sqlQuery sqlQueryString, action string) (
	eventstore.StoredEvents,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		es.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(rows)

	eventStream, scanErr := es.scanReadResults(rows)
	if scanErr != nil {
		return nil, duration, scanErr
	}

	return eventStream, duration, nil
}

// scanReadResults converts database rows into stored events.
func (es EventStore) scanReadResults(rows adapters.DBRows) (eventstore.StoredEvents, error) {
	result := readResultRow{}
	eventStream := make(eventstore.StoredEvents, 0)

	for rows.Next() {
		rowScanErr := rows.Scan(
			&result.eventID,
			&result.aggregateID,
			&result.eventType,
			&result.version,
			&result.occurredAt,
			&result.payload,
			&result.metadata,
			&result.sequenceNumber,
		)
		if rowScanErr != nil {
			es.logError(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			return nil, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		storableEvent, buildErr := eventstore.BuildStorableEvent(
			result.eventID, result.aggregateID, result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildErr != nil {
			es.logError(logMsgBuildStoredEventFailed, logAttrError, buildErr.Error(), logAttrEventType, result.eventType)
			return nil, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		eventStream = append(eventStream, eventstore.StoredEvent{
			StorableEvent:  storableEvent,
			Version:        result.version,
			SequenceNumber: result.sequenceNumber,
		})
	}

	return eventStream, nil
}

// scanAppendResults collects the versions and sequence numbers assigned by the
// INSERT ... RETURNING statement, keyed by version.
func (es EventStore) scanAppendResults(rows adapters.DBRows) (map[eventstore.VersionUint]eventstore.SequenceNumberUint, error) {
	result := appendResultRow{}
	assigned := make(map[eventstore.VersionUint]eventstore.SequenceNumberUint)

	for rows.Next() {
		if rowScanErr := rows.Scan(&result.sequenceNumber, &result.version); rowScanErr != nil {
			es.logError(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			return nil, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		assigned[result.version] = result.sequenceNumber
	}

	return assigned, nil
}

// buildAppendQuery builds the appropriate SQL query for single or multiple events.
//
// The insert query to append multiple events atomically is heavier than the one
// built to append a single event. In event-sourced applications, one command
// should typically only produce one event.
func (es EventStore) buildAppendQuery(
	aggregateID string,
	expectedVersion eventstore.VersionUint,
	events eventstore.StorableEvents,
) (sqlQueryString, error) {

	var sqlQuery sqlQueryString
	var buildQueryErr error

	switch len(events) {
	case 1:
		sqlQuery, buildQueryErr = es.buildInsertQueryForSingleEvent(aggregateID, expectedVersion, events[0])

	default:
		sqlQuery, buildQueryErr = es.buildInsertQueryForMultipleEvents(aggregateID, expectedVersion, events)
	}

	if buildQueryErr != nil {
		es.logError(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEventCount, len(events))
		return "", buildQueryErr
	}

	return sqlQuery, nil
}

func (es EventStore) buildInsertQueryForSingleEvent(
	aggregateID string,
	expectedVersion eventstore.VersionUint,
	event eventstore.StorableEvent,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// CTE computing the current max version of this aggregate's stream
	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colVersion), 0).As(aliasCurrentVersion)).
		Where(goqu.Ex{colAggregateID: aggregateID})

	// The SELECT feeding the INSERT; yields zero rows unless the expected version matches
	selectStmt := builder.
		From(cteStream).
		Select(
			goqu.L(castUUID, event.EventID),
			goqu.L(castUUID, event.AggregateID),
			goqu.L(castText, event.EventType),
			goqu.L(fmt.Sprintf("%s + 1", aliasCurrentVersion)),
			goqu.L(castTimestamp, event.OccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)),
			goqu.L(castJsonb, string(event.MetadataJSON)),
		).
		Where(goqu.C(aliasCurrentVersion).Eq(goqu.V(expectedVersion)))

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventID, colAggregateID, colEventType, colVersion, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteStream, cteStmt).
		Returning(colSequenceNumber, colVersion)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgSingleEventSQLFailed, logAttrError, toSQLErr.Error(), logAttrEventType, event.EventType)
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildInsertQueryForMultipleEvents(
	aggregateID string,
	expectedVersion eventstore.VersionUint,
	events eventstore.StorableEvents,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// CTE computing the current max version of this aggregate's stream
	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colVersion), 0).As(aliasCurrentVersion)).
		Where(goqu.Ex{colAggregateID: aggregateID})

	// One SELECT per event, carrying its position so versions come out consecutive
	unionStatements := make([]*goqu.SelectDataset, len(events))
	for i, event := range events {
		unionStatements[i] = builder.
			Select(
				goqu.L(castUUID, event.EventID).As(colEventID),
				goqu.L(castText, event.EventType).As(colEventType),
				goqu.L(castInt, i+1).As(colVersionOffset),
				goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
				goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
			)
	}

	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	valsEventID := fmt.Sprintf("%s.%s", cteVals, colEventID)
	valsEventType := fmt.Sprintf("%s.%s", cteVals, colEventType)
	valsOccurredAt := fmt.Sprintf("%s.%s", cteVals, colOccurredAt)
	valsPayload := fmt.Sprintf("%s.%s", cteVals, colPayload)
	valsMetadata := fmt.Sprintf("%s.%s", cteVals, colMetadata)
	versionExpr := fmt.Sprintf("%s.%s + %s.%s", cteStream, aliasCurrentVersion, cteVals, colVersionOffset)

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventID, colAggregateID, colEventType, colVersion, colOccurredAt, colPayload, colMetadata).
		With(cteStream, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteStream, cteVals).
				Select(
					goqu.I(valsEventID),
					goqu.L(castUUID, aggregateID),
					goqu.I(valsEventType),
					goqu.L(versionExpr),
					goqu.I(valsOccurredAt),
					goqu.I(valsPayload),
					goqu.I(valsMetadata),
				).
				Where(goqu.C(aliasCurrentVersion).Eq(goqu.V(expectedVersion))),
		).
		Returning(colSequenceNumber, colVersion)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgMultiEventSQLFailed, logAttrError, toSQLErr.Error(), logAttrEventCount, len(events))
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// isUniqueViolation reports whether the error is a Postgres unique_violation
// (SQLSTATE 23505), from either the pgx or the lib/pq driver.
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolationCode
	}

	return false
}

// closeRows safely closes database rows and logs any errors.
func (es EventStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if es.logger != nil {
			es.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (es EventStore) logQueryWithDuration(sqlQuery sqlQueryString, action string, duration time.Duration) {
	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, es.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (es EventStore) logOperation(action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs failures at error level if a logger is configured.
func (es EventStore) logError(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (es EventStore) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
