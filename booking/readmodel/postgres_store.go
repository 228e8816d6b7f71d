package readmodel

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripmesh/bookingcore/eventstore"
)

const (
	defaultBookingsTableName = "bookings"
	dialectPostgres          = "postgres"

	colBookingID          = "booking_id"
	colKind               = "kind"
	colStatus             = "status"
	colOfferID            = "offer_id"
	colDeparture          = "departure"
	colDestination        = "destination"
	colDepartDate         = "depart_date"
	colReturnDate         = "return_date"
	colHotelName          = "hotel_name"
	colHotelCity          = "hotel_city"
	colPrice              = "price"
	colCurrency           = "currency"
	colAdults             = "adults"
	colPaymentMethod      = "payment_method"
	colCancellationReason = "cancellation_reason"
	colRefundAmount       = "refund_amount"
	colLastEventID        = "last_event_id"
	colLastVersion        = "last_version"
	colCreatedAt          = "created_at"
	colUpdatedAt          = "updated_at"
)

var (
	// ErrNilDatabaseConnection is returned when the store is built without a pool.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingStoreQueryFailed is returned when a read model query cannot be built.
	ErrBuildingStoreQueryFailed = errors.New("building read model query failed")

	// ErrStoreQueryFailed is returned when a read model statement fails to execute.
	ErrStoreQueryFailed = errors.New("read model query failed")
)

// PostgresStore is the Postgres-backed read model Store.
type PostgresStore struct {
	db                *pgxpool.Pool
	bookingsTableName string
	logger            eventstore.Logger
}

// PostgresStoreOption configures a PostgresStore.
type PostgresStoreOption func(*PostgresStore) error

// WithBookingsTableName overrides the default "bookings" table name.
func WithBookingsTableName(tableName string) PostgresStoreOption {
	return func(s *PostgresStore) error {
		if tableName == "" {
			return errors.New("bookings table name must not be empty")
		}

		s.bookingsTableName = tableName

		return nil
	}
}

// WithStoreLogger configures a logger for the store.
func WithStoreLogger(logger eventstore.Logger) PostgresStoreOption {
	return func(s *PostgresStore) error {
		s.logger = logger

		return nil
	}
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(db *pgxpool.Pool, options ...PostgresStoreOption) (*PostgresStore, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	store := &PostgresStore{
		db:                db,
		bookingsTableName: defaultBookingsTableName,
	}

	for _, option := range options {
		if err := option(store); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func allColumns() []any {
	return []any{
		colBookingID, colKind, colStatus,
		colOfferID, colDeparture, colDestination, colDepartDate, colReturnDate,
		colHotelName, colHotelCity,
		colPrice, colCurrency, colAdults, colPaymentMethod,
		colCancellationReason, colRefundAmount,
		colLastEventID, colLastVersion,
		colCreatedAt, colUpdatedAt,
	}
}

// Get returns the row for the given booking id, or ErrBookingRowNotFound.
func (s *PostgresStore) Get(ctx context.Context, bookingID string) (BookingRow, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.bookingsTableName).
		Select(allColumns()...).
		Where(goqu.Ex{colBookingID: bookingID}).
		ToSQL()

	if toSQLErr != nil {
		return BookingRow{}, errors.Join(ErrBuildingStoreQueryFailed, toSQLErr)
	}

	row, err := s.queryOne(ctx, sqlQuery)
	if err != nil {
		return BookingRow{}, err
	}

	return row, nil
}

// Upsert inserts or replaces the row keyed by its booking id.
func (s *PostgresStore) Upsert(ctx context.Context, row BookingRow) error {
	record := goqu.Record{
		colBookingID:          row.BookingID,
		colKind:               row.Kind,
		colStatus:             row.Status,
		colOfferID:            row.OfferID,
		colDeparture:          row.Departure,
		colDestination:        row.Destination,
		colDepartDate:         row.DepartDate,
		colReturnDate:         row.ReturnDate,
		colHotelName:          row.HotelName,
		colHotelCity:          row.HotelCity,
		colPrice:              row.Price,
		colCurrency:           row.Currency,
		colAdults:             row.Adults,
		colPaymentMethod:      row.PaymentMethod,
		colCancellationReason: row.CancellationReason,
		colRefundAmount:       row.RefundAmount,
		colLastEventID:        row.LastEventID,
		colLastVersion:        row.LastVersion,
		colCreatedAt:          row.CreatedAt,
		colUpdatedAt:          row.UpdatedAt,
	}

	updateRecord := goqu.Record{}
	for col, val := range record {
		if col == colBookingID || col == colCreatedAt {
			continue
		}

		updateRecord[col] = val
	}

	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(s.bookingsTableName).
		Rows(record).
		OnConflict(goqu.DoUpdate(colBookingID, updateRecord)).
		ToSQL()

	if toSQLErr != nil {
		return errors.Join(ErrBuildingStoreQueryFailed, toSQLErr)
	}

	return s.exec(ctx, sqlQuery)
}

// Delete removes the row for the given booking id.
func (s *PostgresStore) Delete(ctx context.Context, bookingID string) error {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Delete(s.bookingsTableName).
		Where(goqu.Ex{colBookingID: bookingID}).
		ToSQL()

	if toSQLErr != nil {
		return errors.Join(ErrBuildingStoreQueryFailed, toSQLErr)
	}

	return s.exec(ctx, sqlQuery)
}

// All returns every row ordered by booking id.
func (s *PostgresStore) All(ctx context.Context) ([]BookingRow, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(s.bookingsTableName).
		Select(allColumns()...).
		Order(goqu.I(colBookingID).Asc()).
		ToSQL()

	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingStoreQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQuery(sqlQuery, time.Since(start))

	if queryErr != nil {
		return nil, errors.Join(ErrStoreQueryFailed, queryErr)
	}
	defer rows.Close()

	all := make([]BookingRow, 0)

	for rows.Next() {
		row, scanErr := scanBookingRow(rows)
		if scanErr != nil {
			return nil, errors.Join(ErrStoreQueryFailed, scanErr)
		}

		all = append(all, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(ErrStoreQueryFailed, rowsErr)
	}

	return all, nil
}

func (s *PostgresStore) queryOne(ctx context.Context, sqlQuery string) (BookingRow, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQuery(sqlQuery, time.Since(start))

	if queryErr != nil {
		return BookingRow{}, errors.Join(ErrStoreQueryFailed, queryErr)
	}
	defer rows.Close()

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return BookingRow{}, errors.Join(ErrStoreQueryFailed, rowsErr)
		}

		return BookingRow{}, ErrBookingRowNotFound
	}

	row, scanErr := scanBookingRow(rows)
	if scanErr != nil {
		return BookingRow{}, errors.Join(ErrStoreQueryFailed, scanErr)
	}

	return row, nil
}

func (s *PostgresStore) exec(ctx context.Context, sqlQuery string) error {
	start := time.Now()
	_, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQuery(sqlQuery, time.Since(start))

	if execErr != nil {
		return errors.Join(ErrStoreQueryFailed, execErr)
	}

	return nil
}

func scanBookingRow(rows pgx.Rows) (BookingRow, error) {
	var row BookingRow

	scanErr := rows.Scan(
		&row.BookingID, &row.Kind, &row.Status,
		&row.OfferID, &row.Departure, &row.Destination, &row.DepartDate, &row.ReturnDate,
		&row.HotelName, &row.HotelCity,
		&row.Price, &row.Currency, &row.Adults, &row.PaymentMethod,
		&row.CancellationReason, &row.RefundAmount,
		&row.LastEventID, &row.LastVersion,
		&row.CreatedAt, &row.UpdatedAt,
	)

	return row, scanErr
}

func (s *PostgresStore) logQuery(sqlQuery string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug("executed read model sql", "duration_ms", float64(duration.Microseconds())/1000, "query", sqlQuery)
	}
}
