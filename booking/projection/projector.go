package projection

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripmesh/bookingcore/booking/core"
	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
)

const readAllBatchSize = 1000

// ErrRebuildFailed is returned when a rebuild could not bring every affected
// row up to date.
var ErrRebuildFailed = errors.New("read model rebuild failed")

// Projector applies stored events to the booking read model.
type Projector struct {
	log    shell.EventLog
	store  readmodel.Store
	logger eventstore.Logger
}

// NewProjector creates a Projector over the given event log and read model store.
func NewProjector(log shell.EventLog, store readmodel.Store, logger eventstore.Logger) *Projector {
	return &Projector{log: log, store: store, logger: logger}
}

// Apply folds one stored event into the read model row of its aggregate.
// Events already reflected by the row (version at or below the row's last
// applied version) are skipped, so re-delivery is harmless. An event arriving
// with a version gap never folds directly: the row must stay derivable from
// versions 1..last_version, so the missing range is read from the log and
// folded first.
func (p *Projector) Apply(ctx context.Context, storedEvent eventstore.StoredEvent) error {
	row, getErr := p.store.Get(ctx, storedEvent.AggregateID)

	switch {
	case getErr == nil:

	case errors.Is(getErr, readmodel.ErrBookingRowNotFound):
		row = readmodel.BookingRow{}

	default:
		return getErr
	}

	if storedEvent.Version <= row.LastVersion {
		return nil
	}

	if storedEvent.Version > row.LastVersion+1 {
		return p.applyFromLog(ctx, storedEvent.AggregateID, row)
	}

	domainEvent, mapErr := shell.DomainEventFrom(storedEvent)
	if mapErr != nil {
		return mapErr
	}

	updated := applyEvent(row, domainEvent, storedEvent)

	return p.store.Upsert(ctx, updated)
}

// applyFromLog folds every event the row has not seen yet, read from the log
// in version order. The triggering event is durable, so the read covers it.
func (p *Projector) applyFromLog(ctx context.Context, aggregateID string, row readmodel.BookingRow) error {
	missing, readErr := p.log.Read(ctx, aggregateID, row.LastVersion+1)
	if readErr != nil {
		return readErr
	}

	for _, storedEvent := range missing {
		domainEvent, mapErr := shell.DomainEventFrom(storedEvent)
		if mapErr != nil {
			return mapErr
		}

		row = applyEvent(row, domainEvent, storedEvent)
	}

	return p.store.Upsert(ctx, row)
}

// Rebuild recomputes the read model row of one aggregate from its full event
// history. An aggregate with no events removes the row.
func (p *Projector) Rebuild(ctx context.Context, aggregateID string) error {
	history, readErr := p.log.Read(ctx, aggregateID, 1)
	if readErr != nil {
		return readErr
	}

	if deleteErr := p.store.Delete(ctx, aggregateID); deleteErr != nil {
		return deleteErr
	}

	if len(history) == 0 {
		return nil
	}

	row, foldErr := p.foldHistory(history)
	if foldErr != nil {
		return foldErr
	}

	return p.store.Upsert(ctx, row)
}

// RebuildAll recomputes every read model row by replaying the whole log in
// global sequence order. An aggregate whose history contains an event of
// unknown type is skipped and reported, other aggregates still rebuild.
func (p *Projector) RebuildAll(ctx context.Context) error {
	histories := make(map[string]eventstore.StoredEvents)
	order := make([]string, 0)

	fromSequence := eventstore.SequenceNumberUint(1)

	for {
		batch, readErr := p.log.ReadAll(ctx, fromSequence, readAllBatchSize)
		if readErr != nil {
			return readErr
		}

		for _, storedEvent := range batch {
			if _, seen := histories[storedEvent.AggregateID]; !seen {
				order = append(order, storedEvent.AggregateID)
			}

			histories[storedEvent.AggregateID] = append(histories[storedEvent.AggregateID], storedEvent)
		}

		if len(batch) < readAllBatchSize {
			break
		}

		fromSequence = batch[len(batch)-1].SequenceNumber + 1
	}

	var skipped int

	for _, aggregateID := range order {
		row, foldErr := p.foldHistory(histories[aggregateID])
		if foldErr != nil {
			skipped++

			if p.logger != nil {
				p.logger.Error("rebuild skipped aggregate", "aggregate_id", aggregateID, "error", foldErr.Error())
			}

			continue
		}

		if upsertErr := p.store.Upsert(ctx, row); upsertErr != nil {
			return upsertErr
		}
	}

	if skipped > 0 {
		return fmt.Errorf("%w: %d aggregate(s) skipped", ErrRebuildFailed, skipped)
	}

	return nil
}

func (p *Projector) foldHistory(history eventstore.StoredEvents) (readmodel.BookingRow, error) {
	var row readmodel.BookingRow

	for _, storedEvent := range history {
		domainEvent, mapErr := shell.DomainEventFrom(storedEvent)
		if mapErr != nil {
			return readmodel.BookingRow{}, mapErr
		}

		row = applyEvent(row, domainEvent, storedEvent)
	}

	return row, nil
}

// applyEvent is the pure fold step: given the row as of the previous event and
// the next event, it returns the updated row.
func applyEvent(
	row readmodel.BookingRow,
	event core.DomainEvent,
	storedEvent eventstore.StoredEvent,
) readmodel.BookingRow {

	switch e := event.(type) {
	case core.FlightBooked:
		row.BookingID = e.BookingID
		row.Kind = core.KindFlight
		row.Status = core.StatusConfirmed
		row.OfferID = e.OfferID
		row.Departure = e.Departure
		row.Destination = e.Destination
		row.DepartDate = e.DepartDate
		row.ReturnDate = e.ReturnDate
		row.Price = e.Price
		row.Currency = e.Currency
		row.Adults = e.Adults
		row.PaymentMethod = e.PaymentMethod
		row.CreatedAt = e.OccurredAt

	case core.HotelBooked:
		row.BookingID = e.BookingID
		row.Kind = core.KindHotel
		row.Status = core.StatusConfirmed
		row.OfferID = e.OfferID
		row.HotelName = e.HotelName
		row.HotelCity = e.HotelCity
		row.DepartDate = e.CheckIn
		row.ReturnDate = e.CheckOut
		row.Price = e.Price
		row.Currency = e.Currency
		row.Adults = e.Adults
		row.PaymentMethod = e.PaymentMethod
		row.CreatedAt = e.OccurredAt

	case core.PackageBooked:
		row.BookingID = e.BookingID
		row.Kind = core.KindPackage
		row.Status = core.StatusConfirmed
		row.OfferID = e.OfferID
		row.Departure = e.Departure
		row.Destination = e.Destination
		row.DepartDate = e.DepartDate
		row.ReturnDate = e.ReturnDate
		row.HotelName = e.HotelName
		row.HotelCity = e.HotelCity
		row.Price = e.Price
		row.Currency = e.Currency
		row.Adults = e.Adults
		row.PaymentMethod = e.PaymentMethod
		row.CreatedAt = e.OccurredAt

	case core.BookingAmended:
		row.DepartDate = e.StartDate
		row.ReturnDate = e.EndDate
		row.Adults = e.Adults
		row.Price = e.Price

	case core.BookingCancelled:
		row.Status = core.StatusCancelled
		row.CancellationReason = e.Reason
		row.RefundAmount = e.RefundAmount
	}

	row.LastEventID = storedEvent.EventID
	row.LastVersion = storedEvent.Version
	row.UpdatedAt = storedEvent.OccurredAt

	return row
}
