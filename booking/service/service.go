package service

import (
	"context"
	"fmt"

	"github.com/tripmesh/bookingcore/booking/features/command/amendbooking"
	"github.com/tripmesh/bookingcore/booking/features/command/bookflight"
	"github.com/tripmesh/bookingcore/booking/features/command/bookhotel"
	"github.com/tripmesh/bookingcore/booking/features/command/bookpackage"
	"github.com/tripmesh/bookingcore/booking/features/command/cancelbooking"
	"github.com/tripmesh/bookingcore/booking/features/query/getbooking"
	"github.com/tripmesh/bookingcore/booking/projection"
	"github.com/tripmesh/bookingcore/booking/provider"
	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/eventstore"
)

// Command is implemented by every booking command.
type Command interface {
	CommandType() string
}

// Service is the facade over the booking write path: commands in, handler
// results out, plus the read-side query and the replay/audit tooling.
type Service struct {
	log       shell.EventLog
	store     readmodel.Store
	projector *projection.Projector
	searcher  provider.OfferSearcher

	bookFlightHandler    bookflight.CommandHandler
	bookHotelHandler     bookhotel.CommandHandler
	bookPackageHandler   bookpackage.CommandHandler
	amendBookingHandler  amendbooking.CommandHandler
	cancelBookingHandler cancelbooking.CommandHandler
	getBookingHandler    getbooking.QueryHandler
}

// New wires a Service from its collaborators.
func New(
	log shell.EventLog,
	store readmodel.Store,
	providerClient provider.Client,
	logger eventstore.Logger,
) *Service {

	projector := projection.NewProjector(log, store, logger)

	return &Service{
		log:       log,
		store:     store,
		projector: projector,
		searcher:  providerClient,

		bookFlightHandler:    bookflight.NewCommandHandler(log, projector, providerClient),
		bookHotelHandler:     bookhotel.NewCommandHandler(log, projector, providerClient),
		bookPackageHandler:   bookpackage.NewCommandHandler(log, projector, providerClient),
		amendBookingHandler:  amendbooking.NewCommandHandler(log, projector),
		cancelBookingHandler: cancelbooking.NewCommandHandler(log, projector),
		getBookingHandler:    getbooking.NewQueryHandler(store),
	}
}

// SubmitCommand dispatches any booking command to its handler.
func (s *Service) SubmitCommand(ctx context.Context, command Command) (shell.HandlerResult, error) {
	switch c := command.(type) {
	case bookflight.Command:
		return s.bookFlightHandler.Handle(ctx, c)

	case bookhotel.Command:
		return s.bookHotelHandler.Handle(ctx, c)

	case bookpackage.Command:
		return s.bookPackageHandler.Handle(ctx, c)

	case amendbooking.Command:
		return s.amendBookingHandler.Handle(ctx, c)

	case cancelbooking.Command:
		return s.cancelBookingHandler.Handle(ctx, c)

	default:
		return shell.HandlerResult{}, fmt.Errorf("%w: unknown command type %s", shell.ErrValidation, command.CommandType())
	}
}

// GetBooking returns the read model row for one booking.
func (s *Service) GetBooking(ctx context.Context, query getbooking.Query) (readmodel.BookingRow, error) {
	return s.getBookingHandler.Handle(ctx, query)
}

// SearchOffers delegates an offer search to the external provider.
func (s *Service) SearchOffers(ctx context.Context, criteria provider.SearchCriteria) ([]provider.Offer, error) {
	offers, err := s.searcher.SearchOffers(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shell.ErrProvider, err)
	}

	return offers, nil
}

// RebuildReadModel recomputes the read model row of one booking from its
// event history.
func (s *Service) RebuildReadModel(ctx context.Context, bookingID string) error {
	return s.projector.Rebuild(ctx, bookingID)
}

// RebuildAllReadModels recomputes every read model row by replaying the log.
func (s *Service) RebuildAllReadModels(ctx context.Context) error {
	return s.projector.RebuildAll(ctx)
}

// ExportEvents returns events in global append order for audit tooling,
// starting at fromSequence (inclusive). A limit of 0 means no limit.
func (s *Service) ExportEvents(
	ctx context.Context,
	fromSequence eventstore.SequenceNumberUint,
	limit uint,
) (eventstore.StoredEvents, error) {

	return s.log.ReadAll(ctx, fromSequence, limit)
}
