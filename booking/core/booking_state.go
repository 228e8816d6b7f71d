package core

// Booking lifecycle statuses as derived from the event stream.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking kinds, one per creation event.
const (
	KindFlight  = "flight"
	KindHotel   = "hotel"
	KindPackage = "package"
)

// BookingState is the aggregate state the Decide functions reason about,
// projected from the event history.
type BookingState struct {
	Exists    bool
	Kind      string
	Status    string
	StartDate string
	EndDate   string
	Price     float64
	Adults    uint
}

// ProjectBookingState builds the current state of one booking aggregate by
// replaying all events from its history.
func ProjectBookingState(history DomainEvents) BookingState {
	var s BookingState

	for _, event := range history {
		switch e := event.(type) {
		case FlightBooked:
			s.Exists = true
			s.Kind = KindFlight
			s.Status = StatusConfirmed
			s.StartDate = e.DepartDate
			s.EndDate = e.ReturnDate
			s.Price = e.Price
			s.Adults = e.Adults

		case HotelBooked:
			s.Exists = true
			s.Kind = KindHotel
			s.Status = StatusConfirmed
			s.StartDate = e.CheckIn
			s.EndDate = e.CheckOut
			s.Price = e.Price
			s.Adults = e.Adults

		case PackageBooked:
			s.Exists = true
			s.Kind = KindPackage
			s.Status = StatusConfirmed
			s.StartDate = e.DepartDate
			s.EndDate = e.ReturnDate
			s.Price = e.Price
			s.Adults = e.Adults

		case BookingAmended:
			s.StartDate = e.StartDate
			s.EndDate = e.EndDate
			s.Price = e.Price
			s.Adults = e.Adults

		case BookingCancelled:
			s.Status = StatusCancelled
		}
	}

	return s
}
