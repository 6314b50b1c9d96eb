package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingBooked     BookingStatus = "booked"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

// Booking represents a guest stay.
type Booking struct {
	// ID is the unique identifier for the booking (UUID format).
	ID string

	// GuestName is the name of the primary guest.
	GuestName string

	// CheckIn and CheckOut bound the stay. All rooms of a group booking share them.
	CheckIn  time.Time
	CheckOut time.Time

	// CustomPrice overrides room rates when non-empty.
	// For a group booking it is the total for the whole stay across all rooms.
	// For a single booking it is a rate per night.
	CustomPrice string

	// IsGroupBooking selects RoomIDs over RoomID.
	IsGroupBooking bool

	// RoomID is the booked room for a single booking.
	RoomID string

	// RoomIDs are the booked rooms for a group booking.
	RoomIDs []string

	// AdvanceAmount is the amount already paid by the guest.
	AdvanceAmount string

	Status BookingStatus

	// CreatedAt is the Unix timestamp when the booking was created.
	CreatedAt int64
}

// Closed reports whether the booking can no longer be billed.
func (b *Booking) Closed() bool {
	return b.Status == BookingCheckedOut || b.Status == BookingCancelled
}

// Room represents a bookable room.
type Room struct {
	ID            string
	Number        string
	Type          string
	PricePerNight string
}

// FoodOrder is a restaurant or room-service order charged to a booking.
type FoodOrder struct {
	ID          string
	BookingID   string
	Items       string
	TotalAmount string
	CreatedAt   int64
}

// ExtraService is any other chargeable service on a booking.
type ExtraService struct {
	ID          string
	BookingID   string
	Description string
	Amount      string
	CreatedAt   int64
}

// ChargeOptions holds the tax and service-charge toggles picked at checkout.
type ChargeOptions struct {
	GSTOnRooms           bool
	GSTOnFood            bool
	IncludeServiceCharge bool
}
