// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/hostezee/billing/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBookingClosed is returned when checking out a booking that is
	// already checked out or cancelled.
	ErrBookingClosed = errors.New("booking already checked out or cancelled")

	// ErrChargesChanged is returned by CheckoutBooking when food orders or
	// extra services were added after the bill was computed.
	ErrChargesChanged = errors.New("booking charges changed during checkout")
)

// BilledCharges counts the charge rows a bill was computed from.
// Charges are append-only, so equal counts mean the same set of rows.
type BilledCharges struct {
	FoodOrders    int
	ExtraServices int
}

// BookingStore supplies the records a bill is computed from.
type BookingStore interface {
	// CreateRoom persists a room. room.ID is generated when empty.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoomsByIDs returns the rooms with the given IDs. Unknown IDs are skipped.
	GetRoomsByIDs(ctx context.Context, ids []string) ([]models.Room, error)

	// CreateBooking persists a booking with its rooms.
	// booking.ID, Status and CreatedAt are populated when empty.
	CreateBooking(ctx context.Context, booking *models.Booking) error

	// GetBooking retrieves a booking by ID, including its group room IDs.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	// CreateFoodOrder and CreateExtraService only insert while the booking is open.
	// They return ErrNotFound for an unknown booking and ErrBookingClosed for a closed one.
	CreateFoodOrder(ctx context.Context, order *models.FoodOrder) error
	ListFoodOrders(ctx context.Context, bookingID string) ([]models.FoodOrder, error)

	CreateExtraService(ctx context.Context, service *models.ExtraService) error
	ListExtraServices(ctx context.Context, bookingID string) ([]models.ExtraService, error)
}

// BillStore persists checkout bills.
type BillStore interface {
	// CheckoutBooking stores the bill and marks its booking checked out in a
	// single transaction. Returns ErrBookingClosed if the booking was already closed
	// and ErrChargesChanged if the booking no longer has exactly the billed charges.
	CheckoutBooking(ctx context.Context, bill *models.Bill, billed BilledCharges) error

	GetBill(ctx context.Context, billID string) (*models.Bill, error)
	ListBillsByBooking(ctx context.Context, bookingID string) ([]*models.Bill, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	BookingStore
	BillStore

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) error

	// Close releases any resources held by the store.
	Close() error
}
