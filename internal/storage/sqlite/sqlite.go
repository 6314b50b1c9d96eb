// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRoom persists a new room.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rooms (id, number, type, price_per_night) VALUES (?, ?, ?, ?)",
		room.ID, room.Number, room.Type, room.PricePerNight,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// GetRoomsByIDs retrieves rooms by ID, ordered by room number.
func (s *SQLiteStore) GetRoomsByIDs(ctx context.Context, ids []string) ([]models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, number, type, price_per_night FROM rooms WHERE id IN ("+placeholders+") ORDER BY number",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.Type, &r.PricePerNight); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// CreateBooking persists a new booking and its group rooms.
func (s *SQLiteStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt == 0 {
		booking.CreatedAt = time.Now().Unix()
	}
	if booking.Status == "" {
		booking.Status = models.BookingBooked
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomID sql.NullString
	if booking.RoomID != "" {
		roomID = sql.NullString{String: booking.RoomID, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (id, guest_name, check_in, check_out, custom_price, is_group_booking, room_id, advance_amount, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.GuestName, booking.CheckIn.Unix(), booking.CheckOut.Unix(),
		booking.CustomPrice, booking.IsGroupBooking, roomID, booking.AdvanceAmount,
		string(booking.Status), booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	for _, id := range booking.RoomIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO booking_rooms (booking_id, room_id) VALUES (?, ?)",
			booking.ID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert booking room: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBooking retrieves a booking by ID.
func (s *SQLiteStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking := &models.Booking{}
	var checkIn, checkOut int64
	var roomID sql.NullString
	var status string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, guest_name, check_in, check_out, custom_price, is_group_booking, room_id, advance_amount, status, created_at
		 FROM bookings WHERE id = ?`,
		bookingID,
	).Scan(&booking.ID, &booking.GuestName, &checkIn, &checkOut, &booking.CustomPrice,
		&booking.IsGroupBooking, &roomID, &booking.AdvanceAmount, &status, &booking.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	booking.CheckIn = time.Unix(checkIn, 0).UTC()
	booking.CheckOut = time.Unix(checkOut, 0).UTC()
	booking.Status = models.BookingStatus(status)
	if roomID.Valid {
		booking.RoomID = roomID.String
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT room_id FROM booking_rooms WHERE booking_id = ? ORDER BY room_id",
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan booking room: %w", err)
		}
		booking.RoomIDs = append(booking.RoomIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booking rooms: %w", err)
	}

	return booking, nil
}

// CreateFoodOrder persists a food order against a booking.
func (s *SQLiteStore) CreateFoodOrder(ctx context.Context, order *models.FoodOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}

	err := s.insertCharge(ctx, order.BookingID,
		"INSERT INTO food_orders (id, booking_id, items, total_amount, created_at) SELECT ?, ?, ?, ?, ?"+whereBookingOpen,
		order.ID, order.BookingID, order.Items, order.TotalAmount, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food order: %w", err)
	}
	return nil
}

// ListFoodOrders retrieves all food orders of a booking, oldest first.
func (s *SQLiteStore) ListFoodOrders(ctx context.Context, bookingID string) ([]models.FoodOrder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, booking_id, items, total_amount, created_at FROM food_orders WHERE booking_id = ? ORDER BY created_at, id",
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list food orders: %w", err)
	}
	defer rows.Close()

	var orders []models.FoodOrder
	for rows.Next() {
		var o models.FoodOrder
		if err := rows.Scan(&o.ID, &o.BookingID, &o.Items, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food orders: %w", err)
	}

	return orders, nil
}

// CreateExtraService persists an extra service against a booking.
func (s *SQLiteStore) CreateExtraService(ctx context.Context, service *models.ExtraService) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	if service.CreatedAt == 0 {
		service.CreatedAt = time.Now().Unix()
	}

	err := s.insertCharge(ctx, service.BookingID,
		"INSERT INTO extra_services (id, booking_id, description, amount, created_at) SELECT ?, ?, ?, ?, ?"+whereBookingOpen,
		service.ID, service.BookingID, service.Description, service.Amount, service.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert extra service: %w", err)
	}
	return nil
}

// whereBookingOpen guards a charge INSERT ... SELECT. Its parameters are
// appended by insertCharge.
const whereBookingOpen = " WHERE EXISTS (SELECT 1 FROM bookings WHERE id = ? AND status NOT IN (?, ?))"

// insertCharge runs a guarded charge insert in one statement, so a charge
// cannot land on a booking that checkout has already closed.
func (s *SQLiteStore) insertCharge(ctx context.Context, bookingID, query string, args ...any) error {
	args = append(args, bookingID, string(models.BookingCheckedOut), string(models.BookingCancelled))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return closedOrMissing(ctx, s.db, bookingID)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// closedOrMissing explains why a guarded write on an open booking touched no rows.
func closedOrMissing(ctx context.Context, q queryRower, bookingID string) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM bookings WHERE id = ?", bookingID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("booking %s: %w", bookingID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check booking existence: %w", err)
	}
	return fmt.Errorf("booking %s: %w", bookingID, storage.ErrBookingClosed)
}

// ListExtraServices retrieves all extra services of a booking, oldest first.
func (s *SQLiteStore) ListExtraServices(ctx context.Context, bookingID string) ([]models.ExtraService, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, booking_id, description, amount, created_at FROM extra_services WHERE booking_id = ? ORDER BY created_at, id",
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list extra services: %w", err)
	}
	defer rows.Close()

	var services []models.ExtraService
	for rows.Next() {
		var es models.ExtraService
		if err := rows.Scan(&es.ID, &es.BookingID, &es.Description, &es.Amount, &es.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extra service: %w", err)
		}
		services = append(services, es)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extra services: %w", err)
	}

	return services, nil
}
