package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	checkIn := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)

	r1 := &models.Room{Number: "101", Type: "Deluxe", PricePerNight: "1500"}
	r2 := &models.Room{Number: "102", Type: "Suite", PricePerNight: "1800.50"}
	for _, r := range []*models.Room{r1, r2} {
		if err := store.CreateRoom(ctx, r); err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
	}

	t.Run("CreateRoom generates ID", func(t *testing.T) {
		if r1.ID == "" || r2.ID == "" {
			t.Error("Expected room IDs to be generated")
		}
	})

	t.Run("GetRoomsByIDs skips unknown IDs", func(t *testing.T) {
		rooms, err := store.GetRoomsByIDs(ctx, []string{r2.ID, "missing", r1.ID})
		if err != nil {
			t.Fatalf("GetRoomsByIDs failed: %v", err)
		}
		if len(rooms) != 2 {
			t.Fatalf("Expected 2 rooms, got %d", len(rooms))
		}
		if rooms[0].Number != "101" || rooms[1].PricePerNight != "1800.50" {
			t.Errorf("Unexpected rooms: %+v", rooms)
		}

		none, err := store.GetRoomsByIDs(ctx, nil)
		if err != nil || len(none) != 0 {
			t.Errorf("Expected no rooms for empty IDs, got %v, %v", none, err)
		}
	})

	t.Run("Group booking round trip", func(t *testing.T) {
		original := &models.Booking{
			GuestName:      "Asha Rao",
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			CustomPrice:    "3000",
			IsGroupBooking: true,
			RoomIDs:        []string{r1.ID, r2.ID},
			AdvanceAmount:  "500",
		}
		if err := store.CreateBooking(ctx, original); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
		if original.ID == "" || original.CreatedAt == 0 {
			t.Error("Expected ID and CreatedAt to be set")
		}
		if original.Status != models.BookingBooked {
			t.Errorf("Status = %s, want %s", original.Status, models.BookingBooked)
		}

		got, err := store.GetBooking(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBooking failed: %v", err)
		}
		if !got.CheckIn.Equal(checkIn) || !got.CheckOut.Equal(checkOut) {
			t.Errorf("Dates mismatch: got %v-%v", got.CheckIn, got.CheckOut)
		}
		if !got.IsGroupBooking || got.CustomPrice != "3000" || got.AdvanceAmount != "500" {
			t.Errorf("Booking fields mismatch: %+v", got)
		}
		if len(got.RoomIDs) != 2 {
			t.Errorf("Expected 2 room IDs, got %d", len(got.RoomIDs))
		}
		if got.RoomID != "" {
			t.Errorf("Expected empty RoomID for group booking, got %q", got.RoomID)
		}
	})

	t.Run("GetBooking returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetBooking(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Food orders and extra services are scoped to their booking", func(t *testing.T) {
		a := &models.Booking{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, RoomID: r1.ID}
		b := &models.Booking{GuestName: "B", CheckIn: checkIn, CheckOut: checkOut, RoomID: r2.ID}
		for _, bk := range []*models.Booking{a, b} {
			if err := store.CreateBooking(ctx, bk); err != nil {
				t.Fatalf("CreateBooking failed: %v", err)
			}
		}

		store.CreateFoodOrder(ctx, &models.FoodOrder{BookingID: a.ID, Items: "Thali x2", TotalAmount: "500"})
		store.CreateFoodOrder(ctx, &models.FoodOrder{BookingID: b.ID, Items: "Tea", TotalAmount: "40"})
		store.CreateExtraService(ctx, &models.ExtraService{BookingID: a.ID, Description: "Laundry", Amount: "200"})

		orders, err := store.ListFoodOrders(ctx, a.ID)
		if err != nil {
			t.Fatalf("ListFoodOrders failed: %v", err)
		}
		if len(orders) != 1 || orders[0].TotalAmount != "500" {
			t.Errorf("Unexpected food orders: %+v", orders)
		}

		services, err := store.ListExtraServices(ctx, a.ID)
		if err != nil {
			t.Fatalf("ListExtraServices failed: %v", err)
		}
		if len(services) != 1 || services[0].Description != "Laundry" {
			t.Errorf("Unexpected extra services: %+v", services)
		}

		none, err := store.ListExtraServices(ctx, b.ID)
		if err != nil || len(none) != 0 {
			t.Errorf("Expected no extra services for B, got %v, %v", none, err)
		}
	})

	t.Run("CheckoutBooking stores bill and closes booking once", func(t *testing.T) {
		booking := &models.Booking{GuestName: "C", CheckIn: checkIn, CheckOut: checkOut, RoomID: r1.ID}
		if err := store.CreateBooking(ctx, booking); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}

		bill := &models.Bill{
			BookingID:     booking.ID,
			Nights:        2,
			RoomCharges:   "3000.00",
			RoomGST:       "150.00",
			FoodGST:       "0.00",
			GSTAmount:     "150.00",
			TotalAmount:   "3150.00",
			BalanceAmount: "3150.00",
			PaymentMethod: models.PaymentUPI,
			PaymentStatus: models.PaymentPaid,
		}
		if err := store.CheckoutBooking(ctx, bill, storage.BilledCharges{}); err != nil {
			t.Fatalf("CheckoutBooking failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.TotalAmount != "3150.00" || got.PaymentMethod != models.PaymentUPI ||
			got.RoomGST != "150.00" || got.FoodGST != "0.00" {
			t.Errorf("Bill mismatch: %+v", got)
		}

		closed, _ := store.GetBooking(ctx, booking.ID)
		if closed.Status != models.BookingCheckedOut {
			t.Errorf("Status = %s, want %s", closed.Status, models.BookingCheckedOut)
		}

		err = store.CheckoutBooking(ctx, &models.Bill{BookingID: booking.ID, PaymentMethod: models.PaymentCash, PaymentStatus: models.PaymentPaid}, storage.BilledCharges{})
		if !errors.Is(err, storage.ErrBookingClosed) {
			t.Errorf("Expected ErrBookingClosed on second checkout, got %v", err)
		}

		bills, err := store.ListBillsByBooking(ctx, booking.ID)
		if err != nil {
			t.Fatalf("ListBillsByBooking failed: %v", err)
		}
		if len(bills) != 1 {
			t.Errorf("Expected 1 bill, got %d", len(bills))
		}
	})

	t.Run("Charges on a closed booking are rejected", func(t *testing.T) {
		booking := &models.Booking{GuestName: "D", CheckIn: checkIn, CheckOut: checkOut, RoomID: r1.ID}
		if err := store.CreateBooking(ctx, booking); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
		bill := &models.Bill{BookingID: booking.ID, PaymentMethod: models.PaymentCash, PaymentStatus: models.PaymentPaid}
		if err := store.CheckoutBooking(ctx, bill, storage.BilledCharges{}); err != nil {
			t.Fatalf("CheckoutBooking failed: %v", err)
		}

		err := store.CreateFoodOrder(ctx, &models.FoodOrder{BookingID: booking.ID, Items: "Tea", TotalAmount: "40"})
		if !errors.Is(err, storage.ErrBookingClosed) {
			t.Errorf("Expected ErrBookingClosed for food order, got %v", err)
		}
		err = store.CreateExtraService(ctx, &models.ExtraService{BookingID: booking.ID, Description: "Laundry", Amount: "200"})
		if !errors.Is(err, storage.ErrBookingClosed) {
			t.Errorf("Expected ErrBookingClosed for extra service, got %v", err)
		}
		err = store.CreateFoodOrder(ctx, &models.FoodOrder{BookingID: "missing", TotalAmount: "40"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unknown booking, got %v", err)
		}

		orders, _ := store.ListFoodOrders(ctx, booking.ID)
		services, _ := store.ListExtraServices(ctx, booking.ID)
		if len(orders) != 0 || len(services) != 0 {
			t.Errorf("Expected no charges on closed booking, got %d orders and %d services", len(orders), len(services))
		}
	})

	t.Run("CheckoutBooking rejects a bill with stale charges", func(t *testing.T) {
		booking := &models.Booking{GuestName: "E", CheckIn: checkIn, CheckOut: checkOut, RoomID: r2.ID}
		if err := store.CreateBooking(ctx, booking); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
		if err := store.CreateFoodOrder(ctx, &models.FoodOrder{BookingID: booking.ID, Items: "Thali", TotalAmount: "250"}); err != nil {
			t.Fatalf("CreateFoodOrder failed: %v", err)
		}
		if err := store.CreateExtraService(ctx, &models.ExtraService{BookingID: booking.ID, Description: "Laundry", Amount: "200"}); err != nil {
			t.Fatalf("CreateExtraService failed: %v", err)
		}

		stale := &models.Bill{BookingID: booking.ID, PaymentMethod: models.PaymentCash, PaymentStatus: models.PaymentPaid}
		err := store.CheckoutBooking(ctx, stale, storage.BilledCharges{FoodOrders: 1})
		if !errors.Is(err, storage.ErrChargesChanged) {
			t.Fatalf("Expected ErrChargesChanged, got %v", err)
		}

		open, _ := store.GetBooking(ctx, booking.ID)
		if open.Status != models.BookingBooked {
			t.Errorf("Status = %s, want booking left open after rollback", open.Status)
		}
		if _, err := store.GetBill(ctx, stale.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected stale bill not to be stored, got %v", err)
		}

		fresh := &models.Bill{BookingID: booking.ID, PaymentMethod: models.PaymentCash, PaymentStatus: models.PaymentPaid}
		if err := store.CheckoutBooking(ctx, fresh, storage.BilledCharges{FoodOrders: 1, ExtraServices: 1}); err != nil {
			t.Errorf("CheckoutBooking with current charges failed: %v", err)
		}
	})

	t.Run("CheckoutBooking on unknown booking returns ErrNotFound", func(t *testing.T) {
		err := store.CheckoutBooking(ctx, &models.Bill{BookingID: "missing"}, storage.BilledCharges{})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Users by email and ID", func(t *testing.T) {
		user := models.NewUser("desk@hostezee.in", "Front Desk", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "desk@hostezee.in")
		if err != nil || byEmail.ID != user.ID {
			t.Errorf("GetUserByEmail = %+v, %v", byEmail, err)
		}
		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil || byID.Role != models.RoleStaff {
			t.Errorf("GetUserByID = %+v, %v", byID, err)
		}

		count, err := store.CountUsers(ctx)
		if err != nil || count != 1 {
			t.Errorf("CountUsers = %d, %v; want 1", count, err)
		}

		if err := store.UpdateUserRole(ctx, user.ID, models.RoleManager); err != nil {
			t.Fatalf("UpdateUserRole failed: %v", err)
		}
		promoted, _ := store.GetUserByID(ctx, user.ID)
		if promoted.Role != models.RoleManager {
			t.Errorf("Role = %s, want %s", promoted.Role, models.RoleManager)
		}
		if err := store.UpdateUserRole(ctx, "missing", models.RoleManager); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		_, err = store.GetUserByEmail(ctx, "nobody@hostezee.in")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestMigrationsAddBillGSTColumns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	old, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// bills as released before GST was split by charge type
	_, err = old.Exec(`CREATE TABLE bills (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL,
    nights INTEGER NOT NULL,
    room_charges TEXT NOT NULL,
    food_charges TEXT NOT NULL,
    extra_charges TEXT NOT NULL,
    subtotal TEXT NOT NULL,
    gst_amount TEXT NOT NULL,
    service_charge_amount TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    advance_paid TEXT NOT NULL,
    balance_amount TEXT NOT NULL,
    payment_method TEXT NOT NULL,
    payment_status TEXT NOT NULL,
    due_date INTEGER NOT NULL DEFAULT 0,
    pending_reason TEXT NOT NULL DEFAULT '',
    amount_in_words TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);
INSERT INTO bills (id, booking_id, nights, room_charges, food_charges, extra_charges, subtotal,
    gst_amount, service_charge_amount, total_amount, advance_paid, balance_amount,
    payment_method, payment_status, created_at)
VALUES ('old-bill', 'old-booking', 1, '1000.00', '0.00', '0.00', '1000.00',
    '50.00', '100.00', '1150.00', '0.00', '1150.00', 'cash', 'paid', 1);`)
	if err != nil {
		t.Fatalf("Failed to create old schema: %v", err)
	}
	old.Close()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to migrate store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	got, err := store.GetBill(context.Background(), "old-bill")
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if got.RoomGST != "0.00" || got.FoodGST != "0.00" || got.GSTAmount != "50.00" {
		t.Errorf("Unexpected migrated bill: %+v", got)
	}

	// a second start must not try to add the columns again
	again, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	again.Close()
}
