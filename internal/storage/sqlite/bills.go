package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
)

const billColumns = `id, booking_id, nights, room_charges, food_charges, extra_charges, subtotal,
	room_gst, food_gst, gst_amount, service_charge_amount, total_amount, advance_paid, balance_amount,
	payment_method, payment_status, due_date, pending_reason, amount_in_words, created_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	bill := &models.Bill{}
	var method, status string
	err := row.Scan(&bill.ID, &bill.BookingID, &bill.Nights, &bill.RoomCharges, &bill.FoodCharges,
		&bill.ExtraCharges, &bill.Subtotal, &bill.RoomGST, &bill.FoodGST, &bill.GSTAmount, &bill.ServiceChargeAmount,
		&bill.TotalAmount, &bill.AdvancePaid, &bill.BalanceAmount, &method, &status,
		&bill.DueDate, &bill.PendingReason, &bill.AmountInWords, &bill.CreatedBy, &bill.CreatedAt)
	if err != nil {
		return nil, err
	}
	bill.PaymentMethod = models.PaymentMethod(method)
	bill.PaymentStatus = models.PaymentStatus(status)
	return bill, nil
}

// CheckoutBooking marks the booking checked out and inserts its bill atomically.
// The charge counts are re-read after the status update, when no guarded charge
// insert can slip in any more.
func (s *SQLiteStore) CheckoutBooking(ctx context.Context, bill *models.Bill, billed storage.BilledCharges) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional update so two concurrent checkouts cannot both succeed
	result, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ? AND status NOT IN (?, ?)",
		string(models.BookingCheckedOut), bill.BookingID,
		string(models.BookingCheckedOut), string(models.BookingCancelled),
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return closedOrMissing(ctx, tx, bill.BookingID)
	}

	var current storage.BilledCharges
	err = tx.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM food_orders WHERE booking_id = ?), (SELECT COUNT(*) FROM extra_services WHERE booking_id = ?)",
		bill.BookingID, bill.BookingID,
	).Scan(&current.FoodOrders, &current.ExtraServices)
	if err != nil {
		return fmt.Errorf("failed to count booking charges: %w", err)
	}
	if current != billed {
		return fmt.Errorf("booking %s billed %+v, has %+v: %w", bill.BookingID, billed, current, storage.ErrChargesChanged)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills ("+billColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		bill.ID, bill.BookingID, bill.Nights, bill.RoomCharges, bill.FoodCharges, bill.ExtraCharges,
		bill.Subtotal, bill.RoomGST, bill.FoodGST, bill.GSTAmount, bill.ServiceChargeAmount, bill.TotalAmount, bill.AdvancePaid,
		bill.BalanceAmount, string(bill.PaymentMethod), string(bill.PaymentStatus), bill.DueDate,
		bill.PendingReason, bill.AmountInWords, bill.CreatedBy, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", billID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBillsByBooking retrieves all bills for a booking, newest first.
func (s *SQLiteStore) ListBillsByBooking(ctx context.Context, bookingID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE booking_id = ? ORDER BY created_at DESC", bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by booking: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}
