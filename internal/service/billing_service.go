package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/hostezee/billing/internal/calculator"
	"github.com/hostezee/billing/internal/middleware"
	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
	"github.com/hostezee/billing/pkg/billingapi"
)

// BillingService implements the Connect BillingService.
// Bills are always recomputed from the current booking records.
type BillingService struct {
	billingapi.UnimplementedBillingServiceHandler
	store     storage.Store
	checkouts *prometheus.CounterVec
}

// NewBillingService creates a BillingService and registers its checkout counter with reg.
func NewBillingService(store storage.Store, reg prometheus.Registerer) *BillingService {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hostezee",
		Name:      "checkouts_total",
		Help:      "Number of completed checkouts, by payment status.",
	}, []string{"payment_status"})
	reg.MustRegister(checkouts)

	return &BillingService{store: store, checkouts: checkouts}
}

// PreviewBill computes the bill of a booking without saving anything.
func (s *BillingService) PreviewBill(ctx context.Context, req *connect.Request[billingapi.PreviewBillRequest]) (*connect.Response[billingapi.PreviewBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	_, b, _, err := s.computeBill(ctx, req.Msg.BookingID, req.Msg.Options)
	if err != nil {
		slog.Error("PreviewBill failed", "booking_id", req.Msg.BookingID, "error", err)
		return nil, storageError(err)
	}

	slog.Debug("Bill previewed",
		"booking_id", req.Msg.BookingID,
		"nights", b.Nights,
		"total", b.TotalAmount.StringFixed(2),
	)
	return connect.NewResponse(&billingapi.PreviewBillResponse{
		Breakdown: toBreakdownMsg(req.Msg.BookingID, b),
	}), nil
}

// checkoutAttempts bounds how often Checkout recomputes a bill whose charges
// changed between computing and saving it.
const checkoutAttempts = 3

// Checkout computes the final bill, stores it and closes the booking.
func (s *BillingService) Checkout(ctx context.Context, req *connect.Request[billingapi.CheckoutRequest]) (*connect.Response[billingapi.CheckoutResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		booking, b, billed, err := s.computeBill(ctx, req.Msg.BookingID, req.Msg.Options)
		if err != nil {
			slog.Error("Checkout failed to compute bill", "booking_id", req.Msg.BookingID, "error", err)
			return nil, storageError(err)
		}
		if booking.Closed() {
			return nil, connect.NewError(connect.CodeFailedPrecondition, storage.ErrBookingClosed)
		}

		bill := newBill(ctx, booking, b, req.Msg)
		err = s.store.CheckoutBooking(ctx, bill, billed)
		if errors.Is(err, storage.ErrChargesChanged) && attempt < checkoutAttempts {
			slog.Warn("Charges changed during checkout, recomputing", "booking_id", booking.ID, "attempt", attempt)
			continue
		}
		if err != nil {
			slog.Error("Checkout failed to save bill", "booking_id", booking.ID, "error", err)
			return nil, storageError(err)
		}
		s.checkouts.WithLabelValues(string(bill.PaymentStatus)).Inc()

		slog.Info("Booking checked out",
			"booking_id", booking.ID,
			"bill_id", bill.ID,
			"total", bill.TotalAmount,
			"balance", bill.BalanceAmount,
			"payment_status", bill.PaymentStatus,
		)
		return connect.NewResponse(&billingapi.CheckoutResponse{
			Bill:      toBillMsg(bill),
			Breakdown: toBreakdownMsg(booking.ID, b),
		}), nil
	}
}

// newBill freezes a breakdown into the record saved at checkout.
func newBill(ctx context.Context, booking *models.Booking, b calculator.BillBreakdown, req *billingapi.CheckoutRequest) *models.Bill {
	bill := &models.Bill{
		BookingID:           booking.ID,
		Nights:              b.Nights,
		RoomCharges:         money(b.RoomCharges),
		FoodCharges:         money(b.FoodCharges),
		ExtraCharges:        money(b.ExtraCharges),
		Subtotal:            money(b.Subtotal),
		RoomGST:             money(b.RoomGST),
		FoodGST:             money(b.FoodGST),
		GSTAmount:           money(b.GSTAmount),
		ServiceChargeAmount: money(b.ServiceChargeAmount),
		TotalAmount:         money(b.TotalAmount),
		AdvancePaid:         money(b.AdvancePaid),
		BalanceAmount:       money(b.BalanceAmount),
		PaymentMethod:       models.PaymentMethod(req.PaymentMethod),
		PaymentStatus:       models.PaymentStatus(req.PaymentStatus),
		PendingReason:       req.PendingReason,
		AmountInWords:       calculator.AmountInWords(b.TotalAmount),
		CreatedBy:           middleware.GetUserID(ctx),
		CreatedAt:           time.Now().Unix(),
	}
	if bill.PaymentStatus != models.PaymentPaid {
		bill.DueDate = req.DueDate
	}
	return bill
}

// GetBill retrieves a saved bill by ID.
func (s *BillingService) GetBill(ctx context.Context, req *connect.Request[billingapi.GetBillRequest]) (*connect.Response[billingapi.GetBillResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Warn("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, storageError(err)
	}

	return connect.NewResponse(&billingapi.GetBillResponse{Bill: toBillMsg(bill)}), nil
}

// ListBillsByBooking returns every bill saved against a booking.
func (s *BillingService) ListBillsByBooking(ctx context.Context, req *connect.Request[billingapi.ListBillsByBookingRequest]) (*connect.Response[billingapi.ListBillsByBookingResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByBooking(ctx, req.Msg.BookingID)
	if err != nil {
		slog.Error("ListBillsByBooking failed", "booking_id", req.Msg.BookingID, "error", err)
		return nil, storageError(err)
	}

	msgs := make([]*billingapi.Bill, len(bills))
	for i := range bills {
		msgs[i] = toBillMsg(bills[i])
	}
	return connect.NewResponse(&billingapi.ListBillsByBookingResponse{Bills: msgs}), nil
}

// computeBill fetches everything a booking is billed for and runs the calculator.
// It also reports how many charge rows went into the bill.
func (s *BillingService) computeBill(ctx context.Context, bookingID string, opts billingapi.ChargeOptions) (*models.Booking, calculator.BillBreakdown, storage.BilledCharges, error) {
	var none calculator.BillBreakdown
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, none, storage.BilledCharges{}, err
	}

	rooms, err := s.store.GetRoomsByIDs(ctx, bookedRoomIDs(booking))
	if err != nil {
		return nil, none, storage.BilledCharges{}, err
	}
	orders, err := s.store.ListFoodOrders(ctx, booking.ID)
	if err != nil {
		return nil, none, storage.BilledCharges{}, err
	}
	services, err := s.store.ListExtraServices(ctx, booking.ID)
	if err != nil {
		return nil, none, storage.BilledCharges{}, err
	}

	b := calculator.ComputeBreakdown(booking, rooms, orders, services, models.ChargeOptions{
		GSTOnRooms:           opts.GSTOnRooms,
		GSTOnFood:            opts.GSTOnFood,
		IncludeServiceCharge: opts.IncludeServiceCharge,
	})
	billed := storage.BilledCharges{FoodOrders: len(orders), ExtraServices: len(services)}
	return booking, b, billed, nil
}

func bookedRoomIDs(booking *models.Booking) []string {
	if booking.IsGroupBooking {
		return booking.RoomIDs
	}
	if booking.RoomID == "" {
		return nil
	}
	return []string{booking.RoomID}
}

// money renders an amount in rupees with paise.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toBreakdownMsg(bookingID string, b calculator.BillBreakdown) *billingapi.BillBreakdown {
	lines := b.Lines()
	msgLines := make([]*billingapi.BillLine, len(lines))
	for i, l := range lines {
		msgLines[i] = &billingapi.BillLine{
			Kind:   string(l.Kind),
			Label:  l.Label,
			Amount: money(l.Amount),
		}
	}

	return &billingapi.BillBreakdown{
		BookingID:           bookingID,
		IsGroupBooking:      b.IsGroupBooking,
		Nights:              b.Nights,
		RoomCount:           b.RoomCount,
		RoomRate:            money(b.RoomRate),
		RoomCharges:         money(b.RoomCharges),
		FoodCharges:         money(b.FoodCharges),
		ExtraCharges:        money(b.ExtraCharges),
		Subtotal:            money(b.Subtotal),
		RoomGST:             money(b.RoomGST),
		FoodGST:             money(b.FoodGST),
		GSTAmount:           money(b.GSTAmount),
		ServiceChargeAmount: money(b.ServiceChargeAmount),
		TotalAmount:         money(b.TotalAmount),
		AdvancePaid:         money(b.AdvancePaid),
		BalanceAmount:       money(b.BalanceAmount),
		AmountInWords:       calculator.AmountInWords(b.TotalAmount),
		Lines:               msgLines,
	}
}

func toBillMsg(bill *models.Bill) *billingapi.Bill {
	return &billingapi.Bill{
		ID:                  bill.ID,
		BookingID:           bill.BookingID,
		Nights:              bill.Nights,
		RoomCharges:         bill.RoomCharges,
		FoodCharges:         bill.FoodCharges,
		ExtraCharges:        bill.ExtraCharges,
		Subtotal:            bill.Subtotal,
		RoomGST:             bill.RoomGST,
		FoodGST:             bill.FoodGST,
		GSTAmount:           bill.GSTAmount,
		ServiceChargeAmount: bill.ServiceChargeAmount,
		TotalAmount:         bill.TotalAmount,
		AdvancePaid:         bill.AdvancePaid,
		BalanceAmount:       bill.BalanceAmount,
		PaymentMethod:       string(bill.PaymentMethod),
		PaymentStatus:       string(bill.PaymentStatus),
		DueDate:             bill.DueDate,
		PendingReason:       bill.PendingReason,
		AmountInWords:       bill.AmountInWords,
		CreatedBy:           bill.CreatedBy,
		CreatedAt:           bill.CreatedAt,
	}
}
