package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hostezee/billing/internal/models"
)

// Charge policy. Both rates apply to pre-tax amounts and never compound.
const (
	GSTPercent           = 5
	ServiceChargePercent = 10
)

var (
	gstRate           = decimal.New(GSTPercent, -2)
	serviceChargeRate = decimal.New(ServiceChargePercent, -2)
)

const day = 24 * time.Hour

// BillBreakdown is the itemized result of a bill computation.
// It is recomputed from current booking data on every call and never stored as is.
type BillBreakdown struct {
	IsGroupBooking bool
	Nights         int
	RoomCount      int

	// RoomRate is the per-night rate shown next to the room line.
	// Zero for group bookings, which are labelled by room count instead.
	RoomRate decimal.Decimal

	RoomCharges  decimal.Decimal
	FoodCharges  decimal.Decimal
	ExtraCharges decimal.Decimal
	Subtotal     decimal.Decimal

	RoomGST   decimal.Decimal
	FoodGST   decimal.Decimal
	GSTAmount decimal.Decimal

	ServiceChargeAmount decimal.Decimal
	TotalAmount         decimal.Decimal

	AdvancePaid decimal.Decimal

	// BalanceAmount is negative when the guest overpaid.
	BalanceAmount decimal.Decimal

	Options models.ChargeOptions
}

// ComputeNights returns the number of nights between check-in and check-out,
// rounding any partial day up. The result is never below 1.
func ComputeNights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	nights := int(diff / day)
	if diff%day > 0 {
		nights++
	}
	if nights < 1 {
		return 1
	}
	return nights
}

// ComputeRoomCharges returns the room charges for the whole stay.
//
// CustomPrice means different things depending on the booking type, and bills
// already issued depend on it:
//   - group booking: CustomPrice is the total for the stay, split evenly across
//     the group's rooms, so the rooms together contribute CustomPrice * nights
//   - single booking: CustomPrice is a rate per night
func ComputeRoomCharges(booking *models.Booking, rooms []models.Room) decimal.Decimal {
	nights := decimal.NewFromInt(int64(ComputeNights(booking.CheckIn, booking.CheckOut)))
	custom, hasCustom := parseAmount(booking.CustomPrice)

	if booking.IsGroupBooking {
		group := groupRooms(booking, rooms)
		if len(group) == 0 {
			return decimal.Zero
		}
		if hasCustom {
			// (custom / n) * nights summed over n rooms, without the rounding of the division
			return custom.Mul(nights)
		}
		total := decimal.Zero
		for _, r := range group {
			total = total.Add(ParseAmount(r.PricePerNight).Mul(nights))
		}
		return total
	}

	return singleRoomRate(booking, rooms).Mul(nights)
}

// ComputeFoodCharges sums the food orders belonging to the booking.
func ComputeFoodCharges(booking *models.Booking, orders []models.FoodOrder) decimal.Decimal {
	amounts := make([]string, 0, len(orders))
	for _, o := range orders {
		if belongsTo(booking, o.BookingID) {
			amounts = append(amounts, o.TotalAmount)
		}
	}
	return sumAmounts(amounts)
}

// ComputeExtraCharges sums the extra services belonging to the booking.
func ComputeExtraCharges(booking *models.Booking, services []models.ExtraService) decimal.Decimal {
	amounts := make([]string, 0, len(services))
	for _, s := range services {
		if belongsTo(booking, s.BookingID) {
			amounts = append(amounts, s.Amount)
		}
	}
	return sumAmounts(amounts)
}

// ComputeBreakdown computes the full bill for a booking.
// All arithmetic is exact decimal; rounding to paise is left to presentation.
func ComputeBreakdown(
	booking *models.Booking,
	rooms []models.Room,
	orders []models.FoodOrder,
	services []models.ExtraService,
	opts models.ChargeOptions,
) BillBreakdown {
	b := BillBreakdown{
		IsGroupBooking: booking.IsGroupBooking,
		Nights:         ComputeNights(booking.CheckIn, booking.CheckOut),
		RoomRate:       decimal.Zero,
		RoomGST:        decimal.Zero,
		FoodGST:        decimal.Zero,
		Options:        opts,
	}

	if booking.IsGroupBooking {
		b.RoomCount = len(groupRooms(booking, rooms))
	} else {
		b.RoomCount = 1
		b.RoomRate = singleRoomRate(booking, rooms)
	}

	b.RoomCharges = ComputeRoomCharges(booking, rooms)
	b.FoodCharges = ComputeFoodCharges(booking, orders)
	b.ExtraCharges = ComputeExtraCharges(booking, services)
	b.Subtotal = b.RoomCharges.Add(b.FoodCharges).Add(b.ExtraCharges)

	if opts.GSTOnRooms {
		b.RoomGST = b.RoomCharges.Mul(gstRate)
	}
	if opts.GSTOnFood {
		b.FoodGST = b.FoodCharges.Mul(gstRate)
	}
	b.GSTAmount = b.RoomGST.Add(b.FoodGST)

	b.ServiceChargeAmount = decimal.Zero
	if opts.IncludeServiceCharge {
		b.ServiceChargeAmount = b.RoomCharges.Mul(serviceChargeRate)
	}

	b.TotalAmount = b.Subtotal.Add(b.GSTAmount).Add(b.ServiceChargeAmount)
	b.AdvancePaid = ParseAmount(booking.AdvanceAmount)
	b.BalanceAmount = b.TotalAmount.Sub(b.AdvancePaid)

	return b
}

// groupRooms returns the rooms that are part of a group booking.
// When the booking lists no room IDs, every supplied room is taken as part of the group.
func groupRooms(booking *models.Booking, rooms []models.Room) []models.Room {
	if len(booking.RoomIDs) == 0 {
		return rooms
	}
	ids := make(map[string]bool, len(booking.RoomIDs))
	for _, id := range booking.RoomIDs {
		ids[id] = true
	}
	var group []models.Room
	for _, r := range rooms {
		if ids[r.ID] {
			group = append(group, r)
		}
	}
	return group
}

// singleRoomRate returns the per-night rate of a single booking: the custom
// price when set, otherwise the booked room's own price.
func singleRoomRate(booking *models.Booking, rooms []models.Room) decimal.Decimal {
	if custom, ok := parseAmount(booking.CustomPrice); ok {
		return custom
	}
	for _, r := range rooms {
		if booking.RoomID == "" || r.ID == booking.RoomID {
			return ParseAmount(r.PricePerNight)
		}
	}
	return decimal.Zero
}

// belongsTo reports whether a charge record is billed to the booking.
// Records without a booking reference are assumed to be pre-filtered by the caller.
func belongsTo(booking *models.Booking, bookingID string) bool {
	return bookingID == "" || booking.ID == "" || bookingID == booking.ID
}
