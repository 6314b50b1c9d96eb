package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineKind identifies a bill line independent of its label.
type LineKind string

const (
	LineRoom          LineKind = "room"
	LineFood          LineKind = "food"
	LineExtra         LineKind = "extra"
	LineSubtotal      LineKind = "subtotal"
	LineRoomGST       LineKind = "room_gst"
	LineFoodGST       LineKind = "food_gst"
	LineServiceCharge LineKind = "service_charge"
	LineTotal         LineKind = "total"
	LineAdvance       LineKind = "advance"
	LineBalance       LineKind = "balance"
)

// Line is one printable row of a bill.
type Line struct {
	Kind   LineKind
	Label  string
	Amount decimal.Decimal
}

// Lines returns the rows of the bill in print order.
// GST rows appear only when non-zero, the service charge row only when it was
// requested and the advance row only when something was paid in advance.
func (b BillBreakdown) Lines() []Line {
	lines := []Line{
		{Kind: LineRoom, Label: b.roomLabel(), Amount: b.RoomCharges},
		{Kind: LineFood, Label: "Food Charges", Amount: b.FoodCharges},
		{Kind: LineExtra, Label: "Extra Services", Amount: b.ExtraCharges},
		{Kind: LineSubtotal, Label: "Subtotal", Amount: b.Subtotal},
	}
	if !b.RoomGST.IsZero() {
		lines = append(lines, Line{Kind: LineRoomGST, Label: fmt.Sprintf("GST on Rooms (%d%%)", GSTPercent), Amount: b.RoomGST})
	}
	if !b.FoodGST.IsZero() {
		lines = append(lines, Line{Kind: LineFoodGST, Label: fmt.Sprintf("GST on Food (%d%%)", GSTPercent), Amount: b.FoodGST})
	}
	if b.Options.IncludeServiceCharge {
		lines = append(lines, Line{Kind: LineServiceCharge, Label: fmt.Sprintf("Service Charge (%d%%)", ServiceChargePercent), Amount: b.ServiceChargeAmount})
	}
	lines = append(lines, Line{Kind: LineTotal, Label: "Total Amount", Amount: b.TotalAmount})
	if !b.AdvancePaid.IsZero() {
		lines = append(lines, Line{Kind: LineAdvance, Label: "Advance Paid", Amount: b.AdvancePaid})
	}
	return append(lines, Line{Kind: LineBalance, Label: "Balance Due", Amount: b.BalanceAmount})
}

func (b BillBreakdown) roomLabel() string {
	if b.IsGroupBooking {
		return fmt.Sprintf("Room Charges (%d %s × %d %s)",
			b.RoomCount, plural(b.RoomCount, "room"), b.Nights, plural(b.Nights, "night"))
	}
	return fmt.Sprintf("Room Charges (%d %s × %s)",
		b.Nights, plural(b.Nights, "night"), b.RoomRate.StringFixed(2))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
