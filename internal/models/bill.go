package models

// PaymentMethod is how the balance was (or will be) settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus records whether the balance has been collected.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
)

// Bill is the record persisted at checkout.
// Money fields are decimal strings rounded to two places.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// BookingID is the booking this bill closes.
	BookingID string

	Nights              int
	RoomCharges         string
	FoodCharges         string
	ExtraCharges        string
	Subtotal            string
	RoomGST             string
	FoodGST             string
	GSTAmount           string
	ServiceChargeAmount string
	TotalAmount         string
	AdvancePaid         string
	BalanceAmount       string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	// DueDate is the Unix timestamp by which a pending balance is expected. Zero when paid.
	DueDate int64

	// PendingReason explains why the balance was not collected at checkout.
	PendingReason string

	// AmountInWords is the total as printed on the bill.
	AmountInWords string

	// CreatedBy is the staff user who performed the checkout.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}
