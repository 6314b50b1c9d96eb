// Package billingapi defines the wire messages and Connect bindings of the
// Hostezee billing services. Messages are plain structs carried by a JSON codec.
// Money travels as decimal strings and timestamps as Unix seconds.
package billingapi

// ChargeOptions are the toggles picked at checkout.
type ChargeOptions struct {
	GSTOnRooms           bool `json:"gst_on_rooms"`
	GSTOnFood            bool `json:"gst_on_food"`
	IncludeServiceCharge bool `json:"include_service_charge"`
}

// BillLine is one printable row of a bill.
type BillLine struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// BillBreakdown is a computed, unsaved bill.
type BillBreakdown struct {
	BookingID           string      `json:"booking_id"`
	IsGroupBooking      bool        `json:"is_group_booking"`
	Nights              int         `json:"nights"`
	RoomCount           int         `json:"room_count"`
	RoomRate            string      `json:"room_rate"`
	RoomCharges         string      `json:"room_charges"`
	FoodCharges         string      `json:"food_charges"`
	ExtraCharges        string      `json:"extra_charges"`
	Subtotal            string      `json:"subtotal"`
	RoomGST             string      `json:"room_gst"`
	FoodGST             string      `json:"food_gst"`
	GSTAmount           string      `json:"gst_amount"`
	ServiceChargeAmount string      `json:"service_charge_amount"`
	TotalAmount         string      `json:"total_amount"`
	AdvancePaid         string      `json:"advance_paid"`
	BalanceAmount       string      `json:"balance_amount"`
	AmountInWords       string      `json:"amount_in_words"`
	Lines               []*BillLine `json:"lines"`
}

// Bill is a persisted checkout bill.
type Bill struct {
	ID                  string `json:"id"`
	BookingID           string `json:"booking_id"`
	Nights              int    `json:"nights"`
	RoomCharges         string `json:"room_charges"`
	FoodCharges         string `json:"food_charges"`
	ExtraCharges        string `json:"extra_charges"`
	Subtotal            string `json:"subtotal"`
	RoomGST             string `json:"room_gst"`
	FoodGST             string `json:"food_gst"`
	GSTAmount           string `json:"gst_amount"`
	ServiceChargeAmount string `json:"service_charge_amount"`
	TotalAmount         string `json:"total_amount"`
	AdvancePaid         string `json:"advance_paid"`
	BalanceAmount       string `json:"balance_amount"`
	PaymentMethod       string `json:"payment_method"`
	PaymentStatus       string `json:"payment_status"`
	DueDate             int64  `json:"due_date,omitempty"`
	PendingReason       string `json:"pending_reason,omitempty"`
	AmountInWords       string `json:"amount_in_words"`
	CreatedBy           string `json:"created_by"`
	CreatedAt           int64  `json:"created_at"`
}

type PreviewBillRequest struct {
	BookingID string        `json:"booking_id" validate:"required"`
	Options   ChargeOptions `json:"options"`
}

type PreviewBillResponse struct {
	Breakdown *BillBreakdown `json:"breakdown"`
}

// CheckoutRequest closes a booking. A balance that is not fully paid needs a
// due date, and a pending one also needs a reason.
type CheckoutRequest struct {
	BookingID     string        `json:"booking_id" validate:"required"`
	Options       ChargeOptions `json:"options"`
	PaymentMethod string        `json:"payment_method" validate:"required,oneof=cash card upi bank_transfer"`
	PaymentStatus string        `json:"payment_status" validate:"required,oneof=paid pending partial"`
	DueDate       int64         `json:"due_date,omitempty" validate:"required_unless=PaymentStatus paid"`
	PendingReason string        `json:"pending_reason,omitempty" validate:"required_if=PaymentStatus pending"`
}

type CheckoutResponse struct {
	Bill      *Bill          `json:"bill"`
	Breakdown *BillBreakdown `json:"breakdown"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ListBillsByBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type ListBillsByBookingResponse struct {
	Bills []*Bill `json:"bills"`
}

type Room struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	Type          string `json:"type"`
	PricePerNight string `json:"price_per_night"`
}

type Booking struct {
	ID             string   `json:"id"`
	GuestName      string   `json:"guest_name"`
	CheckIn        int64    `json:"check_in"`
	CheckOut       int64    `json:"check_out"`
	CustomPrice    string   `json:"custom_price,omitempty"`
	IsGroupBooking bool     `json:"is_group_booking"`
	RoomID         string   `json:"room_id,omitempty"`
	RoomIDs        []string `json:"room_ids,omitempty"`
	AdvanceAmount  string   `json:"advance_amount,omitempty"`
	Status         string   `json:"status"`
	CreatedAt      int64    `json:"created_at"`
}

type FoodOrder struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	Items       string `json:"items"`
	TotalAmount string `json:"total_amount"`
	CreatedAt   int64  `json:"created_at"`
}

type ExtraService struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CreatedAt   int64  `json:"created_at"`
}

type CreateRoomRequest struct {
	Number        string `json:"number" validate:"required"`
	Type          string `json:"type"`
	PricePerNight string `json:"price_per_night" validate:"required,amount"`
}

type CreateRoomResponse struct {
	Room *Room `json:"room"`
}

// CreateBookingRequest opens a booking. check_out must be after check_in.
type CreateBookingRequest struct {
	GuestName      string   `json:"guest_name" validate:"required"`
	CheckIn        int64    `json:"check_in" validate:"required"`
	CheckOut       int64    `json:"check_out" validate:"required,gtfield=CheckIn"`
	CustomPrice    string   `json:"custom_price,omitempty" validate:"omitempty,amount"`
	IsGroupBooking bool     `json:"is_group_booking"`
	RoomID         string   `json:"room_id,omitempty" validate:"required_if=IsGroupBooking false"`
	RoomIDs        []string `json:"room_ids,omitempty" validate:"required_if=IsGroupBooking true"`
	AdvanceAmount  string   `json:"advance_amount,omitempty" validate:"omitempty,amount"`
}

type CreateBookingResponse struct {
	Booking *Booking `json:"booking"`
}

type GetBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type GetBookingResponse struct {
	Booking       *Booking        `json:"booking"`
	Rooms         []*Room         `json:"rooms"`
	FoodOrders    []*FoodOrder    `json:"food_orders"`
	ExtraServices []*ExtraService `json:"extra_services"`
}

type AddFoodOrderRequest struct {
	BookingID   string `json:"booking_id" validate:"required"`
	Items       string `json:"items"`
	TotalAmount string `json:"total_amount" validate:"required,amount"`
}

type AddFoodOrderResponse struct {
	FoodOrder *FoodOrder `json:"food_order"`
}

type AddExtraServiceRequest struct {
	BookingID   string `json:"booking_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required,amount"`
}

type AddExtraServiceResponse struct {
	ExtraService *ExtraService `json:"extra_service"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// SetUserRoleRequest changes the role of a staff account. Super admins only.
type SetUserRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=staff manager super_admin"`
}

type SetUserRoleResponse struct {
	User *User `json:"user"`
}
