package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/hostezee/billing/internal/middleware"
	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
	"github.com/hostezee/billing/pkg/billingapi"
)

// BookingService implements the Connect BookingService.
// It records the rooms, stays and charges that bills are computed from.
type BookingService struct {
	billingapi.UnimplementedBookingServiceHandler
	store storage.Store
}

// NewBookingService creates a new BookingService with the given storage backend.
func NewBookingService(store storage.Store) *BookingService {
	return &BookingService{store: store}
}

// CreateRoom adds a room to the property. Managers and super admins only.
func (s *BookingService) CreateRoom(ctx context.Context, req *connect.Request[billingapi.CreateRoomRequest]) (*connect.Response[billingapi.CreateRoomResponse], error) {
	if !middleware.GetRole(ctx).CanManageRooms() {
		return nil, connect.NewError(connect.CodePermissionDenied, errManagerOnly)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:        strings.TrimSpace(req.Msg.Number),
		Type:          req.Msg.Type,
		PricePerNight: strings.TrimSpace(req.Msg.PricePerNight),
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		slog.Error("CreateRoom failed", "number", room.Number, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Room created", "room_id", room.ID, "number", room.Number)
	return connect.NewResponse(&billingapi.CreateRoomResponse{Room: toRoomMsg(room)}), nil
}

// CreateBooking opens a single or group booking. Every booked room must exist.
func (s *BookingService) CreateBooking(ctx context.Context, req *connect.Request[billingapi.CreateBookingRequest]) (*connect.Response[billingapi.CreateBookingResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		GuestName:      strings.TrimSpace(req.Msg.GuestName),
		CheckIn:        time.Unix(req.Msg.CheckIn, 0).UTC(),
		CheckOut:       time.Unix(req.Msg.CheckOut, 0).UTC(),
		CustomPrice:    strings.TrimSpace(req.Msg.CustomPrice),
		IsGroupBooking: req.Msg.IsGroupBooking,
		AdvanceAmount:  strings.TrimSpace(req.Msg.AdvanceAmount),
	}
	if booking.IsGroupBooking {
		booking.RoomIDs = dedupe(req.Msg.RoomIDs)
		if len(booking.RoomIDs) == 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, errNoRooms)
		}
	} else {
		booking.RoomID = req.Msg.RoomID
	}

	ids := bookedRoomIDs(booking)
	rooms, err := s.store.GetRoomsByIDs(ctx, ids)
	if err != nil {
		slog.Error("CreateBooking failed to load rooms", "error", err)
		return nil, storageError(err)
	}
	if len(rooms) != len(ids) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errUnknownRoom)
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		slog.Error("CreateBooking failed", "guest", booking.GuestName, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Booking created",
		"booking_id", booking.ID,
		"group", booking.IsGroupBooking,
		"rooms", len(rooms),
	)
	return connect.NewResponse(&billingapi.CreateBookingResponse{Booking: toBookingMsg(booking)}), nil
}

// GetBooking returns a booking with its rooms and charges.
func (s *BookingService) GetBooking(ctx context.Context, req *connect.Request[billingapi.GetBookingRequest]) (*connect.Response[billingapi.GetBookingResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	booking, err := s.store.GetBooking(ctx, req.Msg.BookingID)
	if err != nil {
		slog.Warn("GetBooking failed", "booking_id", req.Msg.BookingID, "error", err)
		return nil, storageError(err)
	}
	rooms, err := s.store.GetRoomsByIDs(ctx, bookedRoomIDs(booking))
	if err != nil {
		return nil, storageError(err)
	}
	orders, err := s.store.ListFoodOrders(ctx, booking.ID)
	if err != nil {
		return nil, storageError(err)
	}
	services, err := s.store.ListExtraServices(ctx, booking.ID)
	if err != nil {
		return nil, storageError(err)
	}

	resp := &billingapi.GetBookingResponse{
		Booking:       toBookingMsg(booking),
		Rooms:         make([]*billingapi.Room, len(rooms)),
		FoodOrders:    make([]*billingapi.FoodOrder, len(orders)),
		ExtraServices: make([]*billingapi.ExtraService, len(services)),
	}
	for i := range rooms {
		resp.Rooms[i] = toRoomMsg(&rooms[i])
	}
	for i, o := range orders {
		resp.FoodOrders[i] = &billingapi.FoodOrder{
			ID:          o.ID,
			BookingID:   o.BookingID,
			Items:       o.Items,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		}
	}
	for i, es := range services {
		resp.ExtraServices[i] = toExtraServiceMsg(&es)
	}

	return connect.NewResponse(resp), nil
}

// AddFoodOrder charges a food order to an open booking.
func (s *BookingService) AddFoodOrder(ctx context.Context, req *connect.Request[billingapi.AddFoodOrderRequest]) (*connect.Response[billingapi.AddFoodOrderResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	order := &models.FoodOrder{
		BookingID:   req.Msg.BookingID,
		Items:       req.Msg.Items,
		TotalAmount: strings.TrimSpace(req.Msg.TotalAmount),
	}
	if err := s.store.CreateFoodOrder(ctx, order); err != nil {
		slog.Warn("AddFoodOrder failed", "booking_id", order.BookingID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Food order added", "booking_id", order.BookingID, "amount", order.TotalAmount)
	return connect.NewResponse(&billingapi.AddFoodOrderResponse{
		FoodOrder: &billingapi.FoodOrder{
			ID:          order.ID,
			BookingID:   order.BookingID,
			Items:       order.Items,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		},
	}), nil
}

// AddExtraService charges an extra service (laundry, transport, ...) to an open booking.
func (s *BookingService) AddExtraService(ctx context.Context, req *connect.Request[billingapi.AddExtraServiceRequest]) (*connect.Response[billingapi.AddExtraServiceResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	service := &models.ExtraService{
		BookingID:   req.Msg.BookingID,
		Description: req.Msg.Description,
		Amount:      strings.TrimSpace(req.Msg.Amount),
	}
	if err := s.store.CreateExtraService(ctx, service); err != nil {
		slog.Warn("AddExtraService failed", "booking_id", service.BookingID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Extra service added", "booking_id", service.BookingID, "amount", service.Amount)
	return connect.NewResponse(&billingapi.AddExtraServiceResponse{ExtraService: toExtraServiceMsg(service)}), nil
}

// dedupe drops repeated IDs, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toRoomMsg(room *models.Room) *billingapi.Room {
	return &billingapi.Room{
		ID:            room.ID,
		Number:        room.Number,
		Type:          room.Type,
		PricePerNight: room.PricePerNight,
	}
}

func toBookingMsg(booking *models.Booking) *billingapi.Booking {
	return &billingapi.Booking{
		ID:             booking.ID,
		GuestName:      booking.GuestName,
		CheckIn:        booking.CheckIn.Unix(),
		CheckOut:       booking.CheckOut.Unix(),
		CustomPrice:    booking.CustomPrice,
		IsGroupBooking: booking.IsGroupBooking,
		RoomID:         booking.RoomID,
		RoomIDs:        booking.RoomIDs,
		AdvanceAmount:  booking.AdvanceAmount,
		Status:         string(booking.Status),
		CreatedAt:      booking.CreatedAt,
	}
}

func toExtraServiceMsg(es *models.ExtraService) *billingapi.ExtraService {
	return &billingapi.ExtraService{
		ID:          es.ID,
		BookingID:   es.BookingID,
		Description: es.Description,
		Amount:      es.Amount,
		CreatedAt:   es.CreatedAt,
	}
}
