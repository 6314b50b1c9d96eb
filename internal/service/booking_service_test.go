package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostezee/billing/pkg/billingapi"
)

func TestCreateRoom(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	resp, err := ts.booking.CreateRoom(ctx, connect.NewRequest(&billingapi.CreateRoomRequest{
		Number:        " 101 ",
		Type:          "Suite",
		PricePerNight: "2499.50",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.Room.ID)
	assert.Equal(t, "101", resp.Msg.Room.Number)
	assert.Equal(t, "2499.50", resp.Msg.Room.PricePerNight)

	for _, price := range []string{"", "abc", "-100", "1e3", "12.505", "10000000000000000000", "1e2000000000"} {
		_, err := ts.booking.CreateRoom(ctx, connect.NewRequest(&billingapi.CreateRoomRequest{
			Number:        "102",
			PricePerNight: price,
		}))
		require.Error(t, err, "price %q", price)
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err), "price %q", price)
	}
}

func TestCreateBooking(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	roomID := ts.createRoom(t, "101", "2000")
	otherID := ts.createRoom(t, "102", "2500")
	checkIn, checkOut := stay(2)

	t.Run("single booking", func(t *testing.T) {
		resp, err := ts.booking.CreateBooking(ctx, connect.NewRequest(&billingapi.CreateBookingRequest{
			GuestName:     "Ravi Kumar",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomID:        roomID,
			AdvanceAmount: "500",
		}))
		require.NoError(t, err)

		b := resp.Msg.Booking
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, "booked", b.Status)
		assert.Equal(t, roomID, b.RoomID)
		assert.Equal(t, checkIn, b.CheckIn)
		assert.Equal(t, checkOut, b.CheckOut)
	})

	t.Run("group booking drops duplicate rooms", func(t *testing.T) {
		resp, err := ts.booking.CreateBooking(ctx, connect.NewRequest(&billingapi.CreateBookingRequest{
			GuestName:      "Tour Group",
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			IsGroupBooking: true,
			RoomIDs:        []string{roomID, otherID, roomID},
		}))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{roomID, otherID}, resp.Msg.Booking.RoomIDs)
	})

	invalid := []struct {
		name string
		req  *billingapi.CreateBookingRequest
	}{
		{
			name: "check-out equals check-in",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkIn, RoomID: roomID},
		},
		{
			name: "check-out before check-in",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkOut, CheckOut: checkIn, RoomID: roomID},
		},
		{
			name: "single booking without room",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut},
		},
		{
			name: "group booking without rooms",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, IsGroupBooking: true, RoomIDs: []string{}},
		},
		{
			name: "unknown room",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, RoomID: "missing"},
		},
		{
			name: "negative advance",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, RoomID: roomID, AdvanceAmount: "-1"},
		},
		{
			name: "exponent advance",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, RoomID: roomID, AdvanceAmount: "1e2000000000"},
		},
		{
			name: "malformed custom price",
			req:  &billingapi.CreateBookingRequest{GuestName: "A", CheckIn: checkIn, CheckOut: checkOut, RoomID: roomID, CustomPrice: "1,500"},
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.booking.CreateBooking(ctx, connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestGetBooking(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	bookingID := setupSingleStay(t, ts)

	_, err := ts.booking.AddExtraService(ctx, connect.NewRequest(&billingapi.AddExtraServiceRequest{
		BookingID:   bookingID,
		Description: "Airport pickup",
		Amount:      "750",
	}))
	require.NoError(t, err)

	resp, err := ts.booking.GetBooking(ctx, connect.NewRequest(&billingapi.GetBookingRequest{BookingID: bookingID}))
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", resp.Msg.Booking.GuestName)
	require.Len(t, resp.Msg.Rooms, 1)
	assert.Equal(t, "2000", resp.Msg.Rooms[0].PricePerNight)
	require.Len(t, resp.Msg.FoodOrders, 1)
	assert.Equal(t, "500", resp.Msg.FoodOrders[0].TotalAmount)
	require.Len(t, resp.Msg.ExtraServices, 1)
	assert.Equal(t, "Airport pickup", resp.Msg.ExtraServices[0].Description)

	_, err = ts.booking.GetBooking(ctx, connect.NewRequest(&billingapi.GetBookingRequest{BookingID: "missing"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestAddCharges_UnknownBooking(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, err := ts.booking.AddFoodOrder(ctx, connect.NewRequest(&billingapi.AddFoodOrderRequest{
		BookingID:   "missing",
		TotalAmount: "100",
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = ts.booking.AddExtraService(ctx, connect.NewRequest(&billingapi.AddExtraServiceRequest{
		BookingID:   "missing",
		Description: "Laundry",
		Amount:      "100",
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
