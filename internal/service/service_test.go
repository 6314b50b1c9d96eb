package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/hostezee/billing/internal/auth"
	"github.com/hostezee/billing/internal/middleware"
	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage/sqlite"
	"github.com/hostezee/billing/pkg/billingapi"
)

const testUserID = "desk-user-1"

// testAuthInterceptor returns a Connect interceptor that runs every call as a manager with testUserID.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, testUserID)
			ctx = context.WithValue(ctx, middleware.RoleKey, models.RoleManager)
			return next(ctx, req)
		}
	}
}

type testServer struct {
	store   *sqlite.SQLiteStore
	billing billingapi.BillingServiceClient
	booking billingapi.BookingServiceClient
	auth    billingapi.AuthServiceClient
	jwt     *auth.JWTManager
}

// setupTestServer serves all three services over a temp SQLite database.
// Billing and booking calls run as testUserID; auth calls go through OptionalAuth.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	billingPath, billingHandler := billingapi.NewBillingServiceHandler(
		NewBillingService(store, prometheus.NewRegistry()),
		connect.WithInterceptors(testAuthInterceptor()),
	)
	bookingPath, bookingHandler := billingapi.NewBookingServiceHandler(
		NewBookingService(store),
		connect.WithInterceptors(testAuthInterceptor()),
	)
	authPath, authHandler := billingapi.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	)

	mux := http.NewServeMux()
	mux.Handle(billingPath, billingHandler)
	mux.Handle(bookingPath, bookingHandler)
	mux.Handle(authPath, authHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		store:   store,
		billing: billingapi.NewBillingServiceClient(http.DefaultClient, server.URL),
		booking: billingapi.NewBookingServiceClient(http.DefaultClient, server.URL),
		auth:    billingapi.NewAuthServiceClient(http.DefaultClient, server.URL),
		jwt:     jwtManager,
	}
}

var testCheckIn = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func (ts *testServer) createRoom(t *testing.T, number, price string) string {
	t.Helper()
	resp, err := ts.booking.CreateRoom(context.Background(), connect.NewRequest(&billingapi.CreateRoomRequest{
		Number:        number,
		Type:          "Deluxe",
		PricePerNight: price,
	}))
	require.NoError(t, err)
	return resp.Msg.Room.ID
}

func (ts *testServer) createBooking(t *testing.T, req *billingapi.CreateBookingRequest) string {
	t.Helper()
	resp, err := ts.booking.CreateBooking(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg.Booking.ID
}

// stay returns check-in and check-out timestamps for a stay of the given nights.
func stay(nights int) (int64, int64) {
	return testCheckIn.Unix(), testCheckIn.AddDate(0, 0, nights).Unix()
}
