package billingapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BookingServiceName is the fully-qualified name of the BookingService.
const BookingServiceName = "hostezee.billing.v1.BookingService"

const (
	BookingServiceCreateRoomProcedure      = "/hostezee.billing.v1.BookingService/CreateRoom"
	BookingServiceCreateBookingProcedure   = "/hostezee.billing.v1.BookingService/CreateBooking"
	BookingServiceGetBookingProcedure      = "/hostezee.billing.v1.BookingService/GetBooking"
	BookingServiceAddFoodOrderProcedure    = "/hostezee.billing.v1.BookingService/AddFoodOrder"
	BookingServiceAddExtraServiceProcedure = "/hostezee.billing.v1.BookingService/AddExtraService"
)

// BookingServiceHandler is implemented by the server side of BookingService.
type BookingServiceHandler interface {
	CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error)
	CreateBooking(context.Context, *connect.Request[CreateBookingRequest]) (*connect.Response[CreateBookingResponse], error)
	GetBooking(context.Context, *connect.Request[GetBookingRequest]) (*connect.Response[GetBookingResponse], error)
	AddFoodOrder(context.Context, *connect.Request[AddFoodOrderRequest]) (*connect.Response[AddFoodOrderResponse], error)
	AddExtraService(context.Context, *connect.Request[AddExtraServiceRequest]) (*connect.Response[AddExtraServiceResponse], error)
}

// NewBookingServiceHandler builds an HTTP handler for the BookingService and
// returns the path prefix to mount it on.
func NewBookingServiceHandler(svc BookingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createRoom := connect.NewUnaryHandler(BookingServiceCreateRoomProcedure, svc.CreateRoom, opts...)
	createBooking := connect.NewUnaryHandler(BookingServiceCreateBookingProcedure, svc.CreateBooking, opts...)
	getBooking := connect.NewUnaryHandler(BookingServiceGetBookingProcedure, svc.GetBooking, opts...)
	addFoodOrder := connect.NewUnaryHandler(BookingServiceAddFoodOrderProcedure, svc.AddFoodOrder, opts...)
	addExtraService := connect.NewUnaryHandler(BookingServiceAddExtraServiceProcedure, svc.AddExtraService, opts...)

	return "/" + BookingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BookingServiceCreateRoomProcedure:
			createRoom.ServeHTTP(w, r)
		case BookingServiceCreateBookingProcedure:
			createBooking.ServeHTTP(w, r)
		case BookingServiceGetBookingProcedure:
			getBooking.ServeHTTP(w, r)
		case BookingServiceAddFoodOrderProcedure:
			addFoodOrder.ServeHTTP(w, r)
		case BookingServiceAddExtraServiceProcedure:
			addExtraService.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BookingServiceClient is a client for the BookingService.
type BookingServiceClient interface {
	CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error)
	CreateBooking(context.Context, *connect.Request[CreateBookingRequest]) (*connect.Response[CreateBookingResponse], error)
	GetBooking(context.Context, *connect.Request[GetBookingRequest]) (*connect.Response[GetBookingResponse], error)
	AddFoodOrder(context.Context, *connect.Request[AddFoodOrderRequest]) (*connect.Response[AddFoodOrderResponse], error)
	AddExtraService(context.Context, *connect.Request[AddExtraServiceRequest]) (*connect.Response[AddExtraServiceResponse], error)
}

// NewBookingServiceClient constructs a client for the BookingService at baseURL.
func NewBookingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BookingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &bookingServiceClient{
		createRoom:      connect.NewClient[CreateRoomRequest, CreateRoomResponse](httpClient, baseURL+BookingServiceCreateRoomProcedure, opts...),
		createBooking:   connect.NewClient[CreateBookingRequest, CreateBookingResponse](httpClient, baseURL+BookingServiceCreateBookingProcedure, opts...),
		getBooking:      connect.NewClient[GetBookingRequest, GetBookingResponse](httpClient, baseURL+BookingServiceGetBookingProcedure, opts...),
		addFoodOrder:    connect.NewClient[AddFoodOrderRequest, AddFoodOrderResponse](httpClient, baseURL+BookingServiceAddFoodOrderProcedure, opts...),
		addExtraService: connect.NewClient[AddExtraServiceRequest, AddExtraServiceResponse](httpClient, baseURL+BookingServiceAddExtraServiceProcedure, opts...),
	}
}

type bookingServiceClient struct {
	createRoom      *connect.Client[CreateRoomRequest, CreateRoomResponse]
	createBooking   *connect.Client[CreateBookingRequest, CreateBookingResponse]
	getBooking      *connect.Client[GetBookingRequest, GetBookingResponse]
	addFoodOrder    *connect.Client[AddFoodOrderRequest, AddFoodOrderResponse]
	addExtraService *connect.Client[AddExtraServiceRequest, AddExtraServiceResponse]
}

func (c *bookingServiceClient) CreateRoom(ctx context.Context, req *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error) {
	return c.createRoom.CallUnary(ctx, req)
}

func (c *bookingServiceClient) CreateBooking(ctx context.Context, req *connect.Request[CreateBookingRequest]) (*connect.Response[CreateBookingResponse], error) {
	return c.createBooking.CallUnary(ctx, req)
}

func (c *bookingServiceClient) GetBooking(ctx context.Context, req *connect.Request[GetBookingRequest]) (*connect.Response[GetBookingResponse], error) {
	return c.getBooking.CallUnary(ctx, req)
}

func (c *bookingServiceClient) AddFoodOrder(ctx context.Context, req *connect.Request[AddFoodOrderRequest]) (*connect.Response[AddFoodOrderResponse], error) {
	return c.addFoodOrder.CallUnary(ctx, req)
}

func (c *bookingServiceClient) AddExtraService(ctx context.Context, req *connect.Request[AddExtraServiceRequest]) (*connect.Response[AddExtraServiceResponse], error) {
	return c.addExtraService.CallUnary(ctx, req)
}

// UnimplementedBookingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBookingServiceHandler struct{}

func (UnimplementedBookingServiceHandler) CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BookingService.CreateRoom is not implemented"))
}

func (UnimplementedBookingServiceHandler) CreateBooking(context.Context, *connect.Request[CreateBookingRequest]) (*connect.Response[CreateBookingResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BookingService.CreateBooking is not implemented"))
}

func (UnimplementedBookingServiceHandler) GetBooking(context.Context, *connect.Request[GetBookingRequest]) (*connect.Response[GetBookingResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BookingService.GetBooking is not implemented"))
}

func (UnimplementedBookingServiceHandler) AddFoodOrder(context.Context, *connect.Request[AddFoodOrderRequest]) (*connect.Response[AddFoodOrderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BookingService.AddFoodOrder is not implemented"))
}

func (UnimplementedBookingServiceHandler) AddExtraService(context.Context, *connect.Request[AddExtraServiceRequest]) (*connect.Response[AddExtraServiceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BookingService.AddExtraService is not implemented"))
}
