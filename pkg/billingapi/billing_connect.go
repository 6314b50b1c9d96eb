package billingapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BillingServiceName is the fully-qualified name of the BillingService.
const BillingServiceName = "hostezee.billing.v1.BillingService"

const (
	BillingServicePreviewBillProcedure        = "/hostezee.billing.v1.BillingService/PreviewBill"
	BillingServiceCheckoutProcedure           = "/hostezee.billing.v1.BillingService/Checkout"
	BillingServiceGetBillProcedure            = "/hostezee.billing.v1.BillingService/GetBill"
	BillingServiceListBillsByBookingProcedure = "/hostezee.billing.v1.BillingService/ListBillsByBooking"
)

// BillingServiceHandler is implemented by the server side of BillingService.
type BillingServiceHandler interface {
	PreviewBill(context.Context, *connect.Request[PreviewBillRequest]) (*connect.Response[PreviewBillResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ListBillsByBooking(context.Context, *connect.Request[ListBillsByBookingRequest]) (*connect.Response[ListBillsByBookingResponse], error)
}

// NewBillingServiceHandler builds an HTTP handler for the BillingService and
// returns the path prefix to mount it on.
func NewBillingServiceHandler(svc BillingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	preview := connect.NewUnaryHandler(BillingServicePreviewBillProcedure, svc.PreviewBill, opts...)
	checkout := connect.NewUnaryHandler(BillingServiceCheckoutProcedure, svc.Checkout, opts...)
	getBill := connect.NewUnaryHandler(BillingServiceGetBillProcedure, svc.GetBill, opts...)
	listBills := connect.NewUnaryHandler(BillingServiceListBillsByBookingProcedure, svc.ListBillsByBooking, opts...)

	return "/" + BillingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillingServicePreviewBillProcedure:
			preview.ServeHTTP(w, r)
		case BillingServiceCheckoutProcedure:
			checkout.ServeHTTP(w, r)
		case BillingServiceGetBillProcedure:
			getBill.ServeHTTP(w, r)
		case BillingServiceListBillsByBookingProcedure:
			listBills.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillingServiceClient is a client for the BillingService.
type BillingServiceClient interface {
	PreviewBill(context.Context, *connect.Request[PreviewBillRequest]) (*connect.Response[PreviewBillResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ListBillsByBooking(context.Context, *connect.Request[ListBillsByBookingRequest]) (*connect.Response[ListBillsByBookingResponse], error)
}

// NewBillingServiceClient constructs a client for the BillingService at baseURL.
func NewBillingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billingServiceClient{
		previewBill:        connect.NewClient[PreviewBillRequest, PreviewBillResponse](httpClient, baseURL+BillingServicePreviewBillProcedure, opts...),
		checkout:           connect.NewClient[CheckoutRequest, CheckoutResponse](httpClient, baseURL+BillingServiceCheckoutProcedure, opts...),
		getBill:            connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+BillingServiceGetBillProcedure, opts...),
		listBillsByBooking: connect.NewClient[ListBillsByBookingRequest, ListBillsByBookingResponse](httpClient, baseURL+BillingServiceListBillsByBookingProcedure, opts...),
	}
}

type billingServiceClient struct {
	previewBill        *connect.Client[PreviewBillRequest, PreviewBillResponse]
	checkout           *connect.Client[CheckoutRequest, CheckoutResponse]
	getBill            *connect.Client[GetBillRequest, GetBillResponse]
	listBillsByBooking *connect.Client[ListBillsByBookingRequest, ListBillsByBookingResponse]
}

func (c *billingServiceClient) PreviewBill(ctx context.Context, req *connect.Request[PreviewBillRequest]) (*connect.Response[PreviewBillResponse], error) {
	return c.previewBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) Checkout(ctx context.Context, req *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error) {
	return c.checkout.CallUnary(ctx, req)
}

func (c *billingServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) ListBillsByBooking(ctx context.Context, req *connect.Request[ListBillsByBookingRequest]) (*connect.Response[ListBillsByBookingResponse], error) {
	return c.listBillsByBooking.CallUnary(ctx, req)
}

// UnimplementedBillingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillingServiceHandler struct{}

func (UnimplementedBillingServiceHandler) PreviewBill(context.Context, *connect.Request[PreviewBillRequest]) (*connect.Response[PreviewBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BillingService.PreviewBill is not implemented"))
}

func (UnimplementedBillingServiceHandler) Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BillingService.Checkout is not implemented"))
}

func (UnimplementedBillingServiceHandler) GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BillingService.GetBill is not implemented"))
}

func (UnimplementedBillingServiceHandler) ListBillsByBooking(context.Context, *connect.Request[ListBillsByBookingRequest]) (*connect.Response[ListBillsByBookingResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("hostezee.billing.v1.BillingService.ListBillsByBooking is not implemented"))
}
