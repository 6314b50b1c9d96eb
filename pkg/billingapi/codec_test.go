package billingapi

import (
	"strings"
	"testing"
)

func TestJSONCodec(t *testing.T) {
	codec := jsonCodec{}
	if codec.Name() != "json" {
		t.Fatalf("Name() = %q, want json", codec.Name())
	}

	data, err := codec.Marshal(&CheckoutRequest{
		BookingID:     "b1",
		Options:       ChargeOptions{GSTOnRooms: true},
		PaymentMethod: "upi",
		PaymentStatus: "paid",
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	body := string(data)
	for _, want := range []string{`"booking_id":"b1"`, `"gst_on_rooms":true`, `"payment_method":"upi"`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %s in %s", want, body)
		}
	}
	if strings.Contains(body, "due_date") || strings.Contains(body, "pending_reason") {
		t.Errorf("Expected empty optional fields to be omitted: %s", body)
	}

	var got PreviewBillRequest
	if err := codec.Unmarshal([]byte(`{"booking_id":"b2","options":{"include_service_charge":true}}`), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.BookingID != "b2" || !got.Options.IncludeServiceCharge || got.Options.GSTOnFood {
		t.Errorf("Unexpected request: %+v", got)
	}
}
