package domain

import (
	"testing"
	"time"
)

func TestSideValid(t *testing.T) {
	if !Buy.Valid() || !Sell.Valid() {
		t.Error("Buy and Sell must be valid sides")
	}
	for _, s := range []Side{0, 2, -2} {
		if s.Valid() {
			t.Errorf("Side(%d).Valid() = true, want false", s)
		}
	}
	if Buy.String() != "BUY" || Sell.String() != "SELL" {
		t.Errorf("Side strings = %q/%q, want BUY/SELL", Buy, Sell)
	}
}

func TestOrderReconcileQuantities(t *testing.T) {
	o := Order{Quantity: 100}
	o.ReconcileQuantities()
	if o.PendingQuantity != 100 {
		t.Errorf("PendingQuantity = %v, want 100", o.PendingQuantity)
	}

	o = Order{Quantity: 100, FilledQuantity: 30, CanceledQuantity: 20}
	o.ReconcileQuantities()
	if o.PendingQuantity != 50 {
		t.Errorf("PendingQuantity = %v, want 50", o.PendingQuantity)
	}
	if got := o.FilledQuantity + o.PendingQuantity + o.CanceledQuantity; got != o.Quantity {
		t.Errorf("quantity identity broken: %v != %v", got, o.Quantity)
	}

	// Over-allocated orders clamp pending at zero instead of going negative.
	o = Order{Quantity: 100, FilledQuantity: 80, CanceledQuantity: 40}
	o.ReconcileQuantities()
	if o.PendingQuantity != 0 {
		t.Errorf("PendingQuantity = %v, want 0", o.PendingQuantity)
	}
}

func TestOrderStatus(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  Status
	}{
		{"fresh order", Order{Quantity: 10, PendingQuantity: 10}, StatusOpen},
		{"fully filled", Order{Quantity: 10, FilledQuantity: 10}, StatusComplete},
		{"fully canceled", Order{Quantity: 10, CanceledQuantity: 10}, StatusCanceled},
		{
			"rejected",
			Order{Quantity: 10, CanceledQuantity: 10, StatusMessage: "REJECTED: insufficient funds"},
			StatusRejected,
		},
		{
			"canceled with message",
			Order{Quantity: 10, CanceledQuantity: 10, StatusMessage: "user requested"},
			StatusCanceled,
		},
		{
			"partial fill then cancel",
			Order{Quantity: 10, FilledQuantity: 4, CanceledQuantity: 6},
			StatusPartialFill,
		},
		{
			"partial cancel still working",
			Order{Quantity: 10, FilledQuantity: 2, CanceledQuantity: 3, PendingQuantity: 5},
			StatusPending,
		},
		{
			"partially filled",
			Order{Quantity: 10, FilledQuantity: 4, PendingQuantity: 6},
			StatusPending,
		},
	}
	for _, tt := range tests {
		if got := tt.order.Status(); got != tt.want {
			t.Errorf("%s: Status() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOrderValue(t *testing.T) {
	o := Order{Side: Buy, FilledQuantity: 10, AveragePrice: 100}
	if got := o.Value(); got != 1000 {
		t.Errorf("buy Value() = %v, want 1000", got)
	}
	o.Side = Sell
	if got := o.Value(); got != -1000 {
		t.Errorf("sell Value() = %v, want -1000", got)
	}
}

func TestTradeValue(t *testing.T) {
	tr := Trade{Symbol: "aapl", Quantity: 50, Price: 120, Side: Sell}
	if got := tr.Value(); got != -6000 {
		t.Errorf("Value() = %v, want -6000", got)
	}
}

func TestPositionHelpers(t *testing.T) {
	p := Position{
		Symbol:       "goog",
		BuyQuantity:  100,
		SellQuantity: 40,
		BuyValue:     10000,
		SellValue:    4400,
	}
	if got := p.AverageBuyPrice(); got != 100 {
		t.Errorf("AverageBuyPrice() = %v, want 100", got)
	}
	if got := p.AverageSellPrice(); got != 110 {
		t.Errorf("AverageSellPrice() = %v, want 110", got)
	}
	if got := p.NetQuantity(); got != 60 {
		t.Errorf("NetQuantity() = %v, want 60", got)
	}
	if got := p.NetValue(); got != 5600 {
		t.Errorf("NetValue() = %v, want 5600", got)
	}

	// Empty positions never divide by zero.
	empty := Position{Symbol: "amzn"}
	if empty.AverageBuyPrice() != 0 || empty.AverageSellPrice() != 0 {
		t.Error("empty position averages should be 0")
	}
}

func TestResponseConstructors(t *testing.T) {
	ts := time.Date(2023, 2, 1, 10, 17, 0, 0, time.UTC)

	order := &Order{OrderID: "abc", Quantity: 10, PendingQuantity: 10}
	ok := SuccessResponse(ts, order)
	if !ok.OK() {
		t.Error("success response should report OK")
	}
	if ok.Data != order || ok.ErrorMsg != "" || !ok.Timestamp.Equal(ts) {
		t.Errorf("unexpected success envelope: %+v", ok)
	}

	fail := FailureResponse(ts, "Found 1 validation error: quantity")
	if fail.OK() {
		t.Error("failure response should not report OK")
	}
	if fail.Data != nil {
		t.Error("failure response must not carry an order")
	}
	if fail.ErrorMsg == "" {
		t.Error("validation failure should carry a message")
	}
}
