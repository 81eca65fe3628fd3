package domain

import "testing"

func TestOrderBookBest(t *testing.T) {
	book := OrderBook{
		Bid: []OrderBookLevel{{Price: 100, Quantity: 90, OrdersCount: 4}, {Price: 99.99, Quantity: 80, OrdersCount: 2}},
		Ask: []OrderBookLevel{{Price: 100.05, Quantity: 110, OrdersCount: 7}, {Price: 100.06, Quantity: 60, OrdersCount: 1}},
	}
	if got := book.BestBid(); got != 100 {
		t.Errorf("BestBid() = %v, want 100", got)
	}
	if got := book.BestAsk(); got != 100.05 {
		t.Errorf("BestAsk() = %v, want 100.05", got)
	}
	if book.BestBid() >= book.BestAsk() {
		t.Error("best bid must stay below best ask")
	}

	var empty OrderBook
	if empty.BestBid() != 0 || empty.BestAsk() != 0 {
		t.Error("empty book should report 0 for both tops")
	}
}
