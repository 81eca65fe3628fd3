package domain

// OrderBookLevel is one price level of a synthesized depth ladder.
//
// Invariant: 1 <= OrdersCount <= Quantity (every order carries at least one
// unit).
type OrderBookLevel struct {
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	OrdersCount int     `json:"orders_count"`
}

// OrderBook is a symmetric bid/ask ladder. Bid levels descend in price from
// the best bid, ask levels ascend from the best ask, and both sides carry
// the same depth.
type OrderBook struct {
	Bid []OrderBookLevel `json:"bid"`
	Ask []OrderBookLevel `json:"ask"`
}

// BestBid returns the top bid price, or 0 for an empty book.
func (b OrderBook) BestBid() float64 {
	if len(b.Bid) == 0 {
		return 0
	}
	return b.Bid[0].Price
}

// BestAsk returns the top ask price, or 0 for an empty book.
func (b OrderBook) BestAsk() float64 {
	if len(b.Ask) == 0 {
		return 0
	}
	return b.Ask[0].Price
}

// OHLC is a single synthesized quote.
//
// Invariant: Low <= Open, Close, LastPrice <= High and Volume >= 0.
type OHLC struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	LastPrice float64 `json:"last_price"`
	Volume    int64   `json:"volume"`
}
