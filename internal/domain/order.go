// Package domain defines the core data types shared across the simulator:
// orders, trades, positions, synthesized market data, and the response
// envelope returned by broker operations.
package domain

import (
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

// Side is the direction of an order or trade. The numeric values follow the
// broker-wire convention of 1 for buy and -1 for sell, so Side doubles as a
// sign multiplier in value calculations.
type Side int

const (
	Buy  Side = 1
	Sell Side = -1
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Status is the lifecycle state of an order. It is derived from the order's
// quantity breakdown rather than stored, so it can never disagree with the
// quantities.
type Status int

const (
	StatusComplete Status = iota + 1
	StatusRejected
	StatusCanceled
	StatusPartialFill // partially filled and the remainder canceled
	StatusOpen        // all quantity still pending
	StatusPending     // partially filled, waiting to complete
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "COMPLETE"
	case StatusRejected:
		return "REJECTED"
	case StatusCanceled:
		return "CANCELED"
	case StatusPartialFill:
		return "PARTIAL_FILL"
	case StatusOpen:
		return "OPEN"
	case StatusPending:
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// Order is a simulated broker order. Price 0 means a market order.
//
// Invariant: Quantity == FilledQuantity + PendingQuantity + CanceledQuantity.
// ReconcileQuantities restores the identity after quantity edits.
type Order struct {
	OrderID           string    `json:"order_id"`
	Symbol            string    `json:"symbol"`
	Quantity          float64   `json:"quantity"`
	Side              Side      `json:"side"`
	Price             float64   `json:"price,omitempty"`
	TriggerPrice      float64   `json:"trigger_price,omitempty"`
	AveragePrice      float64   `json:"average_price,omitempty"`
	FilledQuantity    float64   `json:"filled_quantity"`
	PendingQuantity   float64   `json:"pending_quantity"`
	CanceledQuantity  float64   `json:"canceled_quantity"`
	Timestamp         time.Time `json:"timestamp"`
	ExchangeOrderID   string    `json:"exchange_order_id,omitempty"`
	ExchangeTimestamp time.Time `json:"exchange_timestamp,omitzero"`
	StatusMessage     string    `json:"status_message,omitempty"`
}

// ReconcileQuantities recomputes PendingQuantity so that the quantity
// identity holds, clamping at zero when filled and canceled already cover
// the full quantity.
func (o *Order) ReconcileQuantities() {
	pending := o.Quantity - o.FilledQuantity - o.CanceledQuantity
	if pending < 0 {
		pending = 0
	}
	o.PendingQuantity = pending
}

// Status derives the lifecycle state from the quantity breakdown. A status
// message starting with "REJ" marks a fully-canceled order as rejected.
func (o *Order) Status() Status {
	switch {
	case o.Quantity == o.FilledQuantity:
		return StatusComplete
	case o.Quantity == o.CanceledQuantity:
		if strings.HasPrefix(strings.ToUpper(o.StatusMessage), "REJ") {
			return StatusRejected
		}
		return StatusCanceled
	case o.CanceledQuantity > 0:
		if o.CanceledQuantity+o.FilledQuantity == o.Quantity {
			return StatusPartialFill
		}
		return StatusPending
	case o.PendingQuantity > 0:
		if o.FilledQuantity > 0 {
			return StatusPending
		}
		return StatusOpen
	default:
		return StatusOpen
	}
}

// Value returns the signed filled value of the order: negative for sells,
// positive for buys.
func (o *Order) Value() float64 {
	return float64(o.Side) * o.FilledQuantity * o.AveragePrice
}

// ---------------------------------------------------------------------------
// Trade
// ---------------------------------------------------------------------------

// Trade is a single simulated execution against an order.
type Trade struct {
	TradeID   string    `json:"trade_id"`
	OrderID   string    `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Side      Side      `json:"side"`
	Timestamp time.Time `json:"timestamp"`
}

// Value returns the signed traded value: negative for sells, positive for
// buys.
func (t Trade) Value() float64 {
	return float64(t.Side) * t.Quantity * t.Price
}

// ---------------------------------------------------------------------------
// Position
// ---------------------------------------------------------------------------

// Position aggregates the bought and sold quantity and value for one symbol.
// Zero quantities or values are treated as "no data" by the helpers.
type Position struct {
	Symbol       string  `json:"symbol"`
	BuyQuantity  float64 `json:"buy_quantity,omitempty"`
	SellQuantity float64 `json:"sell_quantity,omitempty"`
	BuyValue     float64 `json:"buy_value,omitempty"`
	SellValue    float64 `json:"sell_value,omitempty"`
}

// AverageBuyPrice returns the volume-weighted buy price, or 0 when there is
// no buy quantity or value.
func (p Position) AverageBuyPrice() float64 {
	if p.BuyQuantity == 0 || p.BuyValue == 0 {
		return 0
	}
	return p.BuyValue / p.BuyQuantity
}

// AverageSellPrice returns the volume-weighted sell price, or 0 when there
// is no sell quantity or value.
func (p Position) AverageSellPrice() float64 {
	if p.SellQuantity == 0 || p.SellValue == 0 {
		return 0
	}
	return p.SellValue / p.SellQuantity
}

// NetQuantity is bought minus sold quantity; negative means net short.
func (p Position) NetQuantity() float64 {
	return p.BuyQuantity - p.SellQuantity
}

// NetValue is buy value minus sell value; negative means a net sell value.
func (p Position) NetValue() float64 {
	return p.BuyValue - p.SellValue
}
