// Package broker provides the simulated broker surfaces consumed by
// strategy code: VirtualBroker drives the synchronous order lifecycle with
// validation and random failure injection, FakeBroker serves synthesized
// market data.
package broker

import (
	"marketsim/internal/domain"
	"marketsim/internal/sim"
)

// OrderBroker is the order-lifecycle surface. Every operation returns a
// Response envelope; Get is a pure read outside the envelope.
type OrderBroker interface {
	// Name returns the broker identifier (e.g. "VBroker").
	Name() string

	// OrderPlace validates the request, rolls the failure dice, and stores a
	// new open order on success.
	OrderPlace(req PlaceRequest) domain.Response

	// OrderModify applies the supplied fields to a stored open order.
	OrderModify(orderID string, req ModifyRequest) domain.Response

	// OrderCancel moves the order's pending quantity into canceled.
	OrderCancel(orderID string, stub *domain.Response) domain.Response

	// Get looks up a stored order by id. The second return value reports
	// whether the order exists.
	Get(orderID string) (*domain.Order, bool)
}

// Quoter is the read-only market-data surface. Each call returns a mapping
// keyed by symbol, mimicking a quote-API response shape.
type Quoter interface {
	Name() string

	// LTP returns one synthesized last traded price per symbol.
	LTP(symbol string, start, end float64) map[string]float64

	// Orderbook returns a synthesized depth ladder per symbol.
	Orderbook(symbol string, params sim.BookParams) map[string]domain.OrderBook

	// OHLC returns a synthesized quote per symbol.
	OHLC(symbol string, start, end float64, volume int64) map[string]domain.OHLC
}

// PlaceRequest carries the fields of an order placement. Price and
// TriggerPrice are optional; a nil Price means a market order.
type PlaceRequest struct {
	Symbol       string
	Quantity     float64
	Side         domain.Side
	Price        *float64
	TriggerPrice *float64

	// Stub, when non-nil, is returned verbatim and no other logic runs.
	// It exists purely as a test/mocking escape hatch.
	Stub *domain.Response
}

// ModifyRequest carries the editable fields of an order modification. Only
// non-nil fields are applied.
type ModifyRequest struct {
	Quantity     *float64
	Price        *float64
	TriggerPrice *float64

	// Stub, when non-nil, is returned verbatim. Test escape hatch.
	Stub *domain.Response
}
