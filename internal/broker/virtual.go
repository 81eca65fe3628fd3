package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketsim/internal/domain"
	"marketsim/internal/sim"
)

// Compile-time interface check.
var _ OrderBroker = (*VirtualBroker)(nil)

// ErrFailureRate rejects failure-rate assignments outside [0, 1].
var ErrFailureRate = errors.New("failure rate must be within [0, 1]")

// DefaultFailureRate is the probability a valid request fails anyway,
// modeling a generic broker/network fault.
const DefaultFailureRate = 0.001

// VirtualBroker simulates the synchronous order lifecycle of a brokerage:
// place, modify, cancel, and query, with request validation and random
// failure injection. All state is in-memory for the life of the process and
// is not safe for concurrent mutation; callers needing that must serialize
// externally.
type VirtualBroker struct {
	name        string
	tickers     []*sim.Ticker
	failureRate float64
	rng         sim.Rand
	now         func() time.Time
	log         *slog.Logger

	orders   map[string]*domain.Order
	orderIDs []string // placement order
}

// VirtualOption configures a VirtualBroker at construction. Options that
// validate return an error, which NewVirtualBroker propagates.
type VirtualOption func(*VirtualBroker) error

// WithFailureRate sets the failure-injection probability. Values outside
// [0, 1] are rejected.
func WithFailureRate(rate float64) VirtualOption {
	return func(b *VirtualBroker) error { return b.SetFailureRate(rate) }
}

// WithRand sets the random source used for the failure dice (default the
// shared process source).
func WithRand(rng sim.Rand) VirtualOption {
	return func(b *VirtualBroker) error {
		b.rng = rng
		return nil
	}
}

// WithClock sets the wall-clock source stamped onto responses (default
// time.Now). Inject a fixed clock for deterministic tests.
func WithClock(now func() time.Time) VirtualOption {
	return func(b *VirtualBroker) error {
		b.now = now
		return nil
	}
}

// WithLogger sets the structured logger (default slog.Default).
func WithLogger(log *slog.Logger) VirtualOption {
	return func(b *VirtualBroker) error {
		b.log = log.With("broker", b.name)
		return nil
	}
}

// NewVirtualBroker creates a VirtualBroker over the given informational
// ticker list. The tickers provide symbol context only; order correctness
// does not depend on them.
func NewVirtualBroker(tickers []*sim.Ticker, opts ...VirtualOption) (*VirtualBroker, error) {
	b := &VirtualBroker{
		name:        "VBroker",
		tickers:     tickers,
		failureRate: DefaultFailureRate,
		rng:         sim.DefaultRand,
		now:         time.Now,
		orders:      make(map[string]*domain.Order),
	}
	b.log = slog.Default().With("broker", b.name)
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Name returns "VBroker".
func (b *VirtualBroker) Name() string { return b.name }

// FailureRate returns the current failure-injection probability.
func (b *VirtualBroker) FailureRate() float64 { return b.failureRate }

// SetFailureRate assigns a new failure-injection probability, rejecting
// values outside [0, 1] at the point of assignment.
func (b *VirtualBroker) SetFailureRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("%w: %v", ErrFailureRate, rate)
	}
	b.failureRate = rate
	return nil
}

// IsFailure rolls the failure dice: true with probability FailureRate on
// each evaluation. A rate of 0 never fails, a rate of 1 always fails.
func (b *VirtualBroker) IsFailure() bool {
	return b.rng.Float64() < b.failureRate
}

// Ticker returns the broker's ticker for symbol, if it holds one.
func (b *VirtualBroker) Ticker(symbol string) (*sim.Ticker, bool) {
	for _, t := range b.tickers {
		if t.Name() == symbol {
			return t, true
		}
	}
	return nil, false
}

// Tickers returns the informational ticker list.
func (b *VirtualBroker) Tickers() []*sim.Ticker { return b.tickers }

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// placeRules is the static table of required-field predicates for a
// placement request.
var placeRules = []struct {
	field string
	ok    func(PlaceRequest) bool
}{
	{"symbol", func(r PlaceRequest) bool { return r.Symbol != "" }},
	{"quantity", func(r PlaceRequest) bool { return r.Quantity > 0 }},
	{"side", func(r PlaceRequest) bool { return r.Side.Valid() }},
}

func validatePlace(req PlaceRequest) []string {
	var bad []string
	for _, rule := range placeRules {
		if !rule.ok(req) {
			bad = append(bad, rule.field)
		}
	}
	return bad
}

func validationMessage(fields []string) string {
	noun := "errors"
	if len(fields) == 1 {
		noun = "error"
	}
	return fmt.Sprintf("Found %d validation %s: %s", len(fields), noun, strings.Join(fields, ", "))
}

// ---------------------------------------------------------------------------
// Lifecycle operations
// ---------------------------------------------------------------------------

// OrderPlace validates the request, rolls the failure dice, and on success
// stores and returns a new open order with the full quantity pending.
// Validation runs before the dice, so a malformed request always fails
// deterministically regardless of the failure rate.
func (b *VirtualBroker) OrderPlace(req PlaceRequest) domain.Response {
	if req.Stub != nil {
		return *req.Stub
	}
	ts := b.now()

	if bad := validatePlace(req); len(bad) > 0 {
		msg := validationMessage(bad)
		b.log.Warn("order rejected", "reason", msg)
		return domain.FailureResponse(ts, msg)
	}
	if b.IsFailure() {
		return domain.FailureResponse(ts, "")
	}

	order := &domain.Order{
		OrderID:   newOrderID(),
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Side:      req.Side,
		Timestamp: ts,
	}
	if req.Price != nil {
		order.Price = *req.Price
	}
	if req.TriggerPrice != nil {
		order.TriggerPrice = *req.TriggerPrice
	}
	order.ReconcileQuantities()

	b.orders[order.OrderID] = order
	b.orderIDs = append(b.orderIDs, order.OrderID)
	b.log.Debug("order placed",
		"order_id", order.OrderID,
		"symbol", order.Symbol,
		"side", order.Side.String(),
		"quantity", order.Quantity,
	)
	return domain.SuccessResponse(ts, order)
}

// OrderModify applies the non-nil fields of req to the stored order in
// place, so the change is visible through every reference to it. A quantity
// change re-derives the pending quantity.
func (b *VirtualBroker) OrderModify(orderID string, req ModifyRequest) domain.Response {
	if req.Stub != nil {
		return *req.Stub
	}
	ts := b.now()

	order, ok := b.orders[orderID]
	if !ok {
		return domain.FailureResponse(ts, fmt.Sprintf("order %s not found", orderID))
	}
	if b.IsFailure() {
		return domain.FailureResponse(ts, "")
	}

	if req.Quantity != nil {
		order.Quantity = *req.Quantity
		order.ReconcileQuantities()
	}
	if req.Price != nil {
		order.Price = *req.Price
	}
	if req.TriggerPrice != nil {
		order.TriggerPrice = *req.TriggerPrice
	}
	b.log.Debug("order modified", "order_id", orderID)
	return domain.SuccessResponse(ts, order)
}

// OrderCancel moves the order's entire pending quantity into canceled. The
// derived status becomes CANCELED, or PARTIAL_FILL when fills exist.
func (b *VirtualBroker) OrderCancel(orderID string, stub *domain.Response) domain.Response {
	if stub != nil {
		return *stub
	}
	ts := b.now()

	order, ok := b.orders[orderID]
	if !ok {
		return domain.FailureResponse(ts, fmt.Sprintf("order %s not found", orderID))
	}
	if b.IsFailure() {
		return domain.FailureResponse(ts, "")
	}

	order.CanceledQuantity += order.PendingQuantity
	order.PendingQuantity = 0
	b.log.Debug("order canceled", "order_id", orderID, "canceled_quantity", order.CanceledQuantity)
	return domain.SuccessResponse(ts, order)
}

// Get is a direct store lookup: no envelope, no failure injection.
func (b *VirtualBroker) Get(orderID string) (*domain.Order, bool) {
	order, ok := b.orders[orderID]
	return order, ok
}

// Orders returns the stored orders in placement order.
func (b *VirtualBroker) Orders() []*domain.Order {
	out := make([]*domain.Order, 0, len(b.orderIDs))
	for _, id := range b.orderIDs {
		out = append(out, b.orders[id])
	}
	return out
}

// newOrderID allocates a fresh opaque order id (a dashless UUID).
func newOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
