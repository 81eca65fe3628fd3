package broker

import (
	"log/slog"
	"time"

	"marketsim/internal/domain"
	"marketsim/internal/sim"
)

// Compile-time interface check.
var _ Quoter = (*FakeBroker)(nil)

// FakeBroker is a stateless quote facade over the synthesizers. Every call
// derives fresh data; nothing is retained between calls. Zero-valued
// parameters select the synthesizer defaults.
type FakeBroker struct {
	name string
	rng  sim.Rand
	now  func() time.Time
	log  *slog.Logger
}

// FakeOption configures a FakeBroker at construction.
type FakeOption func(*FakeBroker)

// WithFakeRand sets the random source (default the shared process source).
func WithFakeRand(rng sim.Rand) FakeOption {
	return func(b *FakeBroker) { b.rng = rng }
}

// WithFakeClock sets the clock stamped onto generated trades (default
// time.Now).
func WithFakeClock(now func() time.Time) FakeOption {
	return func(b *FakeBroker) { b.now = now }
}

// WithFakeLogger sets the structured logger (default slog.Default).
func WithFakeLogger(log *slog.Logger) FakeOption {
	return func(b *FakeBroker) { b.log = log.With("broker", b.name) }
}

// NewFakeBroker creates a FakeBroker.
func NewFakeBroker(opts ...FakeOption) *FakeBroker {
	b := &FakeBroker{
		name: "FBroker",
		rng:  sim.DefaultRand,
		now:  time.Now,
	}
	b.log = slog.Default().With("broker", b.name)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns "FBroker".
func (b *FakeBroker) Name() string { return b.name }

// LTP returns a synthesized last traded price keyed by symbol. With end 0
// the price is one walk step from start (default 100); otherwise it is
// drawn uniformly from [start, end].
func (b *FakeBroker) LTP(symbol string, start, end float64) map[string]float64 {
	if start == 0 {
		start = 100
	}
	var price float64
	if end == 0 {
		price = sim.NextPrice(b.rng, start)
	} else {
		price = sim.PriceBetween(b.rng, start, end)
	}
	b.log.Debug("ltp synthesized", "symbol", symbol, "price", price)
	return map[string]float64{symbol: price}
}

// Orderbook returns a synthesized depth ladder keyed by symbol.
func (b *FakeBroker) Orderbook(symbol string, params sim.BookParams) map[string]domain.OrderBook {
	book := sim.GenerateOrderBook(b.rng, params)
	b.log.Debug("orderbook synthesized", "symbol", symbol, "depth", len(book.Bid))
	return map[string]domain.OrderBook{symbol: book}
}

// OHLC returns a synthesized quote keyed by symbol.
func (b *FakeBroker) OHLC(symbol string, start, end float64, volume int64) map[string]domain.OHLC {
	quote := sim.GenerateOHLC(b.rng, start, end, volume)
	b.log.Debug("ohlc synthesized", "symbol", symbol, "low", quote.Low, "high", quote.High)
	return map[string]domain.OHLC{symbol: quote}
}

// Positions returns one random plausible position per symbol: bought and
// sold quantity up to 200 units each, valued near the default price.
func (b *FakeBroker) Positions(symbols ...string) map[string]domain.Position {
	out := make(map[string]domain.Position, len(symbols))
	for _, symbol := range symbols {
		buyQty := float64(b.rng.Intn(201))
		sellQty := float64(b.rng.Intn(201))
		out[symbol] = domain.Position{
			Symbol:       symbol,
			BuyQuantity:  buyQty,
			SellQuantity: sellQty,
			BuyValue:     buyQty * sim.PriceBetween(b.rng, 95, 105),
			SellValue:    sellQty * sim.PriceBetween(b.rng, 95, 105),
		}
	}
	return out
}

// Trades returns n random executions for symbol, each priced one walk step
// from the reference price (0 selects the default).
func (b *FakeBroker) Trades(symbol string, price float64, n int) []domain.Trade {
	trades := make([]domain.Trade, 0, n)
	for i := 0; i < n; i++ {
		trades = append(trades, sim.GenerateTrade(b.rng, symbol, price, b.now()))
	}
	return trades
}
