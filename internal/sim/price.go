// Package sim generates synthetic market data: bounded random price walks,
// order-book depth ladders, OHLC quotes, and per-instrument tickers. All
// generators draw from an injectable random source so callers can seed a
// private stream for reproducible runs.
package sim

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketsim/internal/domain"
)

// ---------------------------------------------------------------------------
// Randomness
// ---------------------------------------------------------------------------

// Rand is the subset of math/rand a generator draws from. *rand.Rand
// satisfies it, so tests can pass rand.New(rand.NewSource(seed)) for a
// deterministic stream.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Int63n(n int64) int64
}

// processRand forwards to the shared process-wide math/rand source.
type processRand struct{}

func (processRand) Float64() float64     { return rand.Float64() }
func (processRand) Intn(n int) int       { return rand.Intn(n) }
func (processRand) Int63n(n int64) int64 { return rand.Int63n(n) }

// DefaultRand is the shared process-wide random source. It is the default
// for every generator and broker in this package tree.
var DefaultRand Rand = processRand{}

// ---------------------------------------------------------------------------
// Price generation
// ---------------------------------------------------------------------------

// WalkBound is the maximum fractional step of a single price walk move.
// Tunable: the contract is only "a small bounded percentage".
const WalkBound = 0.02

// Defaults applied when a caller passes zero values.
const (
	defaultPrice    = 100.0
	defaultEnd      = 110.0
	defaultTick     = 0.01
	defaultDepth    = 5
	defaultQuantity = 100
	defaultVolume   = 15000
)

// round2 rounds a price to 2 decimals through decimal to keep tick
// arithmetic exact.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// NextPrice returns one random walk step from last, bounded within
// ±WalkBound of it.
func NextPrice(rng Rand, last float64) float64 {
	step := (rng.Float64()*2 - 1) * WalkBound
	return round2(last * (1 + step))
}

// PriceBetween returns a price uniformly drawn from [start, end] rounded to
// 2 decimals. Reversed bounds are swapped rather than rejected. The result
// is clamped so rounding can never escape the inclusive range when a bound
// carries more than two decimals.
func PriceBetween(rng Rand, start, end float64) float64 {
	lo, hi := start, end
	if lo > hi {
		lo, hi = hi, lo
	}
	v := round2(lo + rng.Float64()*(hi-lo))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// ---------------------------------------------------------------------------
// Order book synthesis
// ---------------------------------------------------------------------------

// BookParams controls GenerateOrderBook. Zero values select the defaults:
// bid 100, ask five ticks above the bid, tick 0.01, quantity 100. Depth is
// a pointer so that an explicit 0 stays distinct from "use the default":
// nil means depth 5, and any depth <= 0 yields an empty book.
type BookParams struct {
	Bid      float64
	Ask      float64
	Tick     float64
	Depth    *int
	Quantity int
}

// IntPtr returns a pointer to v, for optional integer parameters such as
// BookParams.Depth.
func IntPtr(v int) *int { return &v }

func (p BookParams) withDefaults() BookParams {
	if p.Bid == 0 {
		p.Bid = defaultPrice
	}
	if p.Tick == 0 {
		p.Tick = defaultTick
	}
	if p.Ask == 0 {
		p.Ask = round2(p.Bid + 5*p.Tick)
	}
	if p.Depth == nil {
		p.Depth = IntPtr(defaultDepth)
	}
	if p.Quantity <= 0 {
		p.Quantity = defaultQuantity
	}
	return p
}

// GenerateOrderBook builds a symmetric depth ladder around the given bid and
// ask. Reversed bid/ask are swapped so the best bid always sits below the
// best ask. A depth <= 0 yields an empty book rather than failing. Level
// quantities are jittered within ±50% of the requested quantity, and each
// level carries a random orders count no larger than its quantity.
func GenerateOrderBook(rng Rand, p BookParams) domain.OrderBook {
	p = p.withDefaults()
	depth := *p.Depth
	if depth <= 0 {
		return domain.OrderBook{}
	}

	bid, ask := p.Bid, p.Ask
	if bid > ask {
		bid, ask = ask, bid
	}

	bidPx := decimal.NewFromFloat(bid)
	askPx := decimal.NewFromFloat(ask)
	tick := decimal.NewFromFloat(p.Tick)

	book := domain.OrderBook{
		Bid: make([]domain.OrderBookLevel, 0, depth),
		Ask: make([]domain.OrderBookLevel, 0, depth),
	}
	for i := 0; i < depth; i++ {
		offset := tick.Mul(decimal.NewFromInt(int64(i)))
		book.Bid = append(book.Bid, bookLevel(rng, bidPx.Sub(offset), p.Quantity))
		book.Ask = append(book.Ask, bookLevel(rng, askPx.Add(offset), p.Quantity))
	}
	return book
}

func bookLevel(rng Rand, price decimal.Decimal, quantity int) domain.OrderBookLevel {
	// Uniform in [quantity/2, quantity*3/2], at least one unit.
	qty := quantity/2 + rng.Intn(quantity+1)
	if qty < 1 {
		qty = 1
	}
	px, _ := price.Float64()
	return domain.OrderBookLevel{
		Price:       px,
		Quantity:    qty,
		OrdersCount: 1 + rng.Intn(qty),
	}
}

// ---------------------------------------------------------------------------
// OHLC synthesis
// ---------------------------------------------------------------------------

// GenerateOHLC builds one consistent quote from the price range
// [start, end]. Low and high are the extrema of five draws, so the ordering
// invariant holds by construction. Volume is jittered within [v/2, 2v),
// preserving the order of magnitude. Zero arguments select the defaults
// 100, 110, and 15000.
func GenerateOHLC(rng Rand, start, end float64, volume int64) domain.OHLC {
	if start == 0 {
		start = defaultPrice
	}
	if end == 0 {
		end = defaultEnd
	}
	if volume <= 0 {
		volume = defaultVolume
	}

	var draws [5]float64
	for i := range draws {
		draws[i] = PriceBetween(rng, start, end)
	}
	low, high := draws[0], draws[0]
	for _, d := range draws[1:] {
		low = min(low, d)
		high = max(high, d)
	}

	return domain.OHLC{
		Open:      draws[1],
		High:      high,
		Low:       low,
		Close:     draws[2],
		LastPrice: draws[3],
		Volume:    volume/2 + rng.Int63n(volume*3/2),
	}
}

// ---------------------------------------------------------------------------
// Trade synthesis
// ---------------------------------------------------------------------------

// GenerateTrade builds one plausible random execution for symbol, priced one
// walk step away from the reference price (default 100).
func GenerateTrade(rng Rand, symbol string, price float64, ts time.Time) domain.Trade {
	if price == 0 {
		price = defaultPrice
	}
	side := domain.Buy
	if rng.Intn(2) == 1 {
		side = domain.Sell
	}
	return domain.Trade{
		TradeID:   newID(),
		OrderID:   newID(),
		Symbol:    symbol,
		Quantity:  float64(1 + rng.Intn(defaultQuantity)),
		Price:     NextPrice(rng, price),
		Side:      side,
		Timestamp: ts,
	}
}

// newID returns a fresh opaque identifier (a dashless UUID).
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
