package sim

import "marketsim/internal/domain"

// TickerMode selects how a Ticker produces prices.
type TickerMode int

const (
	// TickerModeRandom advances the price walk on every LTP call.
	TickerModeRandom TickerMode = iota
	// TickerModeManual holds the last price until SetLTP is called.
	TickerModeManual
)

func (m TickerMode) String() string {
	switch m {
	case TickerModeRandom:
		return "RANDOM"
	case TickerModeManual:
		return "MANUAL"
	default:
		return "UNKNOWN"
	}
}

// ParseTickerMode maps a config string to a TickerMode. Unknown strings fall
// back to RANDOM.
func ParseTickerMode(s string) TickerMode {
	switch s {
	case "manual", "MANUAL":
		return TickerModeManual
	default:
		return TickerModeRandom
	}
}

// Ticker is the per-instrument price state: a random walk anchored at the
// previous last-traded price, with running high/low extrema over the whole
// history including the initial price.
//
// Invariant: Low() <= last traded price <= High() after every update.
type Ticker struct {
	name         string
	token        int
	initialPrice float64
	mode         TickerMode
	rng          Rand

	high float64
	low  float64
	ltp  float64
}

// TickerOption configures a Ticker at construction.
type TickerOption func(*Ticker)

// WithToken sets the optional numeric instrument id.
func WithToken(token int) TickerOption {
	return func(t *Ticker) { t.token = token }
}

// WithInitialPrice sets the starting price (default 100).
func WithInitialPrice(price float64) TickerOption {
	return func(t *Ticker) { t.initialPrice = price }
}

// WithMode sets the generation mode (default RANDOM).
func WithMode(mode TickerMode) TickerOption {
	return func(t *Ticker) { t.mode = mode }
}

// WithTickerRand sets the random source (default the shared process source).
func WithTickerRand(rng Rand) TickerOption {
	return func(t *Ticker) { t.rng = rng }
}

// NewTicker creates a Ticker with high, low, and last all at the initial
// price.
func NewTicker(name string, opts ...TickerOption) *Ticker {
	t := &Ticker{
		name:         name,
		initialPrice: defaultPrice,
		mode:         TickerModeRandom,
		rng:          DefaultRand,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.high = t.initialPrice
	t.low = t.initialPrice
	t.ltp = t.initialPrice
	return t
}

// Name returns the instrument identifier.
func (t *Ticker) Name() string { return t.name }

// Token returns the optional numeric id, 0 when unset.
func (t *Ticker) Token() int { return t.token }

// InitialPrice returns the price the ticker started at.
func (t *Ticker) InitialPrice() float64 { return t.initialPrice }

// Mode returns the current generation mode.
func (t *Ticker) Mode() TickerMode { return t.mode }

// SetMode switches the generation mode.
func (t *Ticker) SetMode(mode TickerMode) { t.mode = mode }

// IsRandom reports whether the ticker advances on its own.
func (t *Ticker) IsRandom() bool { return t.mode == TickerModeRandom }

// LTP returns the last traded price. In RANDOM mode every call draws a new
// walk step and updates the running extrema; in MANUAL mode the price is
// returned unchanged.
func (t *Ticker) LTP() float64 {
	if t.mode != TickerModeRandom {
		return t.ltp
	}
	t.observe(NextPrice(t.rng, t.ltp))
	return t.ltp
}

// SetLTP records an externally supplied price, keeping the extrema current.
// Intended for MANUAL mode.
func (t *Ticker) SetLTP(price float64) {
	t.observe(price)
}

// High returns the highest price observed so far.
func (t *Ticker) High() float64 { return t.high }

// Low returns the lowest price observed so far.
func (t *Ticker) Low() float64 { return t.low }

// OHLC returns a snapshot quote: open is the initial price, close and last
// the current price.
func (t *Ticker) OHLC() domain.OHLC {
	return domain.OHLC{
		Open:      t.initialPrice,
		High:      t.high,
		Low:       t.low,
		Close:     t.ltp,
		LastPrice: t.ltp,
	}
}

func (t *Ticker) observe(price float64) {
	if price > t.high {
		t.high = price
	}
	if price < t.low {
		t.low = price
	}
	t.ltp = price
}
