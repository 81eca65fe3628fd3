package broker

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"marketsim/internal/sim"
)

func testFake(seed int64) *FakeBroker {
	return NewFakeBroker(
		WithFakeRand(rand.New(rand.NewSource(seed))),
		WithFakeClock(fixedClock),
	)
}

func TestFakeBrokerLTP(t *testing.T) {
	b := testFake(1000)

	got := b.LTP("aapl", 0, 0)
	price, ok := got["aapl"]
	if !ok {
		t.Fatalf("LTP() = %v, missing symbol key", got)
	}
	if math.Abs(price-100) > 100*sim.WalkBound+0.005 {
		t.Errorf("default LTP = %v, want within one walk step of 100", price)
	}

	got = b.LTP("aapl", 0, 150)
	if p := got["aapl"]; p < 100 || p > 150 {
		t.Errorf("LTP with end = %v, want within [100, 150]", p)
	}

	got = b.LTP("goog", 1000, 1200)
	if p := got["goog"]; p < 1000 || p > 1200 {
		t.Errorf("LTP = %v, want within [1000, 1200]", p)
	}
}

func TestFakeBrokerOrderbook(t *testing.T) {
	b := testFake(1000)

	ob := b.Orderbook("aapl", sim.BookParams{})
	book, ok := ob["aapl"]
	if !ok {
		t.Fatal("Orderbook() missing symbol key")
	}
	if len(book.Bid) != 5 || len(book.Ask) != 5 {
		t.Errorf("default depth = %d/%d, want 5/5", len(book.Bid), len(book.Ask))
	}

	ob = b.Orderbook("goog", sim.BookParams{Bid: 400, Ask: 405, Depth: sim.IntPtr(10), Tick: 1})
	book = ob["goog"]
	if len(book.Bid) != 10 {
		t.Fatalf("depth = %d, want 10", len(book.Bid))
	}
	if book.Bid[9].Price != 391 {
		t.Errorf("deepest bid = %v, want 391", book.Bid[9].Price)
	}
	if book.Ask[9].Price != 414 {
		t.Errorf("deepest ask = %v, want 414", book.Ask[9].Price)
	}
}

func TestFakeBrokerLoggerScoped(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := NewFakeBroker(
		WithFakeRand(rand.New(rand.NewSource(1000))),
		WithFakeLogger(logger),
	)
	b.LTP("aapl", 0, 0)

	if got := buf.String(); !strings.Contains(got, `"broker":"FBroker"`) {
		t.Errorf("log output %q missing broker scope", got)
	}
}

func TestFakeBrokerOHLC(t *testing.T) {
	b := testFake(1001)

	quote := b.OHLC("goog", 0, 0, 0)
	q, ok := quote["goog"]
	if !ok {
		t.Fatal("OHLC() missing symbol key")
	}
	if q.Low < 100 || q.High > 110 {
		t.Errorf("default range [%v, %v] outside [100, 110]", q.Low, q.High)
	}

	quote = b.OHLC("aapl", 400, 450, 45000)
	q = quote["aapl"]
	if q.Low < 400 || q.High > 450 {
		t.Errorf("range [%v, %v] outside [400, 450]", q.Low, q.High)
	}
	for name, px := range map[string]float64{"open": q.Open, "close": q.Close, "last_price": q.LastPrice} {
		if px < q.Low || px > q.High {
			t.Errorf("%s = %v outside [%v, %v]", name, px, q.Low, q.High)
		}
	}
	if q.Volume < 22500 || q.Volume >= 90000 {
		t.Errorf("volume = %d, want same order of magnitude as 45000", q.Volume)
	}
}

func TestFakeBrokerPositions(t *testing.T) {
	b := testFake(42)

	got := b.Positions("aapl", "goog")
	if len(got) != 2 {
		t.Fatalf("len(Positions()) = %d, want 2", len(got))
	}
	for symbol, pos := range got {
		if pos.Symbol != symbol {
			t.Errorf("position keyed %q carries symbol %q", symbol, pos.Symbol)
		}
		if pos.BuyQuantity < 0 || pos.SellQuantity < 0 {
			t.Errorf("negative quantities: %+v", pos)
		}
		if pos.BuyQuantity > 0 && pos.AverageBuyPrice() <= 0 {
			t.Errorf("bought position without a buy price: %+v", pos)
		}
	}
}

func TestFakeBrokerTrades(t *testing.T) {
	b := testFake(42)

	trades := b.Trades("aapl", 0, 10)
	if len(trades) != 10 {
		t.Fatalf("len(Trades()) = %d, want 10", len(trades))
	}
	for _, tr := range trades {
		if tr.Symbol != "aapl" {
			t.Errorf("Symbol = %q, want aapl", tr.Symbol)
		}
		if !tr.Side.Valid() || tr.Quantity < 1 {
			t.Errorf("implausible trade: %+v", tr)
		}
		if !tr.Timestamp.Equal(knownTime) {
			t.Errorf("Timestamp = %v, want the injected clock", tr.Timestamp)
		}
	}
}
