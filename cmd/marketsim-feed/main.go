// marketsim-feed streams synthetic quotes from the simulation engine and
// exercises the virtual order lifecycle, as a demo of the library surface.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketsim/internal/broker"
	"marketsim/internal/config"
	"marketsim/internal/domain"
	"marketsim/internal/sim"
	"marketsim/internal/util"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("MARKETSIM_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	tickers := make([]*sim.Ticker, 0, len(cfg.Tickers))
	for _, tc := range cfg.Tickers {
		opts := []sim.TickerOption{sim.WithMode(sim.ParseTickerMode(tc.Mode))}
		if tc.Token != 0 {
			opts = append(opts, sim.WithToken(tc.Token))
		}
		if tc.InitialPrice > 0 {
			opts = append(opts, sim.WithInitialPrice(tc.InitialPrice))
		}
		tickers = append(tickers, sim.NewTicker(tc.Name, opts...))
	}

	vb, err := broker.NewVirtualBroker(tickers,
		broker.WithFailureRate(cfg.Broker.FailureRate),
		broker.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("failed to create virtual broker: %v", err)
	}
	fb := broker.NewFakeBroker()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("marketsim-feed starting",
		"tickers", len(tickers),
		"interval_ms", cfg.Feed.IntervalMS,
		"failure_rate", vb.FailureRate(),
	)

	ticker := time.NewTicker(time.Duration(cfg.Feed.IntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("marketsim-feed stopping", "orders", len(vb.Orders()))
			return
		case <-ticker.C:
			publish(logger, cfg, vb, fb)
		}
	}
}

// publish logs one synthetic quote per instrument and runs a place/cancel
// round-trip against the first one.
func publish(logger *slog.Logger, cfg *config.Config, vb *broker.VirtualBroker, fb *broker.FakeBroker) {
	for _, t := range vb.Tickers() {
		ltp := t.LTP()
		snap := t.OHLC()
		logger.Info("quote",
			"symbol", t.Name(),
			"ltp", ltp,
			"high", snap.High,
			"low", snap.Low,
		)

		book := fb.Orderbook(t.Name(), sim.BookParams{
			Bid:      ltp,
			Tick:     cfg.Feed.Tick,
			Depth:    sim.IntPtr(cfg.Feed.Depth),
			Quantity: cfg.Feed.Quantity,
		})[t.Name()]
		logger.Debug("book",
			"symbol", t.Name(),
			"best_bid", book.BestBid(),
			"best_ask", book.BestAsk(),
			"depth", len(book.Bid),
		)

		quote := fb.OHLC(t.Name(), snap.Low, snap.High, cfg.Feed.Volume)[t.Name()]
		logger.Debug("ohlc",
			"symbol", t.Name(),
			"open", quote.Open,
			"high", quote.High,
			"low", quote.Low,
			"close", quote.Close,
			"volume", quote.Volume,
		)
	}

	if len(vb.Tickers()) == 0 {
		return
	}
	symbol := vb.Tickers()[0].Name()

	resp := vb.OrderPlace(broker.PlaceRequest{Symbol: symbol, Quantity: 10, Side: domain.Buy})
	if !resp.OK() {
		logger.Warn("order rejected by simulator", "symbol", symbol, "error", resp.ErrorMsg)
		return
	}
	order := resp.Data
	logger.Info("order placed", "order_id", order.OrderID, "status", order.Status().String())

	cancel := vb.OrderCancel(order.OrderID, nil)
	if !cancel.OK() {
		logger.Warn("cancel failed", "order_id", order.OrderID, "error", cancel.ErrorMsg)
		return
	}
	logger.Info("order canceled",
		"order_id", order.OrderID,
		"status", cancel.Data.Status().String(),
		"canceled_quantity", cancel.Data.CanceledQuantity,
	)
}
