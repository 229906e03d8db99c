package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

type countingSink struct {
	mu      sync.Mutex
	matched int64
	trades  int
}

func (c *countingSink) OnTrade(t exchange.Trade) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matched += t.Qty
	c.trades++
}

func TestSimulationConservesQuantity(t *testing.T) {
	ex := exchange.NewExchange(nil)
	sink := &countingSink{}
	ex.RegisterSink(sink)

	cfg := &Config{
		Symbols:  []string{"AAPL", "GOOG"},
		Traders:  8,
		Orders:   500,
		MinPrice: 100,
		MaxPrice: 110, // narrow band so plenty of crosses happen
		MaxQty:   50,
	}
	s := New(ex, cfg)
	s.Run(context.Background())

	stats := s.Stats()
	if stats.Rejected != 0 {
		t.Fatalf("simulator generated %d invalid orders", stats.Rejected)
	}
	if stats.Orders != int64(cfg.Traders*cfg.Orders) {
		t.Fatalf("expected %d orders submitted, got %d", cfg.Traders*cfg.Orders, stats.Orders)
	}
	if sink.trades == 0 {
		t.Fatal("expected at least one trade in a narrow price band")
	}

	var resident int64
	for _, sym := range cfg.Symbols {
		bids, asks := ex.Depth(sym)
		for _, l := range bids {
			resident += l.Qty
		}
		for _, l := range asks {
			resident += l.Qty
		}

		// no book may remain crossed after the run
		if len(bids) > 0 && len(asks) > 0 && bids[0].Price >= asks[0].Price {
			t.Errorf("%s: crossed book after simulation: bid %v >= ask %v",
				sym, bids[0].Price, asks[0].Price)
		}
	}

	// every match removed its quantity from exactly one buy and one sell
	if stats.SubmittedQty != resident+2*sink.matched {
		t.Errorf("quantity not conserved: submitted=%d resident=%d matched=%d",
			stats.SubmittedQty, resident, sink.matched)
	}
}
