package exchange

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestSubmitOrderValidation(t *testing.T) {
	ex := NewExchange(nil)

	tests := []struct {
		name   string
		side   Side
		symbol string
		qty    int64
		price  float64
		want   error
	}{
		{"bad side", Side("HOLD"), "AAPL", 10, 100, ErrInvalidSide},
		{"empty symbol", BUY, "", 10, 100, ErrEmptySymbol},
		{"zero qty", BUY, "AAPL", 0, 100, ErrInvalidQuantity},
		{"negative qty", SELL, "AAPL", -5, 100, ErrInvalidQuantity},
		{"zero price", BUY, "AAPL", 10, 0, ErrInvalidPrice},
		{"negative price", SELL, "AAPL", 10, -1, ErrInvalidPrice},
		{"nan price", BUY, "AAPL", 10, math.NaN(), ErrInvalidPrice},
		{"inf price", BUY, "AAPL", 10, math.Inf(1), ErrInvalidPrice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ex.SubmitOrder(tc.side, tc.symbol, tc.qty, tc.price); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// rejected orders never create a book
	if _, ok := ex.books.Load("AAPL"); ok {
		t.Error("validation failure should not create a book")
	}
}

func TestSameBookPerSymbol(t *testing.T) {
	ex := NewExchange(nil)

	if ex.book("AAPL") != ex.book("AAPL") {
		t.Error("expected the same book instance per symbol")
	}
	if ex.book("AAPL") == ex.book("GOOG") {
		t.Error("expected distinct books per symbol")
	}
}

func TestRoutingKeepsSymbolsApart(t *testing.T) {
	ex := NewExchange(nil)
	sink := &captureSink{}
	ex.RegisterSink(sink)

	ex.SubmitOrder(SELL, "AAPL", 10, 100)
	ex.SubmitOrder(BUY, "GOOG", 10, 100) // must not match the AAPL sell

	if n := len(sink.all()); n != 0 {
		t.Fatalf("expected no trades across symbols, got %d", n)
	}

	ex.SubmitOrder(BUY, "AAPL", 10, 100)
	trades := sink.all()
	if len(trades) != 1 || trades[0].Symbol != "AAPL" {
		t.Fatalf("expected one AAPL trade, got %+v", trades)
	}

	googBids, googAsks := ex.Depth("GOOG")
	if len(googAsks) != 0 || len(googBids) != 1 {
		t.Errorf("GOOG book disturbed: bids=%v asks=%v", googBids, googAsks)
	}
}

func TestRegisterSinkReachesExistingBooks(t *testing.T) {
	ex := NewExchange(nil)
	ex.SubmitOrder(SELL, "AAPL", 10, 100)

	sink := &captureSink{}
	ex.RegisterSink(sink)

	ex.SubmitOrder(BUY, "AAPL", 10, 100)
	if len(sink.all()) != 1 {
		t.Fatalf("expected sink registered after book creation to see the trade")
	}
}

func TestDepthSnapshotOrdering(t *testing.T) {
	ex := NewExchange(nil)

	for _, p := range []float64{97, 95, 96} {
		ex.SubmitOrder(BUY, "AAPL", 10, p)
	}
	for _, p := range []float64{103, 101, 102} {
		ex.SubmitOrder(SELL, "AAPL", 10, p)
	}

	bids, asks := ex.Depth("AAPL")
	wantBids := []float64{97, 96, 95}
	wantAsks := []float64{101, 102, 103}
	for i, l := range bids {
		if l.Price != wantBids[i] {
			t.Errorf("bid level %d: expected %v, got %v", i, wantBids[i], l.Price)
		}
	}
	for i, l := range asks {
		if l.Price != wantAsks[i] {
			t.Errorf("ask level %d: expected %v, got %v", i, wantAsks[i], l.Price)
		}
	}
}

func TestDepthUnknownSymbol(t *testing.T) {
	ex := NewExchange(nil)
	bids, asks := ex.Depth("NOPE")
	if bids != nil || asks != nil {
		t.Errorf("expected nil depth for unknown symbol, got %v / %v", bids, asks)
	}
}

func TestConcurrentSubmitsAcrossSymbols(t *testing.T) {
	ex := NewExchange(nil)
	sink := &captureSink{}
	ex.RegisterSink(sink)

	symbols := []string{"AAPL", "GOOG", "MSFT", "AMZN", "TSLA"}
	n := 200

	var wg sync.WaitGroup
	for _, sym := range symbols {
		for i := 0; i < n; i++ {
			wg.Add(2)
			go func(sym string) {
				defer wg.Done()
				if err := ex.SubmitOrder(BUY, sym, 10, 100); err != nil {
					t.Errorf("submit buy %s: %v", sym, err)
				}
			}(sym)
			go func(sym string) {
				defer wg.Done()
				if err := ex.SubmitOrder(SELL, sym, 10, 100); err != nil {
					t.Errorf("submit sell %s: %v", sym, err)
				}
			}(sym)
		}
	}
	wg.Wait()

	perSymbol := make(map[string]int64)
	for _, tr := range sink.all() {
		perSymbol[tr.Symbol] += tr.Qty
	}
	for _, sym := range symbols {
		if perSymbol[sym] != int64(n)*10 {
			t.Errorf("%s: expected matched qty %d, got %d", sym, n*10, perSymbol[sym])
		}
		bids, asks := ex.Depth(sym)
		if len(bids) != 0 || len(asks) != 0 {
			t.Errorf("%s: expected empty book, got bids=%v asks=%v", sym, bids, asks)
		}
	}
}
