package exchange

import (
	"math/rand"
	"testing"
)

func TestBuySideOrdering(t *testing.T) {
	bs := newBookSide(BUY)
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		bs.insert(&Order{
			Side:  BUY,
			Price: 90 + float64(rnd.Intn(20)),
			Qty:   int64(rnd.Intn(50) + 1),
			seq:   uint64(i),
		})
	}

	orders := bs.orders()
	if len(orders) != 500 {
		t.Fatalf("expected 500 orders, got %d", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		prev, cur := orders[i-1], orders[i]
		if cur.Price > prev.Price {
			t.Fatalf("buy side not non-increasing at %d: %v then %v", i, prev.Price, cur.Price)
		}
		if cur.Price == prev.Price && cur.seq < prev.seq {
			t.Fatalf("arrival order broken at %d within price %v", i, cur.Price)
		}
	}
}

func TestSellSideOrdering(t *testing.T) {
	bs := newBookSide(SELL)
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		bs.insert(&Order{
			Side:  SELL,
			Price: 90 + float64(rnd.Intn(20)),
			Qty:   int64(rnd.Intn(50) + 1),
			seq:   uint64(i),
		})
	}

	orders := bs.orders()
	for i := 1; i < len(orders); i++ {
		prev, cur := orders[i-1], orders[i]
		if cur.Price < prev.Price {
			t.Fatalf("sell side not non-decreasing at %d: %v then %v", i, prev.Price, cur.Price)
		}
		if cur.Price == prev.Price && cur.seq < prev.seq {
			t.Fatalf("arrival order broken at %d within price %v", i, cur.Price)
		}
	}
}

func TestRemoveBestReleasesLevel(t *testing.T) {
	bs := newBookSide(SELL)
	bs.insert(&Order{Side: SELL, Price: 100, Qty: 5})
	bs.insert(&Order{Side: SELL, Price: 101, Qty: 5})

	best, ok := bs.best()
	if !ok || best.Price != 100 {
		t.Fatalf("expected best 100, got %+v", best)
	}

	bs.removeBest()
	if _, exists := bs.levels[100]; exists {
		t.Error("expected price level 100 to be released")
	}
	best, ok = bs.best()
	if !ok || best.Price != 101 {
		t.Fatalf("expected best 101 after removal, got %+v", best)
	}

	bs.removeBest()
	if _, ok := bs.best(); ok {
		t.Error("expected empty side")
	}
	if bs.heap.Len() != 0 || len(bs.levels) != 0 {
		t.Errorf("expected no levels left, heap=%d map=%d", bs.heap.Len(), len(bs.levels))
	}
}

func TestDepthAggregatesPerLevel(t *testing.T) {
	bs := newBookSide(BUY)
	bs.insert(&Order{Side: BUY, Price: 100, Qty: 5})
	bs.insert(&Order{Side: BUY, Price: 100, Qty: 7})
	bs.insert(&Order{Side: BUY, Price: 99, Qty: 3})

	levels := bs.depth()
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Price != 100 || levels[0].Qty != 12 {
		t.Errorf("expected 12@100 first, got %+v", levels[0])
	}
	if levels[1].Price != 99 || levels[1].Qty != 3 {
		t.Errorf("expected 3@99 second, got %+v", levels[1])
	}
}
