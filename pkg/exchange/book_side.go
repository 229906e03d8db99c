package exchange

import (
	"container/heap"
	"sort"

	"github.com/gammazero/deque"
)

// bookSide is one side of a book: a FIFO deque of orders per price level
// plus a heap of level prices. Price priority comes from the heap, time
// priority from deque arrival order. A price level exists iff it holds at
// least one order.
type bookSide struct {
	levels map[float64]*deque.Deque[*Order]
	heap   *priceHeap
}

func newBookSide(side Side) *bookSide {
	better := func(i, j float64) bool { return i < j } // best ask = lowest
	if side == BUY {
		better = func(i, j float64) bool { return i > j } // best bid = highest
	}
	return &bookSide{
		levels: make(map[float64]*deque.Deque[*Order]),
		heap:   newPriceHeap(better),
	}
}

// insert appends the order to its price level, creating the level on first
// use. Orders at an equal price keep arrival order.
func (bs *bookSide) insert(o *Order) {
	q := bs.levels[o.Price]
	if q == nil {
		q = &deque.Deque[*Order]{}
		bs.levels[o.Price] = q
		heap.Push(bs.heap, o.Price)
	}
	q.PushBack(o)
}

// best returns the oldest order at the best price level.
func (bs *bookSide) best() (*Order, bool) {
	price, ok := bs.heap.Peek()
	if !ok {
		return nil, false
	}
	return bs.levels[price].Front(), true
}

// removeBest drops the order best would return, releasing its price level
// when the level empties.
func (bs *bookSide) removeBest() {
	price, ok := bs.heap.Peek()
	if !ok {
		return
	}
	q := bs.levels[price]
	q.PopFront()
	if q.Len() == 0 {
		heap.Pop(bs.heap)
		delete(bs.levels, price)
	}
}

func (bs *bookSide) size() int {
	n := 0
	for _, q := range bs.levels {
		n += q.Len()
	}
	return n
}

// orders returns a snapshot in priority order: best price level first, FIFO
// within a level.
func (bs *bookSide) orders() []*Order {
	prices := bs.sortedPrices()
	out := make([]*Order, 0, bs.size())
	for _, p := range prices {
		q := bs.levels[p]
		for i := 0; i < q.Len(); i++ {
			out = append(out, q.At(i))
		}
	}
	return out
}

// depth aggregates resident quantity per price level, best level first.
func (bs *bookSide) depth() []Level {
	prices := bs.sortedPrices()
	out := make([]Level, 0, len(prices))
	for _, p := range prices {
		q := bs.levels[p]
		var qty int64
		for i := 0; i < q.Len(); i++ {
			qty += q.At(i).Qty
		}
		out = append(out, Level{Price: p, Qty: qty})
	}
	return out
}

func (bs *bookSide) sortedPrices() []float64 {
	prices := make([]float64, len(bs.heap.prices))
	copy(prices, bs.heap.prices)
	sort.Slice(prices, func(i, j int) bool { return bs.heap.better(prices[i], prices[j]) })
	return prices
}
