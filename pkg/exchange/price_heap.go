package exchange

// priceHeap implements heap.Interface over the distinct price levels of one
// book side. better is i > j for the buy side (highest first) and i < j for
// the sell side (lowest first). index keeps Push idempotent per price.
type priceHeap struct {
	prices []float64
	better func(i, j float64) bool
	index  map[float64]bool
}

func newPriceHeap(better func(i, j float64) bool) *priceHeap {
	return &priceHeap{
		better: better,
		index:  make(map[float64]bool),
	}
}

func (h *priceHeap) Len() int {
	return len(h.prices)
}

func (h *priceHeap) Less(i, j int) bool {
	return h.better(h.prices[i], h.prices[j])
}

func (h *priceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *priceHeap) Push(x any) {
	price := x.(float64)
	if !h.index[price] {
		h.index[price] = true
		h.prices = append(h.prices, price)
	}
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price)
	return price
}

func (h *priceHeap) Peek() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}
