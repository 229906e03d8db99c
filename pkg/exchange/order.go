package exchange

// Order is resting buy or sell interest for one symbol. Qty is the only
// mutable field: the match loop decrements it and removes the order the
// moment it reaches zero. Nothing outside the owning book may mutate an
// order after insertion.
type Order struct {
	Symbol string
	Side   Side
	Price  float64
	Qty    int64

	// seq is assigned under the book lock at insertion and breaks price
	// ties in arrival order.
	seq uint64
}
