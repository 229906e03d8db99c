package exchange

// Side is the half of the book an order belongs to.
type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) valid() bool {
	return s == BUY || s == SELL
}
