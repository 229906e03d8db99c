package exchange

import (
	"time"

	"github.com/google/uuid"
)

// Trade is emitted once per match. Price is always the resting sell
// order's price.
type Trade struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Qty    int64     `json:"qty"`
	Time   time.Time `json:"time"`
}

// TradeSink receives trades in per-symbol chronological order. OnTrade runs
// while the book lock is held; implementations must not block.
type TradeSink interface {
	OnTrade(trade Trade)
}

// NoopSink discards trades.
type NoopSink struct{}

func (NoopSink) OnTrade(Trade) {}

func newTradeID() string {
	return uuid.New().String()
}
