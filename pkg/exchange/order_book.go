package exchange

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// orderBook owns both sides for one symbol. submit is the only mutating
// entry point; insert and the full match cycle run as one unit under mu, so
// no caller ever observes a crossed book or a half-applied fill.
type orderBook struct {
	symbol string

	mu     sync.Mutex
	bids   *bookSide
	asks   *bookSide
	seq    uint64
	sinks  []TradeSink
	halted bool

	logger *zap.SugaredLogger
}

func newOrderBook(symbol string, logger *zap.SugaredLogger) *orderBook {
	return &orderBook{
		symbol: symbol,
		bids:   newBookSide(BUY),
		asks:   newBookSide(SELL),
		logger: logger,
	}
}

func (ob *orderBook) registerSink(s TradeSink) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	ob.sinks = append(ob.sinks, s)
}

// submit inserts the order into its side and resolves every resulting cross
// before releasing the lock. Sinks fire under the lock so trades reach them
// oldest-match-first per symbol.
func (ob *orderBook) submit(o *Order) error {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if ob.halted {
		return ErrBookHalted
	}
	if ob.crossedLocked() {
		// a cross left behind by a previous cycle means the book state
		// can no longer be trusted
		ob.haltLocked("crossed book observed before insert")
		return ErrBookHalted
	}

	ob.seq++
	o.seq = ob.seq
	if o.Side == BUY {
		ob.bids.insert(o)
	} else {
		ob.asks.insert(o)
	}

	trades := ob.matchLocked()
	for _, t := range trades {
		for _, s := range ob.sinks {
			s.OnTrade(t)
		}
	}
	return nil
}

// matchLocked repeatedly fills the best bid against the best ask until no
// cross remains. The execution price is always the resting sell order's
// price. Fully filled orders leave the book immediately.
func (ob *orderBook) matchLocked() []Trade {
	var trades []Trade
	for {
		buy, ok := ob.bids.best()
		if !ok {
			break
		}
		sell, ok := ob.asks.best()
		if !ok {
			break
		}
		if buy.Price < sell.Price {
			break
		}

		qty := min(buy.Qty, sell.Qty)
		buy.Qty -= qty
		sell.Qty -= qty

		trades = append(trades, Trade{
			ID:     newTradeID(),
			Symbol: ob.symbol,
			Price:  sell.Price,
			Qty:    qty,
			Time:   time.Now(),
		})

		if buy.Qty < 0 || sell.Qty < 0 {
			ob.haltLocked("negative resident quantity after fill")
			return trades
		}
		if buy.Qty == 0 {
			ob.bids.removeBest()
		}
		if sell.Qty == 0 {
			ob.asks.removeBest()
		}
	}
	return trades
}

func (ob *orderBook) crossedLocked() bool {
	buy, ok := ob.bids.best()
	if !ok {
		return false
	}
	sell, ok := ob.asks.best()
	if !ok {
		return false
	}
	return buy.Price >= sell.Price
}

// haltLocked stops all further mutation of this book.
func (ob *orderBook) haltLocked(reason string) {
	ob.halted = true
	ob.logger.Errorw("order book halted", "symbol", ob.symbol, "reason", reason)
}
