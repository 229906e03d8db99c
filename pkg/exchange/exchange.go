package exchange

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// Exchange routes orders to per-symbol books. A book is created on first
// sight of a symbol, keyed by the exact symbol string, and exactly one book
// exists per symbol even when two submitters race on a new one. Submissions
// to different symbols never block each other.
type Exchange struct {
	books sync.Map // symbol -> *orderBook

	mu    sync.Mutex
	sinks []TradeSink

	logger *zap.SugaredLogger
}

func NewExchange(logger *zap.Logger) *Exchange {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exchange{logger: logger.Sugar()}
}

// RegisterSink attaches a trade sink to every current and future book.
// Register sinks before order flow starts; late registrations only see
// trades from matches that begin afterwards.
func (ex *Exchange) RegisterSink(s TradeSink) {
	ex.mu.Lock()
	ex.sinks = append(ex.sinks, s)
	ex.mu.Unlock()

	ex.books.Range(func(_, v any) bool {
		v.(*orderBook).registerSink(s)
		return true
	})
}

// SubmitOrder validates the submission, builds the order and hands it to
// the symbol's book for the atomic insert+match cycle. Safe for concurrent
// use from any number of goroutines.
func (ex *Exchange) SubmitOrder(side Side, symbol string, qty int64, price float64) error {
	if err := validateOrder(side, symbol, qty, price); err != nil {
		ex.logger.Warnw("order rejected",
			"symbol", symbol, "side", side, "qty", qty, "price", price, "err", err)
		return err
	}

	return ex.book(symbol).submit(&Order{
		Symbol: symbol,
		Side:   side,
		Price:  price,
		Qty:    qty,
	})
}

// Level is one price level of a depth snapshot.
type Level struct {
	Price float64
	Qty   int64
}

// Depth returns both sides of a symbol's book in priority order, aggregated
// per price level. Nil slices for a symbol that has never traded.
func (ex *Exchange) Depth(symbol string) (bids, asks []Level) {
	v, ok := ex.books.Load(symbol)
	if !ok {
		return nil, nil
	}
	ob := v.(*orderBook)
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return ob.bids.depth(), ob.asks.depth()
}

func (ex *Exchange) book(symbol string) *orderBook {
	if v, ok := ex.books.Load(symbol); ok {
		return v.(*orderBook)
	}

	ob := newOrderBook(symbol, ex.logger)
	ex.mu.Lock()
	ob.sinks = append(ob.sinks, ex.sinks...)
	ex.mu.Unlock()

	actual, _ := ex.books.LoadOrStore(symbol, ob)
	return actual.(*orderBook)
}

func validateOrder(side Side, symbol string, qty int64, price float64) error {
	if !side.valid() {
		return ErrInvalidSide
	}
	if symbol == "" {
		return ErrEmptySymbol
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	return nil
}
