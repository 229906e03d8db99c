package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

type Config struct {
	Symbols         []string `yaml:"symbols"`
	Traders         int      `yaml:"traders"`
	Orders          int      `yaml:"orders"` // per trader
	MinPrice        float64  `yaml:"min_price"`
	MaxPrice        float64  `yaml:"max_price"`
	MaxQty          int64    `yaml:"max_qty"`
	PaceMiliseconds int64    `yaml:"pace_ms"` // max sleep between orders, 0 = full speed
}

func (c *Config) withDefaults() *Config {
	out := *c
	if len(out.Symbols) == 0 {
		out.Symbols = []string{"AAPL", "GOOG", "MSFT", "AMZN", "TSLA"}
	}
	if out.Traders == 0 {
		out.Traders = 5
	}
	if out.Orders == 0 {
		out.Orders = 50
	}
	if out.MinPrice == 0 {
		out.MinPrice = 100
	}
	if out.MaxPrice <= out.MinPrice {
		out.MaxPrice = out.MinPrice + 400
	}
	if out.MaxQty == 0 {
		out.MaxQty = 100
	}
	return &out
}

// Stats totals what the traders actually pushed through SubmitOrder.
type Stats struct {
	Orders       int64
	SubmittedQty int64
	Rejected     int64
}

// Simulator drives random order flow into an exchange through its public
// submit path. It stands in for real order entry during development and
// load tests; the core never knows it exists.
type Simulator struct {
	ex  *exchange.Exchange
	cfg *Config

	orders       atomic.Int64
	submittedQty atomic.Int64
	rejected     atomic.Int64
}

func New(ex *exchange.Exchange, cfg *Config) *Simulator {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Simulator{
		ex:  ex,
		cfg: cfg.withDefaults(),
	}
}

// Stats returns the totals accumulated so far.
func (s *Simulator) Stats() Stats {
	return Stats{
		Orders:       s.orders.Load(),
		SubmittedQty: s.submittedQty.Load(),
		Rejected:     s.rejected.Load(),
	}
}

// Run launches the configured traders and blocks until each has submitted
// its share of orders or the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Traders; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.trade(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (s *Simulator) trade(ctx context.Context, id int) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for i := 0; i < s.cfg.Orders; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		side := exchange.BUY
		if rnd.Intn(2) == 0 {
			side = exchange.SELL
		}
		symbol := s.cfg.Symbols[rnd.Intn(len(s.cfg.Symbols))]
		qty := rnd.Int63n(s.cfg.MaxQty) + 1
		price := s.cfg.MinPrice + rnd.Float64()*(s.cfg.MaxPrice-s.cfg.MinPrice)
		price = math.Round(price*100) / 100

		if err := s.ex.SubmitOrder(side, symbol, qty, price); err != nil {
			s.rejected.Add(1)
			zap.S().Warnw("submit order", "trader", id, "symbol", symbol, "err", err)
		} else {
			s.orders.Add(1)
			s.submittedQty.Add(qty)
		}

		if s.cfg.PaceMiliseconds > 0 {
			pause := time.Duration(rnd.Int63n(s.cfg.PaceMiliseconds)+1) * time.Millisecond
			select {
			case <-ctx.Done():
				return
			case <-time.After(pause):
			}
		}
	}
}
