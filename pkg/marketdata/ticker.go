package marketdata

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

const keyPrefix = "ticker:"

// RedisTicker caches the latest trade per symbol in a redis hash and
// accumulates session volume. Lookups serve dashboards and the bench
// tooling; the matching core never reads it back.
type RedisTicker struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisTicker(client *redis.Client) *RedisTicker {
	return &RedisTicker{
		client:  client,
		timeout: time.Second,
	}
}

func (r *RedisTicker) OnTrade(t exchange.Trade) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	key := keyPrefix + t.Symbol
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key,
		"last_price", t.Price,
		"last_qty", t.Qty,
		"last_trade_at", t.Time.UnixMilli(),
	)
	pipe.HIncrBy(ctx, key, "volume", t.Qty)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.S().Warnw("update ticker cache", "symbol", t.Symbol, "err", err)
	}
}

// LastPrice returns the cached last trade price for a symbol. redis.Nil is
// returned untouched when the symbol has never traded.
func (r *RedisTicker) LastPrice(ctx context.Context, symbol string) (float64, error) {
	val, err := r.client.HGet(ctx, keyPrefix+symbol, "last_price").Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(val, 64)
}

// Volume returns the accumulated session volume for a symbol.
func (r *RedisTicker) Volume(ctx context.Context, symbol string) (int64, error) {
	val, err := r.client.HGet(ctx, keyPrefix+symbol, "volume").Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
