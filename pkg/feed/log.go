package feed

import (
	"go.uber.org/zap"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

// LogFeed prints each trade, the development stand-in for a real consumer.
type LogFeed struct {
	logger *zap.SugaredLogger
}

func NewLogFeed(logger *zap.Logger) *LogFeed {
	if logger == nil {
		logger = zap.L()
	}
	return &LogFeed{logger: logger.Sugar()}
}

func (f *LogFeed) OnTrade(t exchange.Trade) {
	f.logger.Infow("trade",
		"trade_id", t.ID,
		"symbol", t.Symbol,
		"price", t.Price,
		"qty", t.Qty,
	)
}
