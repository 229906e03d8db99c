package feed

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

const (
	StreamName    = "TRADES"
	SubjectPrefix = "TRADES"
)

type NatsConfig struct {
	URL string `yaml:"url"`
}

// NatsFeed publishes each trade to JetStream under TRADES.<symbol>. The
// persistence worker consumes TRADES.* with a durable pull subscription.
type NatsFeed struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

func NewNatsFeed(cfg *NatsConfig) (*NatsFeed, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	js, err := nc.JetStream(nats.PublishAsyncMaxPending(65536))
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPrefix + ".*"},
	}); err != nil {
		zap.S().Debugw("add stream", "stream", StreamName, "err", err)
	}

	return &NatsFeed{nc: nc, js: js}, nil
}

func (f *NatsFeed) OnTrade(t exchange.Trade) {
	data, err := json.Marshal(t)
	if err != nil {
		zap.S().Errorw("marshal trade", "trade_id", t.ID, "err", err)
		return
	}
	if _, err := f.js.PublishAsync(SubjectPrefix+"."+t.Symbol, data); err != nil {
		zap.S().Errorw("publish trade", "symbol", t.Symbol, "err", err)
	}
}

func (f *NatsFeed) Close() {
	f.nc.Close()
}
