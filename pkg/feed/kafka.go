package feed

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

type KafkaConfig struct {
	Brokers                 []string `yaml:"brokers"`
	Topic                   string   `yaml:"topic"`
	BatchSize               int      `yaml:"batch_size"`
	BatchTimeoutMiliseconds int64    `yaml:"batch_timeout_ms"`
}

// KafkaFeed publishes every trade as JSON to a trade-tape topic, keyed by
// symbol so one symbol always lands on one partition. The writer is async
// with no required acks; the tape is a best-effort feed, the book state
// never depends on it.
type KafkaFeed struct {
	w     *kafka.Writer
	topic string
}

func NewKafkaFeed(cfg *KafkaConfig) *KafkaFeed {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	batchTimeout := time.Duration(cfg.BatchTimeoutMiliseconds) * time.Millisecond
	if batchTimeout == 0 {
		batchTimeout = 50 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireNone,
		Async:                  true,
	}
	return &KafkaFeed{w: w, topic: cfg.Topic}
}

func (f *KafkaFeed) OnTrade(t exchange.Trade) {
	value, err := json.Marshal(t)
	if err != nil {
		zap.S().Errorw("marshal trade", "trade_id", t.ID, "err", err)
		return
	}
	err = f.w.WriteMessages(context.Background(), kafka.Message{
		Topic: f.topic,
		Key:   hashKey(t.Symbol),
		Value: value,
		Time:  t.Time,
	})
	if err != nil {
		zap.S().Errorw("publish trade", "topic", f.topic, "err", err)
	}
}

func (f *KafkaFeed) Close() error {
	return f.w.Close()
}

func hashKey(s string) []byte {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum64()
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return b
}
