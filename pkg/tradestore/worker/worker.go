package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"github.com/joripage/exchange-dev/pkg/exchange"
	"github.com/joripage/exchange-dev/pkg/logging"
	"github.com/joripage/exchange-dev/pkg/tradestore"
)

// Worker drains the trade stream off JetStream and persists it. It sits
// fully outside the matching path; a slow database never backs up a book.
type Worker struct {
	trades tradestore.ITrade
}

func NewWorker(repo tradestore.IRepo) *Worker {
	return &Worker{
		trades: repo.Trade(),
	}
}

// StartConsumer pulls trades in batches from a durable consumer until the
// context is cancelled. Messages are acked only after a successful insert,
// so a crashed worker replays instead of losing trades.
func (w *Worker) StartConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := cons.Fetch(10, nats.Context(ctx))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			logging.FromContext(ctx).Warnw("fetch trades", "err", err)
			continue
		}

		batchCtx := logging.WithRequestID(ctx, uuid.New().String())
		for _, msg := range msgs {
			var tr exchange.Trade
			if err := json.Unmarshal(msg.Data, &tr); err != nil {
				logging.FromContext(batchCtx).Warnw("unmarshal trade", "err", err)
				_ = msg.Ack()
				continue
			}
			if err := w.handleTrade(batchCtx, tr); err != nil {
				logging.FromContext(batchCtx).Errorw("persist trade", "trade_id", tr.ID, "err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

func (w *Worker) handleTrade(ctx context.Context, tr exchange.Trade) error {
	_, err := w.trades.Create(ctx, tradestore.FromMatch(tr))
	return err
}
