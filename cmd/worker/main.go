package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joripage/exchange-dev/config"
	"github.com/joripage/exchange-dev/pkg/feed"
	postgres_wrapper "github.com/joripage/exchange-dev/pkg/infra/postgres"
	"github.com/joripage/exchange-dev/pkg/logging"
	"github.com/joripage/exchange-dev/pkg/tradestore"
	"github.com/joripage/exchange-dev/pkg/tradestore/worker"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger, err := logging.Init(cfg.ServiceName, zapcore.InfoLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // nolint

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	url := nats.DefaultURL
	if cfg.Nats != nil && cfg.Nats.URL != "" {
		url = cfg.Nats.URL
	}
	nc, err := nats.Connect(url)
	if err != nil {
		zap.S().Fatalw("connect nats", "err", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		zap.S().Fatalw("jetstream context", "err", err)
	}

	db := postgres_wrapper.InitPostgresWithBackoff(cfg.TradeDB)
	repo := tradestore.NewRepo(db)

	w := worker.NewWorker(repo)
	go func() {
		err := w.StartConsumer(ctx, js, feed.SubjectPrefix+".*", "trade_worker")
		if err != nil && err != context.Canceled {
			zap.S().Errorw("consumer stopped", "err", err)
		}
	}()

	zap.S().Info("trade worker started, Ctrl+C to exit")
	<-sigs
	zap.S().Info("shutting down")
	cancel()
}
