package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joripage/exchange-dev/config"
	"github.com/joripage/exchange-dev/pkg/exchange"
	"github.com/joripage/exchange-dev/pkg/feed"
	redis_wrapper "github.com/joripage/exchange-dev/pkg/infra/redis"
	"github.com/joripage/exchange-dev/pkg/logging"
	"github.com/joripage/exchange-dev/pkg/marketdata"
	"github.com/joripage/exchange-dev/pkg/sim"
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

	ex := exchange.NewExchange(logger)
	ex.RegisterSink(feed.NewLogFeed(logger))

	if cfg.Kafka != nil {
		kafkaFeed := feed.NewKafkaFeed(cfg.Kafka)
		defer kafkaFeed.Close() // nolint
		ex.RegisterSink(kafkaFeed)
	}

	if cfg.Nats != nil {
		natsFeed, err := feed.NewNatsFeed(cfg.Nats)
		if err != nil {
			zap.S().Fatalw("init nats feed", "err", err)
		}
		defer natsFeed.Close()
		ex.RegisterSink(natsFeed)
	}

	if cfg.Redis != nil {
		redisClient, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Fatalw("init redis", "err", err)
		}
		ex.RegisterSink(marketdata.NewRedisTicker(redisClient))
	}

	go func() {
		sim.New(ex, cfg.Sim).Run(ctx)
		zap.S().Info("simulation finished")
	}()

	zap.S().Info("exchange started, Ctrl+C to exit")
	<-sigs
	zap.S().Info("shutting down")
	cancel()
}
