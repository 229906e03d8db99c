package main

import (
	"flag"

	"go.uber.org/zap/zapcore"

	"github.com/joripage/exchange-dev/config"
	"github.com/joripage/exchange-dev/pkg/infra"
	"github.com/joripage/exchange-dev/pkg/logging"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	if _, err := logging.Init(cfg.ServiceName, zapcore.DebugLevel); err != nil {
		panic(err)
	}

	if err := infra.Migrate("file://migration/sql", cfg.TradeDB.MigrationConnURL); err != nil {
		panic(err)
	}
}
