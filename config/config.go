package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joripage/exchange-dev/pkg/feed"
	postgres_wrapper "github.com/joripage/exchange-dev/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/exchange-dev/pkg/infra/redis"
	"github.com/joripage/exchange-dev/pkg/sim"
)

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	TradeDB     *postgres_wrapper.PostgresConfig `yaml:"trade_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka       *feed.KafkaConfig                `yaml:"kafka"`
	Nats        *feed.NatsConfig                 `yaml:"nats"`
	Sim         *sim.Config                      `yaml:"sim"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
