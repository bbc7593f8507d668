package kafka

import (
	"github.com/IBM/sarama"
)

const (
	// CirculationTopic carries borrow/return events for dashboards and audit.
	CirculationTopic = "library.circulation"
)

type Config struct {
	Addrs   []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Enabled bool     `yaml:"enabled" envconfig:"KAFKA_ENABLED" default:"false"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
