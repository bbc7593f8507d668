package service

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/pkg/circuit_breaker"
	"github.com/libhub/library-service/pkg/kafka"
)

// Publisher emits circulation events to kafka. The breaker keeps a dead
// broker from stalling borrow/return requests; publish failures are logged
// and dropped, they never fail the request.
type Publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		cb:       circuit_breaker.New(20, 30*time.Second, 0.5, 5),
		log:      log.Named("publisher"),
	}
}

func (p *Publisher) Publish(event model.CirculationEvent) {
	if p.producer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	if err := p.cb.Call(func() error {
		msg := &sarama.ProducerMessage{
			Topic: kafka.CirculationTopic,
			Value: sarama.StringEncoder(data),
		}
		_, _, err := p.producer.SendMessage(msg)
		return err
	}); err != nil {
		p.log.Warn("publish circulation event",
			zap.String("action", event.Action),
			zap.String("record_uid", event.RecordUid),
			zap.Error(err))
	}
}
