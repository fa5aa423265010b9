package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/gamescore-service/internal/config"
	"github.com/gamescore-service/internal/domain"
)

// Publisher emits score lifecycle events for downstream consumers.
type Publisher interface {
	PublishScoreEvent(ctx context.Context, event domain.ScoreEvent) error
	Close() error
}

// KafkaPublisher publishes score events to a Kafka topic using a
// synchronous producer. Every event is confirmed by the broker before
// the request that caused it completes.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher connected to the configured brokers.
func NewKafkaPublisher(cfg *config.KafkaConfig, logger *slog.Logger) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_0_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		topic:    cfg.Topic,
		logger:   logger,
	}, nil
}

// NewKafkaPublisherWith wraps an existing producer. Used by tests.
func NewKafkaPublisherWith(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// PublishScoreEvent sends a single score event. Messages are keyed by
// game and level so events for one level stay in order.
func (p *KafkaPublisher) PublishScoreEvent(ctx context.Context, event domain.ScoreEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding score event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Game + "/" + event.Level),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publishing score event: %w", err)
	}

	p.logger.Debug("score event published",
		"action", event.Action,
		"game", event.Game,
		"level", event.Level,
		"player", event.Player,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close shuts down the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishScoreEvent(context.Context, domain.ScoreEvent) error { return nil }
func (NopPublisher) Close() error                                               { return nil }
