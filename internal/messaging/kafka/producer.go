package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Topic для событий об изменениях хранилища.
const TopicMutations = "storefront.mutations"

// Producer публикует события об изменениях в Kafka.
type Producer struct {
	producer sarama.SyncProducer
	logger   *log.Entry
}

// NewProducer создает новый Kafka producer.
func NewProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true // Включаем идемпотентность
	config.Net.MaxOpenRequests = 1    // Для идемпотентности

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		logger:   log.WithField("component", "kafka-producer"),
	}, nil
}

// mutationMessage — wire-формат события об изменении.
type mutationMessage struct {
	Type       string         `json:"type"`
	Entity     string         `json:"entity"`
	EntityID   int64          `json:"entity_id"`
	TraceID    string         `json:"trace_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Publish публикует событие об изменении. Ключ — пара (сущность, идентификатор),
// чтобы изменения одной строки попадали в одну партицию по порядку.
func (p *Producer) Publish(event domain.MutationEvent) error {
	payload, err := json.Marshal(mutationMessage{
		Type:       event.Type,
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		TraceID:    event.TraceID,
		OccurredAt: event.OccurredAt,
		Metadata:   event.Metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mutation event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     TopicMutations,
		Key:       sarama.StringEncoder(fmt.Sprintf("%s-%d", event.Entity, event.EntityID)),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"type":      event.Type,
			"entity":    event.Entity,
			"entity_id": event.EntityID,
		}).Error("failed to send mutation event to kafka")
		return fmt.Errorf("failed to send mutation event: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"type":      event.Type,
		"partition": partition,
		"offset":    offset,
	}).Debug("mutation event sent to kafka")

	return nil
}

// Close закрывает producer.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

var _ domain.EventSink = (*Producer)(nil)
