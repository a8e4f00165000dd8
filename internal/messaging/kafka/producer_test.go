package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func testEvent() domain.MutationEvent {
	return domain.MutationEvent{
		Type:       domain.EventTypeOrderCreated,
		Entity:     "order",
		EntityID:   42,
		TraceID:    "trace-1",
		OccurredAt: time.Now().UTC(),
		Metadata: map[string]any{
			"customer_id": int64(1),
		},
	}
}

func TestProducer_Publish(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var msg mutationMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return err
		}
		if msg.Type != domain.EventTypeOrderCreated || msg.EntityID != 42 {
			t.Errorf("unexpected payload: %+v", msg)
		}
		return nil
	})

	if err := producer.Publish(testEvent()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_Publish_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.Publish(testEvent()); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
