package facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/bookcase-labs/library-catalog/internal/logger"
)

// Audit event types published by the services.
const (
	EventUserSignedUp           = "user.signed_up"
	EventPasswordResetRequested = "user.password_reset_requested"
	EventPasswordReset          = "user.password_reset"
	EventBookCreated            = "book.created"
	EventBookDeleted            = "book.deleted"
)

// auditEvent is the wire shape of one audit record.
type auditEvent struct {
	Type     string    `json:"type"`
	EntityID string    `json:"entity_id"`
	At       time.Time `json:"at"`
}

// KafkaAuditFacade publishes domain audit events to a Kafka topic.
// Publishing is best-effort: a broker failure is logged and the triggering
// request proceeds.
type KafkaAuditFacade struct {
	writer *kafka.Writer
}

// NewKafkaAuditFacade creates a facade writing to the given brokers/topic.
func NewKafkaAuditFacade(brokers []string, topic string) *KafkaAuditFacade {
	return &KafkaAuditFacade{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish emits one audit event.
func (f *KafkaAuditFacade) Publish(ctx context.Context, eventType, entityID string) error {
	payload, err := json.Marshal(auditEvent{
		Type:     eventType,
		EntityID: entityID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entityID),
		Value: payload,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish audit event", "type", eventType, "entity_id", entityID, "error", err)
		return err
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (f *KafkaAuditFacade) Close() error {
	return f.writer.Close()
}
