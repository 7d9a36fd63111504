package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Recorder is the interaction-log sink: one append per user action, for
// the downstream recommender analytics. It is a side channel, not part
// of cart correctness.
type Recorder interface {
	Record(ctx context.Context, userID, itemID, action string) error
}

// Interaction is the wire form of one logged user action.
type Interaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a Kafka-backed Recorder. Events are keyed by user
// so one user's interactions land on one partition, in order.
func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &Producer{writer: w}
}

func (p *Producer) Record(ctx context.Context, userID, itemID, action string) error {
	event := Interaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemID:    itemID,
		Type:      action,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(userID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Nop discards every interaction. Used when no brokers are configured.
type Nop struct{}

func (Nop) Record(context.Context, string, string, string) error { return nil }
