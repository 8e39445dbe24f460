package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

// stateChanged is the wire message published on coarse delivery-state
// transitions. Keyed by shipment reference so one partition sees a
// shipment's transitions in order.
type stateChanged struct {
	Reference string    `json:"reference"`
	State     string    `json:"state"`
	Label     string    `json:"label"`
	At        time.Time `json:"at"`
}

// Producer publishes delivery-state transitions to a Kafka topic.
type Producer struct {
	w     *kafka.Writer
	topic string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

// PublishStateChange emits one message for a coarse-state transition.
func (p *Producer) PublishStateChange(ctx context.Context, ref string, state domain.DeliveryState, at time.Time) error {
	value, err := json.Marshal(stateChanged{
		Reference: ref,
		State:     string(state),
		Label:     state.Label(),
		At:        at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("kafka encode: %w", err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(ref),
		Value: value,
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.w.Close()
}
