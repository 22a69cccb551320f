package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	topic  string
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{topic: topic, writer: writer}
}

// PublishRelease writes the event keyed by vehicle id, keeping the events of
// one vehicle on one partition.
func (p *Producer) PublishRelease(ctx context.Context, event *domain.ReleaseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal release event: %w", err)
	}

	key := strconv.Itoa(int(event.VehicleID))
	logger.ExternalServiceCall("kafka", "WriteMessages", "topic", p.topic, "key", key)
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt,
	})
	logger.ExternalServiceResult("kafka", "WriteMessages", err, "topic", p.topic, "bookingID", event.BookingID)
	if err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
