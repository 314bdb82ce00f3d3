package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/tubepulse/internal/models"
)

// EventProducer publishes analysis telemetry events. Publishing never waits
// on the broker; delivery reports are logged from a background goroutine.
type EventProducer struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewEventProducer(cfg KafkaConfig) (*EventProducer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"security.protocol":  "PLAINTEXT",
		"enable.idempotence": true,
		"acks":               "all",
		"message.timeout.ms": int(DELIVERY_TIMEOUT.Milliseconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	ep := &EventProducer{producer: p, topic: cfg.topic(), done: make(chan struct{})}
	go ep.handleDeliveryReports()

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return ep, nil
}

func (ep *EventProducer) Close() {
	if ep == nil || ep.producer == nil {
		return
	}
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := ep.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	ep.producer.Close()
	<-ep.done
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishAnalysisEvent enqueues event keyed by its id and returns without
// waiting for the delivery report. Only local failures (marshal, full queue)
// are returned.
func (ep *EventProducer) PublishAnalysisEvent(ctx context.Context, event models.AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := newAnalysisMessage(ep.topic, event)
	if err != nil {
		return err
	}
	if err := ep.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce event: %w", err)
	}
	return nil
}

func newAnalysisMessage(topic string, event models.AnalysisEvent) (*kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.EventID),
		Value:          payload,
	}, nil
}

// handleDeliveryReports drains the producer's event channel until Close.
func (ep *EventProducer) handleDeliveryReports() {
	defer close(ep.done)

	for e := range ep.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Analysis event delivery failed",
					slog.String("event_id", string(ev.Key)),
					slog.String("error", ev.TopicPartition.Error.Error()))
				continue
			}
			slog.Info("[KafkaClient] Published analysis event",
				slog.String("topic", ep.topic),
				slog.String("event_id", string(ev.Key)))
		case kafka.Error:
			slog.Warn("[KafkaClient] Producer error", slog.String("error", ev.Error()))
		}
	}
}
