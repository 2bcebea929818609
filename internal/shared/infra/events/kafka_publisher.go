package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/segmentio/kafka-go"

	sharedBus "github.com/davicafu/einvoicelab/internal/shared/infra/platform/bus"
)

// KafkaPublisher escribe eventos en el topic configurado en el writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var key []byte
	if k := sharedBus.KeyOf(event); k != "" {
		key = []byte(k)
	}

	msg := kafka.Message{
		Key:   key,
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("topic", p.writer.Topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published", zap.String("topic", p.writer.Topic), zap.ByteString("key", key))
	return nil
}

// Close vacía los mensajes pendientes del writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ sharedBus.EventBus = (*KafkaPublisher)(nil)
