package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler define la interfaz que debe cumplir cualquier consumidor de eventos (como InvoiceConsumer).
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// ConsumerAdapter escucha en Kafka y delega cada mensaje en el handler.
type ConsumerAdapter struct {
	reader  *kafka.Reader
	handler MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader *kafka.Reader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Start inicia el bucle de consumo de mensajes en una goroutine.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	cfg := c.reader.Config()
	c.log.Info("🎧 Iniciando consumidor de Kafka...",
		zap.String("topic", cfg.Topic),
		zap.String("group", cfg.GroupID),
		zap.Strings("brokers", cfg.Brokers),
	)

	go func() {
		defer c.reader.Close()
		for {
			// ReadMessage es bloqueante; con GroupID hace commit automático del offset.
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.log.Info("Consumidor de Kafka detenido.", zap.String("topic", cfg.Topic))
					return
				}
				c.log.Error("Error al leer mensaje de Kafka", zap.Error(err))
				continue
			}

			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
}

// ConsumeChan hace lo mismo que Start pero sobre un canal del bus en memoria.
// Los mensajes que no son []byte se descartan.
func ConsumeChan(ctx context.Context, ch <-chan interface{}, handler MessageHandler, log *zap.Logger) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info("Consumidor en memoria detenido")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if payload, isBytes := msg.([]byte); isBytes {
					// La 'key' no viaja en el bus en memoria.
					handler.HandleMessage(ctx, "", payload)
				}
			}
		}
	}()
}
