package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/einvoicelab/internal/shared/infra/platform/bus"
)

// InMemoryEventBus implementa un bus de eventos para UN solo topic.
// Los suscriptores reciben el evento serializado como []byte, igual que desde Kafka.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	closed      bool
	topic       string
}

var (
	_ sharedBus.EventBus   = (*InMemoryEventBus)(nil)
	_ sharedBus.Subscriber = (*InMemoryEventBus)(nil)
)

func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
	}
}

func (b *InMemoryEventBus) Topic() string { return b.topic }

// Publish envía un evento a todos los suscriptores de este bus.
// Si el buffer de un suscriptor está lleno el evento se pierde para él.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}
	for _, subChan := range b.subscribers {
		select {
		case subChan <- payloadBytes:
		default:
		}
	}
	return nil
}

// Subscribe suscribe un nuevo oyente a este bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}

// Close cierra todos los canales de suscripción. Es idempotente.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
}
