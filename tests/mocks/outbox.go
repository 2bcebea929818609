package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
)

// MockOutboxRepository simula el repositorio outbox con testify/mock.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Save(ctx context.Context, evt sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sharedDomain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher simula un publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// InMemoryOutbox guarda los eventos en un slice; útil cuando el test sólo
// necesita inspeccionar qué se encoló.
type InMemoryOutbox struct {
	mu     sync.Mutex
	Events []sharedDomain.OutboxEvent
	Err    error // si no es nil, Save falla con este error
}

var _ sharedDomain.OutboxRepository = (*InMemoryOutbox)(nil)

func NewInMemoryOutbox() *InMemoryOutbox {
	return &InMemoryOutbox{}
}

func (o *InMemoryOutbox) Save(ctx context.Context, evt sharedDomain.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.Events = append(o.Events, evt)
	return nil
}

func (o *InMemoryOutbox) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []sharedDomain.OutboxEvent
	for _, e := range o.Events {
		if !e.Processed {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *InMemoryOutbox) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.Events {
		if o.Events[i].ID == id {
			o.Events[i].Processed = true
		}
	}
	return nil
}

// Types devuelve los EventType en orden de inserción.
func (o *InMemoryOutbox) Types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]string, 0, len(o.Events))
	for _, e := range o.Events {
		types = append(types, e.EventType)
	}
	return types
}
