package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent es un evento guardado junto al cambio que lo produjo, pendiente de publicar.
type OutboxEvent struct {
	ID            uuid.UUID   `json:"id"`
	AggregateType string      `json:"aggregate_type"` // ej. "invoice"
	AggregateID   string      `json:"aggregate_id"`
	EventType     string      `json:"event_type"` // ej. "invoice.cancelled"
	Payload       interface{} `json:"payload"`    // JSON serializable
	CreatedAt     time.Time   `json:"created_at"`
	Processed     bool        `json:"processed"` // si ya se publicó
}

// NewOutboxEvent crea un evento pendiente con ID nuevo.
func NewOutboxEvent(aggregateType, aggregateID, eventType string, payload interface{}, at time.Time) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}
}

// OutboxRepository define el contrato para acceder a la tabla outbox.
type OutboxRepository interface {
	Save(ctx context.Context, evt OutboxEvent) error
	// FetchPendingOutbox devuelve como mucho limit eventos no procesados, los más antiguos primero.
	FetchPendingOutbox(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error
}
