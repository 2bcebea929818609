package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// IntegrationEvent es el sobre común de todo lo que viaja por el bus o por Kafka.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey permite a los publishers particionar por agregado.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// NewIntegrationEvent serializa data y lo envuelve con su tipo y clave.
func NewIntegrationEvent(eventType, key string, at time.Time, data interface{}) (IntegrationEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:      eventType,
		Key:       key,
		Timestamp: at,
		Data:      raw,
	}, nil
}

// EventMetadata indica a qué tipo Go se decodifica el payload y en qué topic se publica.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}
