package bus

import "context"

// Keyer lo implementan los eventos que conocen su clave de partición
// (el IRN en las facturas, "reset" en los reinicios del almacén).
type Keyer interface {
	PartitionKey() string
}

// EventBus publica eventos de integración. Cada adapter decide topic y serialización.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}

// Subscriber entrega los eventos ya serializados por un canal (bus en memoria).
type Subscriber interface {
	Subscribe(bufferSize int) <-chan interface{}
}

// KeyOf devuelve la clave de partición del evento, o "" si no la tiene.
func KeyOf(event interface{}) string {
	if k, ok := event.(Keyer); ok {
		return k.PartitionKey()
	}
	return ""
}
