package utils

import (
	"encoding/json"

	"go.uber.org/zap"
)

// UnmarshalAndHandle decodifica el Data de un evento al tipo T y llama a handler.
// Si el payload no encaja se registra con el tipo de evento y devuelve false.
func UnmarshalAndHandle[T any](log *zap.Logger, eventType string, data json.RawMessage, handler func(T)) bool {
	var evt T
	if err := json.Unmarshal(data, &evt); err != nil {
		log.Warn("Failed to unmarshal event data",
			zap.String("event_type", eventType),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return false
	}
	handler(evt)
	return true
}
