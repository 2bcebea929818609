package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
	sharedDomainEvents "github.com/davicafu/einvoicelab/internal/shared/domain/events"
	sharedBus "github.com/davicafu/einvoicelab/internal/shared/infra/platform/bus"
)

// Worker procesa eventos pendientes de la tabla outbox de forma genérica.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventBus
	eventRegistry map[string]sharedDomainEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventBus,
	registry map[string]sharedDomainEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start inicia el bucle de polling del worker. Bloquea hasta que ctx se cancela.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval), zap.Int("batch_size", w.batchSize))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido.")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica un lote de eventos pendientes y devuelve cuántos se marcaron.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	events, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return 0
	}
	if len(events) > 0 {
		w.log.Debug(fmt.Sprintf("📬 %d eventos encontrados para procesar", len(events)))
	}

	published := 0
	for _, evt := range events {
		if w.publishAndMark(ctx, evt) {
			published++
		}
	}
	return published
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	integration, err := w.toIntegrationEvent(evt)
	if err != nil {
		// Se queda pendiente: un despliegue con el registro corregido lo publicará.
		w.log.Error("No se pudo construir el evento de integración",
			zap.String("event_id", evt.ID.String()),
			zap.String("event_type", evt.EventType),
			zap.Error(err),
		)
		return false
	}

	if err := w.publisher.Publish(ctx, integration); err != nil {
		w.log.Warn("⚠️ No se pudo publicar evento",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return false // se reintenta en el siguiente tick
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		// Entrega at-least-once: el evento puede volver a publicarse.
		w.log.Warn("⚠️ No se pudo marcar evento como procesado",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return false
	}

	w.log.Debug("✅ Evento publicado y marcado",
		zap.String("event_id", evt.ID.String()),
		zap.String("event_type", evt.EventType),
	)
	return true
}

// toIntegrationEvent decodifica el payload al tipo registrado y lo envuelve.
func (w *Worker) toIntegrationEvent(evt sharedDomain.OutboxEvent) (sharedDomainEvents.IntegrationEvent, error) {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		return sharedDomainEvents.IntegrationEvent{}, fmt.Errorf("tipo de evento desconocido: %s", evt.EventType)
	}

	// Nueva instancia del tipo registrado (ej: &invoiceDomain.Invoice{})
	typed := reflect.New(metadata.Type).Interface()

	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedDomainEvents.IntegrationEvent{}, err
	}
	if err := json.Unmarshal(payloadBytes, typed); err != nil {
		return sharedDomainEvents.IntegrationEvent{}, fmt.Errorf("payload inválido: %w", err)
	}

	key := evt.AggregateID
	if k := sharedBus.KeyOf(typed); k != "" {
		key = k
	}
	return sharedDomainEvents.NewIntegrationEvent(evt.EventType, key, evt.CreatedAt, typed)
}
