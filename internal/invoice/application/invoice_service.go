package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
	sharedCache "github.com/davicafu/einvoicelab/internal/shared/infra/platform/cache"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/einvoicelab/internal/shared/infra/utils"
)

const (
	// MaxDynamicCount limita cuántas facturas crea una llamada a GenerateDynamic.
	MaxDynamicCount = 100

	cacheTTLSecs = 300
)

var tracer = otel.Tracer("einvoicelab/invoice")

// InvoiceService define los casos de uso de las e-invoices.
// El almacén vive en memoria; el outbox y la caché son opcionales (nil = deshabilitado).
type InvoiceService struct {
	repo    invoiceDomain.InvoiceRepository
	outbox  sharedDomain.OutboxRepository
	cache   sharedCache.Cache
	gen     *generator.Generator
	engine  *query.Engine
	samples *sampleCatalog
	now     func() time.Time
	log     *zap.Logger

	// cacheMu ordena los rellenos de caché con las invalidaciones
	cacheMu sync.Mutex
}

func NewInvoiceService(
	repo invoiceDomain.InvoiceRepository,
	outbox sharedDomain.OutboxRepository,
	cache sharedCache.Cache,
	gen *generator.Generator,
	log *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:    repo,
		outbox:  outbox,
		cache:   cache,
		gen:     gen,
		engine:  query.NewEngine(invoiceDomain.InvoiceSearchPaths...),
		samples: newSampleCatalog(),
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *InvoiceService) WithClock(now func() time.Time) *InvoiceService {
	s.now = now
	return s
}

// ---------------- Ciclo de vida del almacén ----------------

// Seed carga las facturas iniciales sin emitir eventos. Se llama una vez al arrancar.
func (s *InvoiceService) Seed(ctx context.Context) error {
	snap, err := s.repo.Reset(ctx, s.gen.SeedInvoices())
	if err != nil {
		return err
	}
	s.log.Info("Invoice store seeded", zap.Int("count", snap.Len()), zap.Uint64("generation", snap.Generation))
	return nil
}

// Reset vuelve al estado inicial. Las claves de caché de la generación anterior quedan huérfanas.
func (s *InvoiceService) Reset(ctx context.Context) (ResetResult, error) {
	ctx, span := tracer.Start(ctx, "invoice.reset")
	defer span.End()

	snap, err := s.repo.Reset(ctx, s.gen.SeedInvoices())
	if err != nil {
		failSpan(span, err)
		return ResetResult{}, err
	}
	span.SetAttributes(attribute.Int64("store.generation", int64(snap.Generation)))

	payload := &invoiceDomain.ResetPayload{Generation: snap.Generation, Count: snap.Len()}
	s.enqueue(ctx, invoiceDomain.InvoiceReset, fmt.Sprintf("gen-%d", snap.Generation), payload)

	s.log.Info("Invoice store reset", zap.Int("count", snap.Len()), zap.Uint64("generation", snap.Generation))
	return ResetResult{Generation: snap.Generation, Count: snap.Len()}, nil
}

// Count devuelve cuántas facturas hay en el snapshot actual.
func (s *InvoiceService) Count() int {
	return s.repo.Snapshot().Len()
}

// ---------------- Comandos ----------------

// Validate aplica las reglas básicas y devuelve los mensajes de error (vacío = válido).
func (s *InvoiceService) Validate(p invoiceDomain.Payload) []string {
	return invoiceDomain.ValidateBasic(p)
}

// Generate valida el documento, le asigna un IRN y lo guarda.
func (s *InvoiceService) Generate(ctx context.Context, p invoiceDomain.Payload) (GenerateResult, error) {
	ctx, span := tracer.Start(ctx, "invoice.generate",
		trace.WithAttributes(attribute.String("invoice.supply_type", p.TranDtls.SupTyp)),
	)
	defer span.End()

	if err := invoiceDomain.Validate(p); err != nil {
		failSpan(span, err)
		return GenerateResult{}, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return GenerateResult{}, err
	}
	if len(raw) > invoiceDomain.MaxPayloadSize {
		failSpan(span, invoiceDomain.ErrPayloadTooLarge)
		return GenerateResult{}, invoiceDomain.ErrPayloadTooLarge
	}

	now := s.now()
	stored, err := s.repo.Append(ctx, s.newInvoice(p, now))
	if err != nil {
		failSpan(span, err)
		s.log.Error("Failed to store invoice", zap.Error(err))
		return GenerateResult{}, err
	}
	inv := stored[0]
	span.SetAttributes(attribute.String("invoice.irn", inv.IRN))

	s.enqueue(ctx, invoiceDomain.InvoiceGenerated, inv.IRN, &inv)
	s.fillCache(inv)

	return newGenerateResult(inv, now), nil
}

// GenerateDynamic crea entre 1 y MaxDynamicCount facturas aleatorias.
// Con scenario vacío reparte los tipos de suministro al azar.
func (s *InvoiceService) GenerateDynamic(ctx context.Context, count int, scenario string) ([]invoiceDomain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "invoice.generate_dynamic")
	defer span.End()

	scenario = strings.TrimSpace(scenario)
	if scenario != "" && !generator.IsScenario(scenario) {
		span.SetStatus(codes.Error, "unknown scenario")
		return nil, fmt.Errorf("%w: %s (available: %s)", invoiceDomain.ErrUnknownScenario, scenario, strings.Join(generator.Scenarios(), ", "))
	}
	count = sharedUtils.Clamp(count, 1, MaxDynamicCount)
	span.SetAttributes(attribute.Int("invoice.count", count), attribute.String("invoice.scenario", scenario))

	var payloads []invoiceDomain.Payload
	if scenario == "" {
		payloads = s.gen.GenerateMultiple(count)
	} else {
		payloads = make([]invoiceDomain.Payload, 0, count)
		for i := 0; i < count; i++ {
			payloads = append(payloads, s.gen.GenerateScenario(scenario))
		}
	}

	now := s.now()
	invoices := make([]invoiceDomain.Invoice, 0, len(payloads))
	for _, p := range payloads {
		invoices = append(invoices, s.newInvoice(p, now))
	}

	stored, err := s.repo.Append(ctx, invoices...)
	if err != nil {
		failSpan(span, err)
		s.log.Error("Failed to store generated invoices", zap.Int("count", len(invoices)), zap.Error(err))
		return nil, err
	}

	for i := range stored {
		s.enqueue(ctx, invoiceDomain.InvoiceGenerated, stored[i].IRN, &stored[i])
	}
	s.log.Info("Dynamic invoices generated", zap.Int("count", len(stored)), zap.String("scenario", scenario))
	return stored, nil
}

// Cancel marca la factura como cancelada y saca su entrada de la caché.
func (s *InvoiceService) Cancel(ctx context.Context, irn, reason string) (invoiceDomain.Invoice, error) {
	irn = strings.TrimSpace(irn)
	if irn == "" {
		return invoiceDomain.Invoice{}, invoiceDomain.ErrIRNRequired
	}

	ctx, span := tracer.Start(ctx, "invoice.cancel",
		trace.WithAttributes(attribute.String("invoice.irn", irn)),
	)
	defer span.End()

	inv, err := s.repo.Cancel(ctx, irn, reason, s.now())
	if err != nil {
		failSpan(span, err)
		if !errors.Is(err, invoiceDomain.ErrInvoiceNotFound) && !errors.Is(err, invoiceDomain.ErrInvoiceAlreadyCancelled) {
			s.log.Error("Failed to cancel invoice", zap.String("irn", irn), zap.Error(err))
		}
		return invoiceDomain.Invoice{}, err
	}

	s.enqueue(ctx, invoiceDomain.InvoiceCancelled, inv.IRN, &inv)
	if err := s.EvictCached(ctx, inv.IRN); err != nil {
		s.log.Warn("Cache eviction failed", zap.String("irn", inv.IRN), zap.Error(err))
	}

	return inv, nil
}

// ---------------- Lecturas puntuales ----------------

// GetByIRN usa cache-aside: primero la caché, luego el almacén con reintentos.
func (s *InvoiceService) GetByIRN(ctx context.Context, irn string) (invoiceDomain.Invoice, error) {
	irn = strings.TrimSpace(irn)
	if irn == "" {
		return invoiceDomain.Invoice{}, invoiceDomain.ErrIRNRequired
	}
	key := s.cacheKey(irn)

	if s.cache != nil {
		var cached invoiceDomain.Invoice
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	var (
		inv      invoiceDomain.Invoice
		notFound bool
	)
	err := sharedUtils.Retry(ctx, 3, 50*time.Millisecond, func() error {
		var errRetry error
		inv, errRetry = s.repo.FindByIRN(ctx, irn)
		if errors.Is(errRetry, invoiceDomain.ErrInvoiceNotFound) {
			notFound = true
			return nil // no tiene sentido reintentar
		}
		return errRetry
	})
	if err != nil {
		s.log.Error("Failed to fetch invoice", zap.String("irn", irn), zap.Error(err))
		return invoiceDomain.Invoice{}, err
	}
	if notFound {
		return invoiceDomain.Invoice{}, invoiceDomain.ErrInvoiceNotFound
	}

	s.fillCache(inv)
	return inv, nil
}

// EvictCached borra la entrada de caché de una factura. La usan Cancel y el consumidor de eventos.
func (s *InvoiceService) EvictCached(ctx context.Context, irn string) error {
	return sharedCache.CacheDelete(ctx, s.cache, &s.cacheMu, s.cacheKey(irn))
}

// ---------------- Helpers ----------------

func (s *InvoiceService) cacheKey(irn string) string {
	return invoiceDomain.CacheKeyByIRN(s.repo.Snapshot().Generation, irn)
}

// fillCache guarda inv en background sólo si el almacén sigue teniendo el mismo estado.
// Una lectura anterior a un Cancel no puede dejar en caché la factura sin cancelar.
func (s *InvoiceService) fillCache(inv invoiceDomain.Invoice) {
	sharedCache.AsyncCacheSetIf(s.cache, &s.cacheMu, s.cacheKey(inv.IRN), inv, cacheTTLSecs, s.log, func() bool {
		current, err := s.repo.FindByIRN(context.Background(), inv.IRN)
		return err == nil && current.Status == inv.Status
	})
}

func (s *InvoiceService) newInvoice(p invoiceDomain.Payload, now time.Time) invoiceDomain.Invoice {
	return invoiceDomain.Invoice{
		IRN:         newIRN(now),
		InvoiceData: p,
		Status:      invoiceDomain.StatusGenerated,
		GeneratedAt: now,
	}
}

// enqueue escribe el evento en el outbox. El almacén ya cambió, así que un fallo
// aquí sólo se registra: el evento se pierde pero la petición no falla.
func (s *InvoiceService) enqueue(ctx context.Context, eventType, aggregateID string, payload interface{}) {
	if s.outbox == nil {
		return
	}

	evt := sharedDomain.NewOutboxEvent(invoiceDomain.AggregateType, aggregateID, eventType, payload, s.now())
	if err := s.outbox.Save(ctx, evt); err != nil {
		s.log.Error("Failed to enqueue outbox event",
			zap.String("event_type", eventType),
			zap.String("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}

// newIRN sigue el formato IRN<epoch ms><9 caracteres>, todo en mayúsculas.
func newIRN(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strings.ToUpper(fmt.Sprintf("IRN%d%s", now.UnixMilli(), suffix))
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
