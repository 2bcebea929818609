package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvoiceAlreadyCancelled = errors.New("invoice already cancelled")
	ErrInvalidInvoice          = errors.New("invalid invoice")
	ErrPayloadTooLarge         = errors.New("payload size exceeds 2MB limit")
	ErrIRNRequired             = errors.New("IRN is required")
	ErrSampleNotFound          = errors.New("sample not found")
	ErrEmptySearch             = errors.New("search query (q) is required")
	ErrUnknownScenario         = errors.New("unknown scenario")
)

// ValidationError lleva los mensajes de validación; errors.Is(err, ErrInvalidInvoice) es true.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInvoice
}

// ---------- Interfaces (Ports) ----------

// Snapshot es una vista inmutable del almacén. Invoices y Records van en paralelo
// (mismo índice, misma factura). Los consumidores no deben modificarla.
type Snapshot struct {
	Generation uint64
	Invoices   []Invoice
	Records    []query.Record
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Invoices)
}

// InvoiceRepository guarda las facturas en memoria. Los lectores trabajan sobre
// snapshots; cada escritura publica un snapshot nuevo.
type InvoiceRepository interface {
	// Snapshot nunca bloquea y nunca devuelve nil.
	Snapshot() *Snapshot

	// Append asigna IDs consecutivos y devuelve las facturas guardadas.
	Append(ctx context.Context, invoices ...Invoice) ([]Invoice, error)

	// Debe devolver ErrInvoiceNotFound o ErrInvoiceAlreadyCancelled.
	Cancel(ctx context.Context, irn, reason string, at time.Time) (Invoice, error)

	// Reset reemplaza todo el contenido e incrementa la generación.
	Reset(ctx context.Context, seed []Invoice) (*Snapshot, error)

	// Debe devolver ErrInvoiceNotFound si no existe.
	FindByIRN(ctx context.Context, irn string) (Invoice, error)
}

// AnalyticsRepository recibe las facturas para análisis fuera de línea.
type AnalyticsRepository interface {
	LogBatch(ctx context.Context, eventType string, invoices []Invoice) error
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyByIRN incluye la generación del almacén: tras un reset las claves viejas quedan huérfanas.
func CacheKeyByIRN(generation uint64, irn string) string {
	return fmt.Sprintf("invoice:gen:%d:irn:%s", generation, irn)
}
