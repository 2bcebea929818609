package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

// InvoiceStore guarda las facturas en memoria con copy-on-write: cada escritura
// construye un snapshot nuevo y lo publica con un atomic.Pointer. Los lectores
// nunca bloquean y nunca ven un snapshot a medio escribir.
type InvoiceStore struct {
	mu      sync.Mutex // serializa escritores
	current atomic.Pointer[domain.Snapshot]
	nextID  int
}

// Verificación estática
var _ domain.InvoiceRepository = (*InvoiceStore)(nil)

func NewInvoiceStore() *InvoiceStore {
	s := &InvoiceStore{nextID: 1}
	s.current.Store(&domain.Snapshot{})
	return s
}

func (s *InvoiceStore) Snapshot() *domain.Snapshot {
	return s.current.Load()
}

func (s *InvoiceStore) Append(ctx context.Context, invoices ...domain.Invoice) ([]domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current.Load()
	next := &domain.Snapshot{
		Generation: old.Generation,
		Invoices:   make([]domain.Invoice, len(old.Invoices), len(old.Invoices)+len(invoices)),
		Records:    make([]query.Record, len(old.Records), len(old.Records)+len(invoices)),
	}
	copy(next.Invoices, old.Invoices)
	copy(next.Records, old.Records)

	saved := make([]domain.Invoice, 0, len(invoices))
	id := s.nextID
	for _, inv := range invoices {
		inv.ID = id
		rec, err := inv.Record()
		if err != nil {
			return nil, err
		}
		next.Invoices = append(next.Invoices, inv)
		next.Records = append(next.Records, rec)
		saved = append(saved, inv)
		id++
	}

	s.nextID = id
	s.current.Store(next)
	return saved, nil
}

func (s *InvoiceStore) Cancel(ctx context.Context, irn, reason string, at time.Time) (domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invoice{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current.Load()
	idx := indexOf(old, irn)
	if idx < 0 {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}

	inv := old.Invoices[idx]
	if err := inv.Cancel(reason, at); err != nil {
		return domain.Invoice{}, err
	}
	rec, err := inv.Record()
	if err != nil {
		return domain.Invoice{}, err
	}

	next := &domain.Snapshot{
		Generation: old.Generation,
		Invoices:   append([]domain.Invoice(nil), old.Invoices...),
		Records:    append([]query.Record(nil), old.Records...),
	}
	next.Invoices[idx] = inv
	next.Records[idx] = rec

	s.current.Store(next)
	return inv, nil
}

func (s *InvoiceStore) Reset(ctx context.Context, seed []domain.Invoice) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := &domain.Snapshot{
		Generation: s.current.Load().Generation + 1,
		Invoices:   make([]domain.Invoice, 0, len(seed)),
		Records:    make([]query.Record, 0, len(seed)),
	}
	for i, inv := range seed {
		inv.ID = i + 1
		rec, err := inv.Record()
		if err != nil {
			return nil, fmt.Errorf("reset: %w", err)
		}
		next.Invoices = append(next.Invoices, inv)
		next.Records = append(next.Records, rec)
	}

	s.nextID = len(seed) + 1
	s.current.Store(next)
	return next, nil
}

func (s *InvoiceStore) FindByIRN(ctx context.Context, irn string) (domain.Invoice, error) {
	snap := s.current.Load()
	idx := indexOf(snap, irn)
	if idx < 0 {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return snap.Invoices[idx], nil
}

func indexOf(snap *domain.Snapshot, irn string) int {
	for i := range snap.Invoices {
		if snap.Invoices[i].IRN == irn {
			return i
		}
	}
	return -1
}
