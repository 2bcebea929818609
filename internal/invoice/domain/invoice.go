package domain

import (
	"fmt"
	"time"

	sharedBus "github.com/davicafu/einvoicelab/internal/shared/infra/platform/bus"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

type Status string

const (
	StatusGenerated Status = "Generated"
	StatusCancelled Status = "Cancelled"
)

// Invoice es una e-invoice registrada con su IRN.
type Invoice struct {
	ID           int        `json:"id"`
	IRN          string     `json:"irn"`
	InvoiceData  Payload    `json:"invoiceData"`
	Status       Status     `json:"status"`
	GeneratedAt  time.Time  `json:"generatedAt"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`
}

func (i *Invoice) PartitionKey() string {
	return i.IRN
}

// Cancel cambia el estado a Cancelled. Una factura sólo se cancela una vez.
func (i *Invoice) Cancel(reason string, at time.Time) error {
	if i.Status == StatusCancelled {
		return ErrInvoiceAlreadyCancelled
	}
	at = at.UTC()
	i.Status = StatusCancelled
	i.CancelledAt = &at
	i.CancelReason = reason
	return nil
}

// Record devuelve la forma filtrable de la factura: el documento completo
// más los campos de Summary en la raíz, de modo que tanto supplyType=B2B
// como invoiceData.TranDtls.SupTyp=B2B funcionan.
func (i Invoice) Record() (query.Record, error) {
	rec, err := query.ToRecord(i)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", i.IRN, err)
	}
	summary, err := query.ToRecord(NewSummary(i))
	if err != nil {
		return nil, fmt.Errorf("invoice %s summary: %w", i.IRN, err)
	}
	for k, v := range summary {
		rec[k] = v
	}
	return rec, nil
}

// Verificación estática
var _ sharedBus.Keyer = (*Invoice)(nil)
