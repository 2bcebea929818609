package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	sharedEvents "github.com/davicafu/einvoicelab/internal/shared/domain/events"
	sharedInfraEvents "github.com/davicafu/einvoicelab/internal/shared/infra/events"
	sharedUtils "github.com/davicafu/einvoicelab/internal/shared/infra/utils"
)

// CacheEvicter es lo único que el consumidor necesita del servicio.
type CacheEvicter interface {
	EvictCached(ctx context.Context, irn string) error
}

// InvoiceConsumer reacciona a los eventos de integración del topic einvoice:
// las cancelaciones invalidan la caché y las facturas generadas van a analytics.
type InvoiceConsumer struct {
	service   CacheEvicter
	analytics invoiceDomain.AnalyticsRepository // opcional
	log       *zap.Logger
}

var _ sharedInfraEvents.MessageHandler = (*InvoiceConsumer)(nil)

func NewInvoiceConsumer(service CacheEvicter, analytics invoiceDomain.AnalyticsRepository, logger *zap.Logger) *InvoiceConsumer {
	return &InvoiceConsumer{
		service:   service,
		analytics: analytics,
		log:       logger,
	}
}

func (c *InvoiceConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case invoiceDomain.InvoiceGenerated:
		sharedUtils.UnmarshalAndHandle[invoiceDomain.Invoice](c.log, base.Type, base.Data, func(inv invoiceDomain.Invoice) {
			if c.analytics == nil {
				return
			}
			c.withTimeout(ctx, inv.IRN, func(ctx context.Context) error {
				return c.analytics.LogBatch(ctx, base.Type, []invoiceDomain.Invoice{inv})
			}, "Invoice logged to analytics")
		})

	case invoiceDomain.InvoiceCancelled:
		sharedUtils.UnmarshalAndHandle[invoiceDomain.Invoice](c.log, base.Type, base.Data, func(inv invoiceDomain.Invoice) {
			c.withTimeout(ctx, inv.IRN, func(ctx context.Context) error {
				if err := c.service.EvictCached(ctx, inv.IRN); err != nil {
					return err
				}
				if c.analytics != nil {
					return c.analytics.LogBatch(ctx, base.Type, []invoiceDomain.Invoice{inv})
				}
				return nil
			}, "Cancelled invoice evicted from cache")
		})

	case invoiceDomain.InvoiceReset:
		sharedUtils.UnmarshalAndHandle[invoiceDomain.ResetPayload](c.log, base.Type, base.Data, func(p invoiceDomain.ResetPayload) {
			c.log.Info("Invoice store reset observed",
				zap.Uint64("generation", p.Generation),
				zap.Int("count", p.Count),
			)
		})

	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type))
	}
}

// withTimeout ejecuta la acción con un contexto acotado y registra el resultado.
func (c *InvoiceConsumer) withTimeout(ctx context.Context, irn string, action func(ctx context.Context) error, successMsg string) {
	ctxEvt, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := action(ctxEvt); err != nil {
		c.log.Warn("Failed to process invoice event", zap.String("irn", irn), zap.Error(err))
		return
	}
	c.log.Info(successMsg, zap.String("irn", irn))
}
