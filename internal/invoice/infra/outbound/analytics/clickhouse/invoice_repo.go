package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
)

// InvoiceAnalyticsRepo guarda cada evento de factura en una tabla MergeTree.
type InvoiceAnalyticsRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ invoiceDomain.AnalyticsRepository = (*InvoiceAnalyticsRepo)(nil)

func NewInvoiceAnalyticsRepo(addr, dbName, user, password string) (*InvoiceAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
			Username: user,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &InvoiceAnalyticsRepo{db: conn, now: time.Now}, nil
}

// InitSchema crea la tabla si no existe. Particionada por mes del evento.
func (r *InvoiceAnalyticsRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS invoices_log (
			irn           String,
			invoice_id    UInt32,
			event_type    LowCardinality(String),
			invoice_no    String,
			document_type LowCardinality(String),
			supply_type   LowCardinality(String),
			seller_gstin  String,
			buyer_gstin   String,
			seller_state  LowCardinality(String),
			buyer_state   LowCardinality(String),
			is_interstate UInt8,
			total_value   Float64,
			status        LowCardinality(String),
			generated_at  DateTime64(3),
			event_time    DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (supply_type, status, event_time);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// LogBatch inserta el lote en una sola transacción; si una fila falla no se escribe ninguna.
func (r *InvoiceAnalyticsRepo) LogBatch(ctx context.Context, eventType string, invoices []invoiceDomain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO invoices_log (
		irn, invoice_id, event_type, invoice_no, document_type, supply_type,
		seller_gstin, buyer_gstin, seller_state, buyer_state, is_interstate,
		total_value, status, generated_at, event_time)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	eventTime := r.now()
	for _, inv := range invoices {
		if _, err := stmt.ExecContext(ctx, logRow(eventType, inv, eventTime)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to exec statement for invoice %s: %w", inv.IRN, err)
		}
	}

	return tx.Commit()
}

func (r *InvoiceAnalyticsRepo) Close() error {
	return r.db.Close()
}

// logRow sigue el orden de columnas del INSERT.
func logRow(eventType string, inv invoiceDomain.Invoice, eventTime time.Time) []interface{} {
	sum := invoiceDomain.NewSummary(inv)
	var interstate uint8
	if sum.IsInterstate {
		interstate = 1
	}
	return []interface{}{
		sum.IRN,
		uint32(sum.ID),
		eventType,
		sum.InvoiceNo,
		sum.DocumentType,
		sum.SupplyType,
		sum.SellerGstin,
		sum.BuyerGstin,
		sum.SellerState,
		sum.BuyerState,
		interstate,
		sum.TotalValue,
		string(sum.Status),
		sum.GeneratedAt,
		eventTime,
	}
}
