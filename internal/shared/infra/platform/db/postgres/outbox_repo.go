package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox (
	id             UUID PRIMARY KEY,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	payload        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	processed      BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (created_at) WHERE processed = false;`

const outboxTable = "outbox"

type outboxRow struct {
	ID            uuid.UUID `db:"id"`
	AggregateType string    `db:"aggregate_type"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Payload       []byte    `db:"payload"` // JSONB
	CreatedAt     time.Time `db:"created_at"`
}

// OutboxRepoPostgres implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepoPostgres struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewOutboxRepoPostgres(db *sql.DB) *OutboxRepoPostgres {
	return &OutboxRepoPostgres{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open conecta con el driver pgx y aplica el esquema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, outboxSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres outbox schema: %w", err)
	}
	return db, nil
}

func (r *OutboxRepoPostgres) Save(ctx context.Context, evt sharedDomain.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	_, err = r.builder.Insert(outboxTable).
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at", "processed").
		Values(evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, sq.Expr("?::jsonb", string(payload)), evt.CreatedAt, false).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FetchPendingOutbox obtiene los eventos no procesados de la tabla outbox.
func (r *OutboxRepoPostgres) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	query, args, err := r.builder.
		Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From(outboxTable).
		Where(sq.Eq{"processed": false}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []outboxRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	events := make([]sharedDomain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]interface{}
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", row.ID, err)
		}
		events = append(events, sharedDomain.OutboxEvent{
			ID:            row.ID,
			AggregateType: row.AggregateType,
			AggregateID:   row.AggregateID,
			EventType:     row.EventType,
			Payload:       payload,
			CreatedAt:     row.CreatedAt,
		})
	}
	return events, nil
}

func (r *OutboxRepoPostgres) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.builder.Update(outboxTable).
		Set("processed", true).
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepoPostgres)(nil)
