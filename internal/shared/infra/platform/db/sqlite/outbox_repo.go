package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"github.com/davicafu/einvoicelab/internal/shared/domain"

	_ "modernc.org/sqlite"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox (
	id             TEXT PRIMARY KEY,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	payload        TEXT NOT NULL,
	created_at     DATETIME NOT NULL,
	processed      INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at);`

const outboxTable = "outbox"

// outboxRow es la fila tal como la devuelve SQLite; el payload viaja como TEXT.
type outboxRow struct {
	ID            uuid.UUID `db:"id"`
	AggregateType string    `db:"aggregate_type"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Payload       string    `db:"payload"`
	CreatedAt     time.Time `db:"created_at"`
}

// OutboxRepoSQLite implementa la interfaz shared.OutboxRepository.
type OutboxRepoSQLite struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewOutboxRepoSQLite(db *sql.DB) *OutboxRepoSQLite {
	return &OutboxRepoSQLite{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Open abre (o crea) la base SQLite y aplica el esquema del outbox.
// Con ":memory:" cada conexión tendría su propia base, por eso se limita a una.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, outboxSchema); err != nil {
		return fmt.Errorf("sqlite outbox schema: %w", err)
	}
	return nil
}

func (r *OutboxRepoSQLite) Save(ctx context.Context, evt domain.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	_, err = r.builder.Insert(outboxTable).
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at", "processed").
		Values(evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, string(payload), evt.CreatedAt.UTC(), 0).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FetchPendingOutbox obtiene los eventos no procesados por orden de creación.
func (r *OutboxRepoSQLite) FetchPendingOutbox(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	query, args, err := r.builder.
		Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From(outboxTable).
		Where(sq.Eq{"processed": 0}).
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

	events := make([]domain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		evt := domain.OutboxEvent{
			ID:            row.ID,
			AggregateType: row.AggregateType,
			AggregateID:   row.AggregateID,
			EventType:     row.EventType,
			CreatedAt:     row.CreatedAt,
		}
		if err := json.Unmarshal([]byte(row.Payload), &evt.Payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", row.ID, err)
		}
		events = append(events, evt)
	}
	return events, nil
}

func (r *OutboxRepoSQLite) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.builder.Update(outboxTable).
		Set("processed", 1).
		Where(sq.Eq{"id": id.String()}).
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
var _ domain.OutboxRepository = (*OutboxRepoSQLite)(nil)
