package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "drivergate/pkg/domain"
	txcontext "drivergate/pkg/platform/tx"
)

// PostgresStore appends events to the driver_audit_events table.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO driver_audit_events (id, record_id, action, driver_id, amount, reason, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), event.RecordID.String(), string(event.Action),
		nullable(event.DriverID), event.Amount, nullable(event.Reason),
		nullable(event.RequestID), event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRecord(ctx context.Context, recordID id.RecordID) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, action, driver_id, amount, reason, request_id, created_at
		FROM driver_audit_events
		WHERE record_id = $1
		ORDER BY created_at ASC`, recordID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			event     Event
			rawID     string
			driverID  sql.NullString
			reason    sql.NullString
			requestID sql.NullString
		)
		if err := rows.Scan(&rawID, &event.Action, &driverID, &event.Amount, &reason, &requestID, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		rec, err := id.ParseRecordID(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse audit record id: %w", err)
		}
		event.RecordID = rec
		event.DriverID = driverID.String
		event.Reason = reason.String
		event.RequestID = requestID.String
		out = append(out, event)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
