package sequence

import (
	"context"
	"database/sql"
	"fmt"

	"drivergate/pkg/platform/sentinel"
)

// Postgres issues ids from a database sequence. nextval is atomic and
// never hands the same value to two sessions.
type Postgres struct {
	db *sql.DB
}

var _ Issuer = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Next(ctx context.Context) (string, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT nextval('driver_id_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("%w: next driver id: %v", sentinel.ErrUnavailable, err)
	}
	return Format(n), nil
}
