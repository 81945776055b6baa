package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"drivergate/internal/driver/models"
	id "drivergate/pkg/domain"
	"drivergate/pkg/platform/sentinel"
	"drivergate/pkg/requestcontext"
)

// Postgres persists driver records in the drivers table. Balance
// adjustments are a single arithmetic UPDATE and Execute wraps
// validate-then-mutate in a transaction with SELECT ... FOR UPDATE, so
// neither can lose concurrent updates.
type Postgres struct {
	db *sql.DB
}

var _ DriverStore = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const driverColumns = `id, driver_id, full_name, whatsapp_number, home_address, primary_zone,
	other_zones, referrer_code, id_photo_url, plate_photo_url, selfie_photo_url,
	status, bonus_amount, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, rec *models.DriverRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drivers (`+driverColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID.String(), rec.DriverID, rec.FullName, rec.WhatsappNumber, rec.HomeAddress,
		rec.PrimaryZone, rec.OtherZones, rec.ReferrerCode, rec.IDPhotoURL, rec.PlatePhotoURL,
		rec.SelfiePhotoURL, string(rec.Status), rec.BonusAmount, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, recordID id.RecordID) (*models.DriverRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1`, recordID.String())
	return scanDriver(row)
}

func (s *Postgres) List(ctx context.Context, status *models.Status) ([]*models.DriverRecord, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []*models.DriverRecord
	for rows.Next() {
		rec, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Postgres) Execute(ctx context.Context, recordID id.RecordID, validate func(*models.DriverRecord) error, mutate func(*models.DriverRecord)) (*models.DriverRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin driver tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1 FOR UPDATE`, recordID.String())
	rec, err := scanDriver(row)
	if err != nil {
		return nil, err
	}

	if err := validate(rec); err != nil {
		return nil, err
	}
	mutate(rec)

	_, err = tx.ExecContext(ctx, `
		UPDATE drivers
		SET driver_id = $2, status = $3, bonus_amount = $4, updated_at = $5
		WHERE id = $1`,
		recordID.String(), rec.DriverID, string(rec.Status), rec.BonusAmount, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit driver tx: %w", err)
	}
	return rec, nil
}

func (s *Postgres) AdjustBalance(ctx context.Context, recordID id.RecordID, amount float64) (*models.DriverRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE drivers
		SET bonus_amount = bonus_amount + $2, updated_at = $3
		WHERE id = $1
		RETURNING `+driverColumns,
		recordID.String(), amount, requestcontext.Now(ctx),
	)
	return scanDriver(row)
}

func (s *Postgres) Delete(ctx context.Context, recordID id.RecordID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, recordID.String())
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete driver rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*models.DriverRecord, error) {
	var (
		rec          models.DriverRecord
		rawID        string
		driverID     sql.NullString
		otherZones   sql.NullString
		referrerCode sql.NullString
		status       string
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(
		&rawID, &driverID, &rec.FullName, &rec.WhatsappNumber, &rec.HomeAddress,
		&rec.PrimaryZone, &otherZones, &referrerCode, &rec.IDPhotoURL, &rec.PlatePhotoURL,
		&rec.SelfiePhotoURL, &status, &rec.BonusAmount, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan driver: %w", err)
	}

	recordID, err := id.ParseRecordID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse driver record id: %w", err)
	}
	rec.ID = recordID
	if driverID.Valid {
		rec.DriverID = &driverID.String
	}
	if otherZones.Valid {
		rec.OtherZones = &otherZones.String
	}
	if referrerCode.Valid {
		rec.ReferrerCode = &referrerCode.String
	}
	rec.Status = models.Status(status)
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
