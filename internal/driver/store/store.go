// Package store persists driver records. The interface is declared here
// next to its consumers; InMemory backs tests and local runs, Postgres
// backs real deployments. Both return sentinel errors for infrastructure
// facts and leave domain translation to the service layer.
package store

import (
	"context"

	"drivergate/internal/driver/models"
	id "drivergate/pkg/domain"
)

// DriverStore is the durable home of DriverRecords.
//
// Execute runs a validate-then-mutate cycle while holding the record's
// lock (mutex in memory, SELECT ... FOR UPDATE in Postgres) so approve
// and reject never interleave with concurrent writers.
//
// AdjustBalance applies `bonus_amount = bonus_amount + amount` as one
// atomic statement; concurrent adjustments serialize at the store and
// cannot lose updates.
type DriverStore interface {
	Create(ctx context.Context, rec *models.DriverRecord) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.DriverRecord, error)
	// List returns records newest-first by creation time, optionally
	// filtered by status.
	List(ctx context.Context, status *models.Status) ([]*models.DriverRecord, error)
	Execute(ctx context.Context, recordID id.RecordID, validate func(*models.DriverRecord) error, mutate func(*models.DriverRecord)) (*models.DriverRecord, error)
	AdjustBalance(ctx context.Context, recordID id.RecordID, amount float64) (*models.DriverRecord, error)
	Delete(ctx context.Context, recordID id.RecordID) error
}
