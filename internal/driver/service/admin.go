package service

import (
	"context"
	"errors"
	"fmt"

	"drivergate/internal/audit"
	"drivergate/internal/driver/models"
	id "drivergate/pkg/domain"
	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/platform/sentinel"
	"drivergate/pkg/requestcontext"
)

// List returns driver records newest-first, optionally filtered by
// lifecycle status.
func (s *Service) List(ctx context.Context, status *models.Status) ([]*models.DriverRecord, error) {
	records, err := s.drivers.List(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list drivers")
	}
	return records, nil
}

// Approve issues a fresh driver id, marks the record Active, and resets
// the bonus to the welcome value. Identifier issuance runs first: if it
// fails, the record is untouched. A failure after issuance burns the
// sequence value, which only leaves a gap in the id series.
func (s *Service) Approve(ctx context.Context, recordID id.RecordID) (*models.DriverRecord, error) {
	driverID, err := s.issuer.Next(ctx)
	if err != nil {
		s.log.Error("driver id issuance failed", "record_id", recordID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to generate driver ID")
	}

	now := requestcontext.Now(ctx)
	rec, err := s.drivers.Execute(ctx, recordID,
		func(d *models.DriverRecord) error { return d.CanApprove() },
		func(d *models.DriverRecord) { d.ApplyApproval(driverID, now) },
	)
	if err != nil {
		return nil, wrapDriverErr(err, "failed to approve driver")
	}

	s.auditor.Emit(ctx, audit.Event{RecordID: rec.ID, Action: audit.ActionDriverApproved, DriverID: driverID})
	if s.metrics != nil {
		s.metrics.Approvals.Inc()
	}
	s.log.Info("driver approved", "record_id", rec.ID, "driver_id", driverID)
	return rec, nil
}

// Reject marks the record Rejected, leaving driver id and bonus as they
// are.
func (s *Service) Reject(ctx context.Context, recordID id.RecordID) (*models.DriverRecord, error) {
	now := requestcontext.Now(ctx)
	rec, err := s.drivers.Execute(ctx, recordID,
		func(d *models.DriverRecord) error { return d.CanReject() },
		func(d *models.DriverRecord) { d.ApplyRejection(now) },
	)
	if err != nil {
		return nil, wrapDriverErr(err, "failed to reject driver")
	}

	s.auditor.Emit(ctx, audit.Event{RecordID: rec.ID, Action: audit.ActionDriverRejected})
	if s.metrics != nil {
		s.metrics.Rejections.Inc()
	}
	s.log.Info("driver rejected", "record_id", rec.ID)
	return rec, nil
}

// AdjustBalance applies a signed adjustment atomically at the store, so
// concurrent adjustments on the same record cannot lose updates. The
// balance may go negative; no floor is enforced. The reason lands in
// the audit trail.
func (s *Service) AdjustBalance(ctx context.Context, recordID id.RecordID, amount float64, reason string) (*models.DriverRecord, error) {
	rec, err := s.drivers.AdjustBalance(ctx, recordID, amount)
	if err != nil {
		return nil, wrapDriverErr(err, "failed to update balance")
	}

	s.auditor.Emit(ctx, audit.Event{
		RecordID: rec.ID,
		Action:   audit.ActionBalanceAdjusted,
		Amount:   amount,
		Reason:   reason,
	})
	if s.metrics != nil {
		s.metrics.BalanceAdjustments.Inc()
	}
	s.log.Info("balance adjusted",
		"record_id", rec.ID, "amount", amount, "balance", rec.BonusAmount, "reason", reason)
	return rec, nil
}

// Delete permanently removes the record. Uploaded documents are not
// cleaned up and an issued driver id is never reused.
func (s *Service) Delete(ctx context.Context, recordID id.RecordID) error {
	if err := s.drivers.Delete(ctx, recordID); err != nil {
		return wrapDriverErr(err, "failed to delete driver")
	}

	s.auditor.Emit(ctx, audit.Event{RecordID: recordID, Action: audit.ActionDriverDeleted})
	if s.metrics != nil {
		s.metrics.Deletions.Inc()
	}
	s.log.Info("driver deleted", "record_id", recordID)
	return nil
}

// BalanceMessage renders the admin confirmation for an adjustment.
func BalanceMessage(rec *models.DriverRecord) string {
	return fmt.Sprintf("Balance updated to %g GHT", rec.BonusAmount)
}

// ApprovalMessage renders the admin confirmation for an approval.
func ApprovalMessage(rec *models.DriverRecord) string {
	driverID := ""
	if rec.DriverID != nil {
		driverID = *rec.DriverID
	}
	return fmt.Sprintf("Driver approved with ID %s", driverID)
}

func wrapDriverErr(err error, internalMsg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "Driver not found")
	case dErrors.HasCode(err, dErrors.CodeConflict):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}
