package models

import (
	"time"

	id "drivergate/pkg/domain"
	dErrors "drivergate/pkg/domain-errors"
)

// WelcomeBonus is the fixed GHT balance granted at registration and
// reset at every approval.
const WelcomeBonus = 500

// DriverRecord is the central entity of the registration workflow.
//
// Invariants:
//   - ID is immutable and unique for the record's lifetime
//   - DriverID is nil while Status is Pending or Rejected, non-nil and
//     unique once Active; an issued driver id is never reused even if
//     the record is later deleted
//   - BonusAmount starts at WelcomeBonus and moves only through explicit
//     signed adjustments; it may go negative
//   - all three document URLs are present before a record exists
//
// JSON tags follow the admin dashboard wire format (snake_case).
type DriverRecord struct {
	ID             id.RecordID `json:"id"`
	DriverID       *string     `json:"driver_id"`
	FullName       string      `json:"full_name"`
	WhatsappNumber string      `json:"whatsapp_number"`
	HomeAddress    string      `json:"home_address"`
	PrimaryZone    string      `json:"primary_zone"`
	OtherZones     *string     `json:"other_zones"`
	ReferrerCode   *string     `json:"referrer_code"`
	IDPhotoURL     string      `json:"id_photo_url"`
	PlatePhotoURL  string      `json:"plate_photo_url"`
	SelfiePhotoURL string      `json:"selfie_photo_url"`
	Status         Status      `json:"status"`
	BonusAmount    float64     `json:"bonus_amount"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CanApprove checks the state machine for the transition to Active.
func (d *DriverRecord) CanApprove() error {
	if !d.Status.CanTransitionTo(StatusActive) {
		return dErrors.Newf(dErrors.CodeConflict, "cannot approve driver in status %s", d.Status)
	}
	return nil
}

// ApplyApproval marks the record Active with a freshly issued driver id
// and resets the bonus to the welcome value, overwriting any prior
// adjustments. Call CanApprove first.
func (d *DriverRecord) ApplyApproval(driverID string, now time.Time) {
	d.Status = StatusActive
	d.DriverID = &driverID
	d.BonusAmount = WelcomeBonus
	d.UpdatedAt = now
}

// CanReject checks the state machine for the transition to Rejected.
func (d *DriverRecord) CanReject() error {
	if !d.Status.CanTransitionTo(StatusRejected) {
		return dErrors.Newf(dErrors.CodeConflict, "cannot reject driver in status %s", d.Status)
	}
	return nil
}

// ApplyRejection marks the record Rejected. DriverID and BonusAmount
// are left untouched.
func (d *DriverRecord) ApplyRejection(now time.Time) {
	d.Status = StatusRejected
	d.UpdatedAt = now
}
