package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"drivergate/internal/audit"
	"drivergate/internal/driver/models"
	id "drivergate/pkg/domain"
	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/requestcontext"
)

// haitiPhone matches a Haitian WhatsApp number: +509 followed by
// exactly 8 digits. Callers normalize before this boundary; intake does
// not reformat.
var haitiPhone = regexp.MustCompile(`^\+509\d{8}$`)

// Operator-facing validation messages, kept byte-identical to the
// registration form's language.
const (
	msgFullNameRequired    = "Non konplè obligatwa (minmòm 2 karaktè)"
	msgWhatsappInvalid     = "Nimewo WhatsApp dwe kòmanse ak +509 epi gen 8 chif aprè"
	msgHomeAddressRequired = "Adrès kay obligatwa (minmòm 5 karaktè)"
	msgPrimaryZoneRequired = "Zòn prensipal obligatwa"
	msgIDPhotoRequired     = "Foto CIN/NIF obligatwa"
	msgPlatePhotoRequired  = "Foto plak obligatwa"
	msgSelfieRequired      = "Selfie ak CIN obligatwa"

	// MsgRegistered is returned to the applicant on success.
	MsgRegistered = "Enskripsyon fini. 500 GHT ap tann ou apre verifikasyon."
)

// RegistrationRequest is the intake payload. Document URLs come from
// the upload gateway before registration is submitted.
type RegistrationRequest struct {
	FullName       string `json:"fullName"`
	WhatsappNumber string `json:"whatsappNumber"`
	HomeAddress    string `json:"homeAddress"`
	PrimaryZone    string `json:"primaryZone"`
	OtherZones     string `json:"otherZones,omitempty"`
	ReferrerCode   string `json:"referrerCode,omitempty"`
	IDPhotoURL     string `json:"idPhotoUrl"`
	PlatePhotoURL  string `json:"platePhotoUrl"`
	SelfiePhotoURL string `json:"selfiePhotoUrl"`
}

// validate collects every failing field instead of stopping at the
// first, so the form can highlight all of them at once. Order matches
// the form's field order.
func (r RegistrationRequest) validate() []string {
	var errs []string
	// Length floors count characters, not bytes; accented Kreyòl
	// letters are multi-byte in UTF-8.
	if utf8.RuneCountInString(strings.TrimSpace(r.FullName)) < 2 {
		errs = append(errs, msgFullNameRequired)
	}
	if !haitiPhone.MatchString(r.WhatsappNumber) {
		errs = append(errs, msgWhatsappInvalid)
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.HomeAddress)) < 5 {
		errs = append(errs, msgHomeAddressRequired)
	}
	if r.PrimaryZone == "" {
		errs = append(errs, msgPrimaryZoneRequired)
	}
	if r.IDPhotoURL == "" {
		errs = append(errs, msgIDPhotoRequired)
	}
	if r.PlatePhotoURL == "" {
		errs = append(errs, msgPlatePhotoRequired)
	}
	if r.SelfiePhotoURL == "" {
		errs = append(errs, msgSelfieRequired)
	}
	return errs
}

// Register validates the payload and creates the pending record. This
// is the single entry point that constructs DriverRecords; validation
// failures never reach the store.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*models.DriverRecord, error) {
	if errs := req.validate(); len(errs) > 0 {
		if s.metrics != nil {
			s.metrics.RegistrationsFailed.Inc()
		}
		s.log.Info("registration rejected", "details", len(errs))
		return nil, dErrors.NewValidation(errs)
	}

	now := requestcontext.Now(ctx)
	rec := &models.DriverRecord{
		ID:             id.NewRecordID(),
		DriverID:       nil,
		FullName:       strings.TrimSpace(req.FullName),
		WhatsappNumber: req.WhatsappNumber,
		HomeAddress:    strings.TrimSpace(req.HomeAddress),
		PrimaryZone:    req.PrimaryZone,
		OtherZones:     optional(req.OtherZones),
		ReferrerCode:   optional(req.ReferrerCode),
		IDPhotoURL:     req.IDPhotoURL,
		PlatePhotoURL:  req.PlatePhotoURL,
		SelfiePhotoURL: req.SelfiePhotoURL,
		Status:         models.StatusPending,
		BonusAmount:    models.WelcomeBonus,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.drivers.Create(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create driver record")
	}

	s.auditor.Emit(ctx, audit.Event{RecordID: rec.ID, Action: audit.ActionDriverRegistered})
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	s.log.Info("driver registered", "record_id", rec.ID, "zone", rec.PrimaryZone)
	return rec, nil
}

// optional normalizes blank optional fields to nil so the store keeps
// NULL instead of empty strings.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
