// Package handler is the thin HTTP layer over the driver services. It
// decodes requests, delegates, and renders the uniform JSON envelope;
// business rules stay in the service.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"drivergate/internal/driver/models"
	"drivergate/internal/driver/service"
	id "drivergate/pkg/domain"
	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/platform/httputil"
)

type Handler struct {
	svc *service.Service
	log *slog.Logger
}

func New(svc *service.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// registerResponse matches the registration form's expectations.
type registerResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	DriverID string `json:"driverId"`
	Status   string `json:"status"`
	Bonus    string `json:"bonus"`
}

// Register handles POST /register-driver.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	rec, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.logError(r, "register", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, registerResponse{
		Success:  true,
		Message:  service.MsgRegistered,
		DriverID: rec.ID.String(),
		Status:   string(rec.Status),
		Bonus:    fmt.Sprintf("%d GHT", models.WelcomeBonus),
	})
}

// List handles GET /admin-drivers with an optional status filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter *models.Status
	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter = &status
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logError(r, "list", err)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []*models.DriverRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{Success: true, Data: records})
}

// adminRequest is the shared POST body. Amount is a pointer so a
// missing or non-numeric value is distinguishable for update-balance.
type adminRequest struct {
	DriverID string   `json:"driverId"`
	Amount   *float64 `json:"amount"`
	Reason   string   `json:"reason"`
}

// Action handles POST /admin-drivers?action=… and dispatches on the
// action query parameter, mirroring the admin dashboard's contract.
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")

	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.DriverID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Driver ID is required"))
		return
	}
	recordID, err := id.ParseRecordID(req.DriverID)
	if err != nil {
		// An unparsable id can never match a record.
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Driver not found"))
		return
	}

	switch action {
	case "approve":
		h.approve(w, r, recordID)
	case "reject":
		h.reject(w, r, recordID)
	case "update-balance":
		h.updateBalance(w, r, recordID, req)
	case "delete":
		h.delete(w, r, recordID)
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid action"))
	}
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request, recordID id.RecordID) {
	rec, err := h.svc.Approve(r.Context(), recordID)
	if err != nil {
		h.logError(r, "approve", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Data:    rec,
		Message: service.ApprovalMessage(rec),
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, recordID id.RecordID) {
	rec, err := h.svc.Reject(r.Context(), recordID)
	if err != nil {
		h.logError(r, "reject", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Data:    rec,
		Message: "Driver rejected",
	})
}

func (h *Handler) updateBalance(w http.ResponseWriter, r *http.Request, recordID id.RecordID, req adminRequest) {
	if req.Amount == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Amount must be a number"))
		return
	}

	rec, err := h.svc.AdjustBalance(r.Context(), recordID, *req.Amount, req.Reason)
	if err != nil {
		h.logError(r, "update-balance", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Data:    rec,
		Message: service.BalanceMessage(rec),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, recordID id.RecordID) {
	if err := h.svc.Delete(r.Context(), recordID); err != nil {
		h.logError(r, "delete", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Message: "Driver deleted",
	})
}

// Zones handles GET /zones with the static base-zone catalog.
func (h *Handler) Zones(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{Success: true, Data: models.BaseZones})
}

func (h *Handler) logError(r *http.Request, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.log.Error(op+" failed", "error", err)
	}
}
