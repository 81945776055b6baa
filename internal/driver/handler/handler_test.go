package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"drivergate/internal/driver/handler"
	"drivergate/internal/driver/sequence"
	"drivergate/internal/driver/service"
	"drivergate/internal/driver/service/mocks"
	"drivergate/internal/driver/store"
)

type HandlerSuite struct {
	suite.Suite
	handler *handler.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), sequence.NewInMemory(), service.WithLogger(log))
	s.handler = handler.New(svc, log)
}

func (s *HandlerSuite) postJSON(handlerFunc http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registrationBody() map[string]any {
	return map[string]any{
		"fullName":       "Jean Baptiste",
		"whatsappNumber": "+50912345678",
		"homeAddress":    "12 Rue Capois, Port-au-Prince",
		"primaryZone":    "delmas-32",
		"idPhotoUrl":     "http://localhost:8080/driver-documents/id-photos/1-cin.jpg",
		"platePhotoUrl":  "http://localhost:8080/driver-documents/plate-photos/1-plak.jpg",
		"selfiePhotoUrl": "http://localhost:8080/driver-documents/selfie-photos/1-selfie.jpg",
	}
}

// registerOne registers a driver and returns its record id.
func (s *HandlerSuite) registerOne() string {
	rec := s.postJSON(s.handler.Register, "/register-driver", registrationBody())
	s.Require().Equal(http.StatusOK, rec.Code)
	return s.decode(rec)["driverId"].(string)
}

func (s *HandlerSuite) TestRegisterSuccess() {
	rec := s.postJSON(s.handler.Register, "/register-driver", registrationBody())

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal(true, body["success"])
	s.Equal(service.MsgRegistered, body["message"])
	s.Equal("Pending", body["status"])
	s.Equal("500 GHT", body["bonus"])
	_, err := uuid.Parse(body["driverId"].(string))
	s.NoError(err, "driverId in the registration response is the record id")
}

func (s *HandlerSuite) TestRegisterValidationFailure() {
	rec := s.postJSON(s.handler.Register, "/register-driver", map[string]any{})

	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	s.Equal(false, body["success"])
	s.Equal("Validation failed", body["error"])
	s.Len(body["details"], 7)
}

func (s *HandlerSuite) TestRegisterMalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/register-driver", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.handler.Register(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestListEmpty() {
	req := httptest.NewRequest(http.MethodGet, "/admin-drivers", nil)
	rec := httptest.NewRecorder()
	s.handler.List(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.True(body.Success)
	s.NotNil(body.Data, "empty list renders as [] not null")
	s.Len(body.Data, 0)
}

func (s *HandlerSuite) TestListStatusFilter() {
	id := s.registerOne()
	s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=reject", map[string]any{"driverId": id})
	s.Require().Equal(http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin-drivers?status=Rejected", nil)
	out := httptest.NewRecorder()
	s.handler.List(out, req)

	var body struct {
		Data []struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(out.Body.Bytes(), &body))
	s.Require().Len(body.Data, 1)
	s.Equal("Rejected", body.Data[0].Status)
}

func (s *HandlerSuite) TestListRejectsUnknownStatus() {
	req := httptest.NewRequest(http.MethodGet, "/admin-drivers?status=bogus", nil)
	rec := httptest.NewRecorder()
	s.handler.List(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestActionRequiresDriverID() {
	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=approve", map[string]any{})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Driver ID is required", s.decode(rec)["error"])
}

func (s *HandlerSuite) TestActionUnknownAction() {
	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=promote",
		map[string]any{"driverId": uuid.NewString()})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid action", s.decode(rec)["error"])
}

func (s *HandlerSuite) TestActionUnparsableIDIsNotFound() {
	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=approve",
		map[string]any{"driverId": "not-a-uuid"})

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Driver not found", s.decode(rec)["error"])
}

func (s *HandlerSuite) TestApprove() {
	id := s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=approve", map[string]any{"driverId": id})

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal(true, body["success"])
	s.Equal("Driver approved with ID DRV-00001", body["message"])
	data := body["data"].(map[string]any)
	s.Equal("Active", data["status"])
	s.Equal("DRV-00001", data["driver_id"])
}

func (s *HandlerSuite) TestReject() {
	id := s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=reject", map[string]any{"driverId": id})

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("Driver rejected", body["message"])
	s.Equal("Rejected", body["data"].(map[string]any)["status"])
}

func (s *HandlerSuite) TestUpdateBalanceRequiresAmount() {
	id := s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=update-balance",
		map[string]any{"driverId": id, "reason": "bonus"})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Amount must be a number", s.decode(rec)["error"])
}

func (s *HandlerSuite) TestUpdateBalance() {
	id := s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=update-balance",
		map[string]any{"driverId": id, "amount": -50.5, "reason": "fre sèvis"})

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("Balance updated to 449.5 GHT", body["message"])
	s.Equal(449.5, body["data"].(map[string]any)["bonus_amount"])
}

func (s *HandlerSuite) TestDelete() {
	id := s.registerOne()

	rec := s.postJSON(s.handler.Action, "/admin-drivers?action=delete", map[string]any{"driverId": id})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Driver deleted", s.decode(rec)["message"])

	// A second delete hits a record that no longer exists.
	rec = s.postJSON(s.handler.Action, "/admin-drivers?action=delete", map[string]any{"driverId": id})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Driver not found", s.decode(rec)["error"])
}

// An issuance outage is an internal failure, but the admin still needs
// to know which operation failed.
func TestApproveSurfacesIssuanceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := mocks.NewMockIssuer(ctrl)
	drivers := store.NewInMemory()
	svc := service.New(drivers, issuer, service.WithLogger(log))
	h := handler.New(svc, log)

	rec, err := svc.Register(context.Background(), service.RegistrationRequest{
		FullName:       "Jean Baptiste",
		WhatsappNumber: "+50912345678",
		HomeAddress:    "12 Rue Capois, Port-au-Prince",
		PrimaryZone:    "delmas-32",
		IDPhotoURL:     "http://localhost:8080/driver-documents/id-photos/1-cin.jpg",
		PlatePhotoURL:  "http://localhost:8080/driver-documents/plate-photos/1-plak.jpg",
		SelfiePhotoURL: "http://localhost:8080/driver-documents/selfie-photos/1-selfie.jpg",
	})
	require.NoError(t, err)

	issuer.EXPECT().Next(gomock.Any()).Return("", errors.New("sequence down"))

	raw, err := json.Marshal(map[string]any{"driverId": rec.ID.String()})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/admin-drivers?action=approve", bytes.NewReader(raw))
	out := httptest.NewRecorder()
	h.Action(out, req)

	require.Equal(t, http.StatusInternalServerError, out.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &body))
	assert.Equal(t, "Failed to generate driver ID", body["error"])
	assert.NotContains(t, out.Body.String(), "sequence down")
}

func (s *HandlerSuite) TestZones() {
	req := httptest.NewRequest(http.MethodGet, "/zones", nil)
	rec := httptest.NewRecorder()
	s.handler.Zones(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.True(body.Success)
	s.Len(body.Data, 6)
	s.Equal("delmas-32", body.Data[0].Value)
}
