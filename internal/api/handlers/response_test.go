package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "conflict", err: fmt.Errorf("%w: window taken", domain.ErrSlotConflict), wantStatus: http.StatusConflict, wantKind: "SlotConflict"},
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantKind: "NotFound"},
		{name: "forbidden", err: domain.ErrUnauthorized, wantStatus: http.StatusForbidden, wantKind: "Unauthorized"},
		{name: "business rule", err: domain.ErrCancellationWindowClosed, wantStatus: http.StatusUnprocessableEntity, wantKind: "CancellationWindowClosed"},
		{name: "storage", err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, errors.New("dial tcp")), wantStatus: http.StatusServiceUnavailable, wantKind: "StorageUnavailable"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantKind: "Internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.NotContains(t, body.Message, "dial tcp")
		})
	}
}

func TestEveryKindHasStatus(t *testing.T) {
	kinds := []domain.ErrorKind{
		domain.KindInvalidInput, domain.KindInvalidWindow, domain.KindWindowInPast, domain.KindTooFarInAdvance,
		domain.KindDurationTooLong, domain.KindSlotUnsuitable, domain.KindLocationMismatch, domain.KindSlotConflict,
		domain.KindTooManyActiveBookings, domain.KindVehicleNotRegistered, domain.KindStorageUnavailable,
		domain.KindNotFound, domain.KindNotActive, domain.KindCancellationWindowClosed, domain.KindUnauthorized,
		domain.KindNotExtendable, domain.KindInvalidExtension, domain.KindExtensionConflict,
		domain.KindAlreadyCheckedIn, domain.KindTooEarly, domain.KindWindowExpired, domain.KindNotCheckedIn,
		domain.KindAlreadyCheckedOut, domain.KindSlotOccupied,
	}
	for _, kind := range kinds {
		assert.NotEqual(t, http.StatusInternalServerError, StatusForKind(kind), kind)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Hours int `json:"hours"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"hours": 2}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, 2, v.Hours)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"minutes": 2}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.NoError(t, DecodeOptionalJSON(r, &v))
}
