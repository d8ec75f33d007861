package run_sweep

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	sweepExpired "github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
)

func TestHandle_ClosesOverdueBookings(t *testing.T) {
	now := time.Now().UTC()
	env := testutil.NewEnv(t, now)
	slot := env.AddSlot(t, nil)
	overdue := env.SeedBooking(t, slot, 1, now.Add(-3*time.Hour), now.Add(-time.Hour))
	upcoming := env.SeedBooking(t, slot, 2, now.Add(time.Hour), now.Add(2*time.Hour))

	uc, err := sweepExpired.NewUseCase(env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, domain.StatusNoShow, env.Logger)
	require.NoError(t, err)
	handler := NewHandler(uc, env.Logger)

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/admin/sweep", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SweepResponse{Transitioned: 1, NoShow: 1}, resp)

	assert.Equal(t, domain.StatusNoShow, env.Booking(t, overdue.ID).Status)
	assert.Equal(t, domain.StatusActive, env.Booking(t, upcoming.ID).Status)
	testutil.AssertSlotInvariants(t, env.Store)

	// Повторный проход ничего не меняет
	rec = httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodPost, "/admin/sweep", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SweepResponse{}, resp)
}
