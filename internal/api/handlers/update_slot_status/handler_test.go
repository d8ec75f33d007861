package update_slot_status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	updateSlotStatus "github.com/m04kA/SMC-ParkingService/internal/usecase/update_slot_status"
)

func newRouter(t *testing.T) (*testutil.Env, http.Handler, *domain.ParkingSlot, *domain.Booking) {
	now := time.Now().UTC()
	env := testutil.NewEnv(t, now)
	slot := env.AddSlot(t, nil)
	start := now.Add(24 * time.Hour).Truncate(time.Hour)
	booking := env.SeedBooking(t, slot, 5, start, start.Add(time.Hour))

	uc := updateSlotStatus.NewUseCase(env.Store.Slots(), env.Store.Bookings(), env.Allocator, env.Notifier, env.TxManager, env.Logger)

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.Handle("/slots/{slotId}/status",
		middleware.RequireAdmin(http.HandlerFunc(NewHandler(uc, env.Logger).Handle))).Methods(http.MethodPatch)
	return env, router, slot, booking
}

func doPatch(router http.Handler, path, role, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	r.Header.Set(middleware.HeaderUserID, "1")
	r.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandle_MaintenanceByAdmin(t *testing.T) {
	env, router, slot, booking := newRouter(t)

	rec := doPatch(router, "/slots/"+slot.ID.String()+"/status", "admin", `{"maintenanceStatus":"maintenance"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateSlotStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.CancelledBookings)
	assert.Equal(t, "maintenance", resp.Slot.MaintenanceStatus)
	assert.False(t, resp.Slot.IsAvailable)
	assert.Nil(t, resp.Slot.CurrentBookingID)

	assert.Equal(t, domain.StatusCancelled, env.Booking(t, booking.ID).Status)
	testutil.AssertSlotInvariants(t, env.Store)
}

func TestHandle_Rejections(t *testing.T) {
	env, router, slot, booking := newRouter(t)
	path := "/slots/" + slot.ID.String() + "/status"

	// Не администратор
	rec := doPatch(router, path, "faculty", `{"isActive":false}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doPatch(router, "/slots/nope/status", "admin", `{"isActive":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doPatch(router, path, "admin", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doPatch(router, path, "admin", `{"maintenanceStatus":"flooded"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, domain.StatusActive, env.Booking(t, booking.ID).Status)
}
