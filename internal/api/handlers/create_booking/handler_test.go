package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	return r.WithContext(middleware.WithUser(r.Context(), 7, domain.RoleStudent))
}

func TestHandle_Created(t *testing.T) {
	slotID := uuid.New()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:            uuid.New(),
		UserID:        7,
		SlotID:        slotID,
		SlotNumber:    "P001",
		Location:      domain.LocationBuildingA,
		VehicleNumber: "ABC123",
		VehicleType:   domain.VehicleCar,
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		DurationHours: 2,
		HourlyRate:    5,
		TotalAmount:   10,
		Status:        domain.StatusActive,
	}}
	h := NewHandler(uc, testutil.Logger{})

	body := fmt.Sprintf(`{"slotId":"%s","vehicleNumber":"abc123","vehicleType":"Car","location":"Building A",
		"startTime":"2026-03-10T09:00:00Z","endTime":"2026-03-10T11:00:00Z"}`, slotID)
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, domain.VehicleCar, uc.got.VehicleType)
	assert.Equal(t, start, uc.got.StartTime)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "P001", resp.SlotNumber)
	assert.InDelta(t, 10.0, resp.TotalAmount, 0.001)
	assert.Equal(t, "2026-03-10T11:00:00Z", resp.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	validBody := fmt.Sprintf(`{"slotId":"%s","vehicleNumber":"abc","vehicleType":"car","location":"Building A",
		"startTime":"2026-03-10T09:00:00Z","endTime":"2026-03-10T11:00:00Z"}`, uuid.New())

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "broken json", body: `{`, wantStatus: http.StatusBadRequest, wantKind: "InvalidInput"},
		{name: "bad time", body: `{"slotId":"` + uuid.NewString() + `","startTime":"tomorrow","endTime":"later"}`, wantStatus: http.StatusBadRequest, wantKind: "InvalidInput"},
		{name: "conflict", body: validBody, err: createBooking.ErrSlotConflict, wantStatus: http.StatusConflict, wantKind: "SlotConflict"},
		{name: "limit", body: validBody, err: createBooking.ErrTooManyActiveBookings, wantStatus: http.StatusUnprocessableEntity, wantKind: "TooManyActiveBookings"},
		{name: "storage", body: validBody, err: fmt.Errorf("%w: timeout", createBooking.ErrStorageUnavailable), wantStatus: http.StatusServiceUnavailable, wantKind: "StorageUnavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, testutil.Logger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
		})
	}
}
