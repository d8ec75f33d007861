package run_sweep

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_expired"
)

// SweepResponse итог прохода
type SweepResponse struct {
	Transitioned int `json:"transitioned"`
	Expired      int `json:"expired"`
	NoShow       int `json:"noShow"`
	Failed       int `json:"failed"`
}

type Handler struct {
	useCase      SweepUseCase
	timeProvider TimeProvider
	logger       Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

func NewHandler(useCase SweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle POST /api/v1/admin/sweep - внеочередной проход по просроченным бронированиям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &sweep_expired.Request{Now: h.timeProvider.Now()})
	if err != nil {
		h.logger.Error("POST /admin/sweep - Sweep failed: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /admin/sweep - Closed %d bookings, failed=%d", result.Transitioned, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		Transitioned: result.Transitioned,
		Expired:      result.Expired,
		NoShow:       result.NoShow,
		Failed:       result.Failed,
	})
}
