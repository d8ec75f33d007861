package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	maxBodySize = 1 << 20

	msgInternalError = "внутренняя ошибка сервера"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// kindStatus HTTP статус для каждого вида бизнес-ошибки
var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidInput:             http.StatusBadRequest,
	domain.KindInvalidWindow:            http.StatusBadRequest,
	domain.KindWindowInPast:             http.StatusBadRequest,
	domain.KindTooFarInAdvance:          http.StatusBadRequest,
	domain.KindDurationTooLong:          http.StatusBadRequest,
	domain.KindInvalidExtension:         http.StatusBadRequest,
	domain.KindLocationMismatch:         http.StatusBadRequest,
	domain.KindVehicleNotRegistered:     http.StatusBadRequest,
	domain.KindNotFound:                 http.StatusNotFound,
	domain.KindUnauthorized:             http.StatusForbidden,
	domain.KindSlotConflict:             http.StatusConflict,
	domain.KindExtensionConflict:        http.StatusConflict,
	domain.KindSlotOccupied:             http.StatusConflict,
	domain.KindSlotUnsuitable:           http.StatusUnprocessableEntity,
	domain.KindTooManyActiveBookings:    http.StatusUnprocessableEntity,
	domain.KindNotActive:                http.StatusUnprocessableEntity,
	domain.KindCancellationWindowClosed: http.StatusUnprocessableEntity,
	domain.KindNotExtendable:            http.StatusUnprocessableEntity,
	domain.KindAlreadyCheckedIn:         http.StatusUnprocessableEntity,
	domain.KindTooEarly:                 http.StatusUnprocessableEntity,
	domain.KindWindowExpired:            http.StatusUnprocessableEntity,
	domain.KindNotCheckedIn:             http.StatusUnprocessableEntity,
	domain.KindAlreadyCheckedOut:        http.StatusUnprocessableEntity,
	domain.KindStorageUnavailable:       http.StatusServiceUnavailable,
}

// StatusForKind возвращает HTTP статус для вида ошибки; неизвестные виды - 500
func StatusForKind(kind domain.ErrorKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DecodeJSON читает тело запроса в v. Неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// DecodeOptionalJSON как DecodeJSON, но пустое тело не ошибка
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := DecodeJSON(r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с видом и сообщением
func RespondError(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: string(kind), Message: message})
}

// RespondDomainError отвечает на бизнес-ошибку use case или сервиса.
// Сообщение берется из доменной ошибки, внутренние детали наружу не попадают
func RespondDomainError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		RespondInternalError(w)
		return
	}
	RespondError(w, StatusForKind(domainErr.Kind), domainErr.Kind, domainErr.Message)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.KindInvalidInput, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, domain.KindUnauthorized, message)
}

func RespondUnauthenticated(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, domain.KindUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Kind: "Internal", Message: msgInternalError})
}

// PathUUID читает UUID из переменной маршрута
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("path variable %s is missing", name)
	}
	return uuid.Parse(raw)
}

// QueryString возвращает указатель на значение параметра или nil, если параметр не задан
func QueryString(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	value := q.Get(name)
	return &value
}

// QueryTime разбирает параметр в формате RFC3339; nil, если параметр не задан
func QueryTime(q url.Values, name string) (*time.Time, error) {
	if !q.Has(name) {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, q.Get(name))
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", name, err)
	}
	return &t, nil
}
