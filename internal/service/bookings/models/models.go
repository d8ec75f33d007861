package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidLocation возвращается при некорректной локации
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// GetUserBookingsRequest запрос истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID   int64   `json:"userId"`
	CallerID int64   `json:"callerId"`
	IsAdmin  bool    `json:"isAdmin"`
	Status   *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	IsAdmin   bool       `json:"isAdmin"`
	UserID    *int64     `json:"userId,omitempty"`
	SlotID    *uuid.UUID `json:"slotId,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Status    *string    `json:"status,omitempty"`
	StartFrom *time.Time `json:"startFrom,omitempty"` // начало брони не раньше
	StartTo   *time.Time `json:"startTo,omitempty"`   // начало брони раньше
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		UserID:    r.UserID,
		SlotID:    r.SlotID,
		StartFrom: r.StartFrom,
		StartTo:   r.StartTo,
	}

	if r.Location != nil {
		location := domain.Location(*r.Location)
		if !location.IsValid() {
			return filter, ErrInvalidLocation
		}
		filter.Location = &location
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.StartFrom != nil && r.StartTo != nil && r.StartTo.Before(*r.StartFrom) {
		return filter, ErrInvalidPeriod
	}

	return filter, nil
}

// Response модели

// ExtensionResponse одно продление бронирования
type ExtensionResponse struct {
	OriginalEndTime time.Time `json:"originalEndTime"`
	NewEndTime      time.Time `json:"newEndTime"`
	AddedHours      int       `json:"addedHours"`
	AddedAmount     float64   `json:"addedAmount"`
	ExtendedAt      time.Time `json:"extendedAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        int64     `json:"userId"`
	SlotID        uuid.UUID `json:"slotId"`
	VehicleNumber string    `json:"vehicleNumber"`
	VehicleType   string    `json:"vehicleType"`
	Location      string    `json:"location"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationHours int       `json:"durationHours"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        string    `json:"status"`
	Phase         string    `json:"phase"` // upcoming, in-progress, overdue, closed

	CheckInTime         *time.Time          `json:"checkInTime,omitempty"`
	CheckOutTime        *time.Time          `json:"checkOutTime,omitempty"`
	ActualDurationHours *float64            `json:"actualDurationHours,omitempty"`
	Extensions          []ExtensionResponse `json:"extensions"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        *int64     `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO; фаза вычисляется относительно now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		SlotID:             b.SlotID,
		VehicleNumber:      b.Vehicle.Number,
		VehicleType:        string(b.Vehicle.Type),
		Location:           string(b.Location),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationHours:      b.DurationHours,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		Phase:              string(b.Phase(now)),
		CheckInTime:        b.CheckInTime,
		CheckOutTime:       b.CheckOutTime,
		Extensions:         make([]ExtensionResponse, 0, len(b.ExtensionHistory)),
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CancelledBy:        b.CancelledBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.IsCheckedOut() {
		actual := b.ActualDurationHours()
		resp.ActualDurationHours = &actual
	}

	for _, e := range b.ExtensionHistory {
		resp.Extensions = append(resp.Extensions, ExtensionResponse{
			OriginalEndTime: e.OriginalEndTime,
			NewEndTime:      e.NewEndTime,
			AddedHours:      e.AddedHours,
			AddedAmount:     e.AddedAmount,
			ExtendedAt:      e.ExtendedAt,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
