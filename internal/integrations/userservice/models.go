package userservice

import (
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// User модель пользователя из UserService
type User struct {
	ID       int64     `json:"id"`
	Role     string    `json:"role"`
	Vehicles []Vehicle `json:"vehicles"`
}

// Vehicle автомобиль пользователя
type Vehicle struct {
	Number   string `json:"number"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toDomainVehicles оставляет только активные автомобили
func (u *User) toDomainVehicles() []domain.Vehicle {
	result := make([]domain.Vehicle, 0, len(u.Vehicles))
	for _, v := range u.Vehicles {
		if !v.IsActive {
			continue
		}
		result = append(result, domain.Vehicle{
			Number: strings.ToUpper(strings.TrimSpace(v.Number)),
			Type:   domain.VehicleType(strings.ToLower(v.Type)),
		})
	}
	return result
}
