package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(q url.Values, isAdmin bool) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IsAdmin:  isAdmin,
		Location: handlers.QueryString(q, "location"),
		Status:   handlers.QueryString(q, "status"),
	}

	if raw := q.Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("userId: %w", err)
		}
		req.UserID = &userID
	}

	if raw := q.Get("slotId"); raw != "" {
		slotID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("slotId: %w", err)
		}
		req.SlotID = &slotID
	}

	var err error
	if req.StartFrom, err = handlers.QueryTime(q, "from"); err != nil {
		return nil, err
	}
	if req.StartTo, err = handlers.QueryTime(q, "to"); err != nil {
		return nil, err
	}

	return req, nil
}
