package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BreakerSettings параметры circuit breaker для вызовов UserService
type BreakerSettings struct {
	// MaxFailures подряд идущих ошибок, после которых breaker размыкается
	MaxFailures uint32
	// OpenTimeout время в разомкнутом состоянии до пробного запроса
	OpenTimeout time.Duration
	// HalfOpenRequests число пробных запросов в полуоткрытом состоянии
	HalfOpenRequests uint32
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*User]
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, settings BreakerSettings, log Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	c.breaker = gobreaker.NewCircuitBreaker[*User](gobreaker.Settings{
		Name:        "userservice",
		MaxRequests: settings.HalfOpenRequests,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Неизвестный пользователь - штатный ответ, а не отказ сервиса
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUserNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("UserService circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return c
}

// GetRole возвращает роль пользователя
func (c *Client) GetRole(ctx context.Context, userID int64) (domain.Role, error) {
	user, err := c.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	role, ok := domain.ParseRole(user.Role)
	if !ok {
		return "", fmt.Errorf("%w: unknown role %q for user_id=%d", ErrInvalidResponse, user.Role, userID)
	}
	return role, nil
}

// GetRegisteredVehicles возвращает активные автомобили пользователя
func (c *Client) GetRegisteredVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	user, err := c.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.toDomainVehicles(), nil
}

// getUser выполняет запрос через circuit breaker
func (c *Client) getUser(ctx context.Context, userID int64) (*User, error) {
	user, err := c.breaker.Execute(func() (*User, error) {
		return c.fetchUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Error("UserService circuit breaker rejected request for user_id=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
		return nil, err
	}
	return user, nil
}

func (c *Client) fetchUser(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: user_id=%d", ErrUserNotFound, userID)
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}
