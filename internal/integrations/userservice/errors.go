package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда UserService не знает пользователя
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда сервис недоступен или circuit breaker разомкнут
	ErrServiceUnavailable = errors.New("userservice client: service unavailable")
)
