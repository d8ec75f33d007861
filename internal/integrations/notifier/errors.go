package notifier

import "errors"

var (
	// ErrPublishFailed возвращается, когда событие не удалось отправить в канал
	ErrPublishFailed = errors.New("notifier: failed to publish event")

	// ErrEncodeFailed возвращается, когда событие не удалось сериализовать
	ErrEncodeFailed = errors.New("notifier: failed to encode event")
)
