package sweep_expired

import "time"

// Request входные данные прохода: момент, относительно которого брони считаются просроченными
type Request struct {
	Now time.Time
}

// Response итог прохода
type Response struct {
	Transitioned int // закрыто бронирований всего
	Expired      int
	NoShow       int
	Failed       int // брони, которые не удалось закрыть; будут повторены следующим проходом
}
