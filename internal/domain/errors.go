package domain

import "errors"

// ErrorKind machine-readable error kind returned to callers
type ErrorKind string

const (
	KindInvalidInput             ErrorKind = "InvalidInput"
	KindInvalidWindow            ErrorKind = "InvalidWindow"
	KindWindowInPast             ErrorKind = "WindowInPast"
	KindTooFarInAdvance          ErrorKind = "TooFarInAdvance"
	KindDurationTooLong          ErrorKind = "DurationTooLong"
	KindSlotUnsuitable           ErrorKind = "SlotUnsuitable"
	KindLocationMismatch         ErrorKind = "LocationMismatch"
	KindSlotConflict             ErrorKind = "SlotConflict"
	KindTooManyActiveBookings    ErrorKind = "TooManyActiveBookings"
	KindVehicleNotRegistered     ErrorKind = "VehicleNotRegistered"
	KindStorageUnavailable       ErrorKind = "StorageUnavailable"
	KindNotFound                 ErrorKind = "NotFound"
	KindNotActive                ErrorKind = "NotActive"
	KindCancellationWindowClosed ErrorKind = "CancellationWindowClosed"
	KindUnauthorized             ErrorKind = "Unauthorized"
	KindNotExtendable            ErrorKind = "NotExtendable"
	KindInvalidExtension         ErrorKind = "InvalidExtension"
	KindExtensionConflict        ErrorKind = "ExtensionConflict"
	KindAlreadyCheckedIn         ErrorKind = "AlreadyCheckedIn"
	KindTooEarly                 ErrorKind = "TooEarly"
	KindWindowExpired            ErrorKind = "WindowExpired"
	KindNotCheckedIn             ErrorKind = "NotCheckedIn"
	KindAlreadyCheckedOut        ErrorKind = "AlreadyCheckedOut"
	KindSlotOccupied             ErrorKind = "SlotOccupied"
)

// Error business error with a kind and a human-readable message.
// Two errors are equal for errors.Is when their kinds match.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError creates a kind-tagged error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the kind from an error chain
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

var (
	ErrInvalidInput             = NewError(KindInvalidInput, "invalid input data")
	ErrInvalidWindow            = NewError(KindInvalidWindow, "end time must be after start time")
	ErrWindowInPast             = NewError(KindWindowInPast, "cannot book in the past")
	ErrTooFarInAdvance          = NewError(KindTooFarInAdvance, "booking is too far in advance")
	ErrDurationTooLong          = NewError(KindDurationTooLong, "booking duration is too long")
	ErrSlotUnsuitable           = NewError(KindSlotUnsuitable, "slot is not available for this user or vehicle")
	ErrLocationMismatch         = NewError(KindLocationMismatch, "slot is not at the requested location")
	ErrSlotConflict             = NewError(KindSlotConflict, "slot is already booked for the selected time period")
	ErrTooManyActiveBookings    = NewError(KindTooManyActiveBookings, "maximum number of active bookings reached")
	ErrVehicleNotRegistered     = NewError(KindVehicleNotRegistered, "vehicle is not registered to the user")
	ErrStorageUnavailable       = NewError(KindStorageUnavailable, "storage is unavailable")
	ErrNotFound                 = NewError(KindNotFound, "not found")
	ErrNotActive                = NewError(KindNotActive, "booking is not active")
	ErrCancellationWindowClosed = NewError(KindCancellationWindowClosed, "booking can no longer be cancelled")
	ErrUnauthorized             = NewError(KindUnauthorized, "not allowed to act on this booking")
	ErrNotExtendable            = NewError(KindNotExtendable, "booking can only be extended while it is in progress")
	ErrInvalidExtension         = NewError(KindInvalidExtension, "invalid number of additional hours")
	ErrExtensionConflict        = NewError(KindExtensionConflict, "extension overlaps another booking")
	ErrAlreadyCheckedIn         = NewError(KindAlreadyCheckedIn, "already checked in")
	ErrTooEarly                 = NewError(KindTooEarly, "too early to check in")
	ErrWindowExpired            = NewError(KindWindowExpired, "booking window has expired")
	ErrNotCheckedIn             = NewError(KindNotCheckedIn, "booking is not checked in")
	ErrAlreadyCheckedOut        = NewError(KindAlreadyCheckedOut, "already checked out")
	ErrSlotOccupied             = NewError(KindSlotOccupied, "slot has an active booking")
)
