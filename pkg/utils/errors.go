package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindUnavailable
)

// Stable error codes returned in the "code" field of error bodies.
const (
	CodeInvalidID           = "INVALID_ID"
	CodeInvalidBody         = "INVALID_BODY"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNoSeats             = "NO_SEATS"
	CodeDuplicateSeat       = "DUPLICATE_SEAT"
	CodeInvalidQuantity     = "INVALID_QUANTITY"
	CodeInvalidPayment      = "INVALID_PAYMENT_METHOD"
	CodeInvalidDraftAction  = "INVALID_DRAFT_ACTION"
	CodeIncompleteDraft     = "INCOMPLETE_DRAFT"
	CodeSeatNotInShowtime   = "SEAT_NOT_IN_SHOWTIME"
	CodeFoodUnavailable     = "FOOD_ITEM_UNAVAILABLE"
	CodeMovieNotFound       = "MOVIE_NOT_FOUND"
	CodeShowtimeNotFound    = "SHOWTIME_NOT_FOUND"
	CodeSeatNotFound        = "SEAT_NOT_FOUND"
	CodeFoodItemNotFound    = "FOOD_ITEM_NOT_FOUND"
	CodeBookingNotFound     = "BOOKING_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeSeatAlreadyBooked   = "SEAT_ALREADY_BOOKED"
	CodeBookingCancelled    = "BOOKING_ALREADY_CANCELLED"
	CodeEmailTaken          = "EMAIL_TAKEN"
	CodeShowtimeHasBookings = "SHOWTIME_HAS_BOOKINGS"
	CodeFoodItemInUse       = "FOOD_ITEM_IN_USE"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeDraftsUnavailable   = "DRAFTS_UNAVAILABLE"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// AppError is an error the HTTP layer can translate into a status and code.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error kind onto an HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NewInvalidError(code, message string) *AppError {
	return &AppError{Kind: KindInvalid, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func NewConflictError(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func NewUnauthorizedError(code, message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: code, Message: message}
}

func NewUnavailableError(code, message string) *AppError {
	return &AppError{Kind: KindUnavailable, Code: code, Message: message}
}

// NewValidationError wraps validator output into a 400 with a readable message.
func NewValidationError(errs map[string]string) *AppError {
	return &AppError{
		Kind:    KindInvalid,
		Code:    CodeValidationFailed,
		Message: "validation failed: " + FormatValidationErrors(errs),
	}
}

// AsAppError reports whether err carries an *AppError anywhere in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
