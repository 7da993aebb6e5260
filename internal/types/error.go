package types

import (
	"errors"
	"net/http"

	"github.com/nftstake/weight-indexer/internal/accounting"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Conflict             ErrorCode = "CONFLICT"
	ScheduleOrder        ErrorCode = "SCHEDULE_ORDER"
	StakingWindowClosed  ErrorCode = "STAKING_WINDOW_CLOSED"
	StakingNotActive     ErrorCode = "STAKING_NOT_ACTIVE"
	NothingStaked        ErrorCode = "NOTHING_STAKED"
	ArithmeticOverflow   ErrorCode = "ARITHMETIC_OVERFLOW"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error carries an http status and an error code alongside the cause.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// FromAccountingError maps an accounting error kind to its status and code.
// Unknown errors are internal.
func FromAccountingError(err error) *Error {
	switch {
	case errors.Is(err, accounting.ErrScheduleOrder):
		return NewError(http.StatusConflict, ScheduleOrder, err)
	case errors.Is(err, accounting.ErrStakingWindowClosed):
		return NewError(http.StatusUnprocessableEntity, StakingWindowClosed, err)
	case errors.Is(err, accounting.ErrStakingNotActive):
		return NewError(http.StatusUnprocessableEntity, StakingNotActive, err)
	case errors.Is(err, accounting.ErrNothingStaked):
		return NewError(http.StatusConflict, NothingStaked, err)
	case errors.Is(err, accounting.ErrArithmeticOverflow):
		return NewError(http.StatusUnprocessableEntity, ArithmeticOverflow, err)
	case errors.Is(err, accounting.ErrInvalidPool):
		return NewError(http.StatusBadRequest, ValidationError, err)
	default:
		return NewInternalServiceError(err)
	}
}
