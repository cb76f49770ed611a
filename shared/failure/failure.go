package failure

import (
	"errors"
	"net/http"
)

// Reasons let clients branch on a conflict without parsing the message.
const (
	ReasonSlotTaken  = "slot_taken"
	ReasonCapacity   = "capacity"
	ReasonLockDenied = "lock_denied"
	ReasonInUse      = "in_use"
	ReasonDuplicate  = "duplicate"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps a decoding or validation error as a 400. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// ConflictWithReason is a 409 tagged with one of the Reason constants.
func ConflictWithReason(reason, msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg, Reason: reason}
}

// Inconsistency is returned when a write affected fewer rows than expected.
func Inconsistency(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, msg)
}

// InternalError wraps err as a 500. A nil error stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func Unimplemented(methodName string) error {
	return newFailure(http.StatusNotImplemented, methodName)
}

// GetCode returns the HTTP status carried by err, 500 for anything untyped.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the conflict reason carried by err, if any.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// IsClientError reports whether err maps to a 4xx status.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
