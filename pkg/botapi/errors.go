package botapi

import (
	"context"
	"errors"
	"strings"

	"github.com/mymmrac/telego/telegoapi"
)

const (
	StatusBadRequest      = 400
	StatusForbidden       = 403
	StatusNotFound        = 404
	StatusTooManyRequests = 429
)

const (
	ErrCodePlatform           = "PLATFORM_ERROR"
	ErrCodeMessageNotModified = "MESSAGE_NOT_MODIFIED"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeUnavailable        = "UNAVAILABLE"
	ErrCodeUnsupportedAction  = "UNSUPPORTED_ACTION"
)

var (
	ErrPlatform           = errors.New(ErrCodePlatform)
	ErrMessageNotModified = errors.New(ErrCodeMessageNotModified)
	ErrBadRequest         = errors.New(ErrCodeBadRequest)
	ErrForbidden          = errors.New(ErrCodeForbidden)
	ErrNotFound           = errors.New(ErrCodeNotFound)
	ErrTooManyRequests    = errors.New(ErrCodeTooManyRequests)
	ErrTimeout            = errors.New(ErrCodeTimeout)
	ErrUnavailable        = errors.New(ErrCodeUnavailable)
	ErrUnsupportedAction  = errors.New(ErrCodeUnsupportedAction)
)

var statusErrorMap = map[int]error{
	StatusBadRequest:      ErrBadRequest,
	StatusForbidden:       ErrForbidden,
	StatusNotFound:        ErrNotFound,
	StatusTooManyRequests: ErrTooManyRequests,
}

// PlatformError is returned by the gateway for every failed call. It matches
// both ErrPlatform and its specific kind with errors.Is.
type PlatformError struct {
	Method      string
	Kind        error
	Description string
	Cause       error
}

func (e *PlatformError) Error() string {
	msg := e.Method + ": " + e.Kind.Error()
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

func (e *PlatformError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func (e *PlatformError) Is(target error) bool {
	return target == ErrPlatform
}

// Recoverable reports whether the failed call can be ignored by the flow that
// issued it, e.g. editing a message that was already edited by a double press.
func (e *PlatformError) Recoverable() bool {
	return errors.Is(e.Kind, ErrMessageNotModified)
}

func MapStatusToError(statusCode int, description string) error {
	if statusCode == StatusBadRequest && strings.Contains(strings.ToLower(description), "message is not modified") {
		return ErrMessageNotModified
	}

	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrUnavailable
}

// MapError converts an error returned by telego into a PlatformError.
func MapError(method string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *telegoapi.Error
	if errors.As(err, &apiErr) {
		return &PlatformError{
			Method:      method,
			Kind:        MapStatusToError(apiErr.ErrorCode, apiErr.Description),
			Description: apiErr.Description,
			Cause:       err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &PlatformError{Method: method, Kind: ErrTimeout, Cause: err}
	}

	return &PlatformError{Method: method, Kind: ErrUnavailable, Cause: err}
}

// IsRecoverable reports whether err is a PlatformError the caller may log and
// move past.
func IsRecoverable(err error) bool {
	var pErr *PlatformError
	return errors.As(err, &pErr) && pErr.Recoverable()
}
