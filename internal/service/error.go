package service

import "errors"

var ErrUnknownCallbackToken = errors.New("UNKNOWN_CALLBACK_TOKEN")

// Error carries the code of the flow step that failed.
type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Code + ": " + e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
