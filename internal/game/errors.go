package game

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeValidation covers malformed input: empty player list, bad config.
	CodeValidation Code = "VALIDATION"
	// CodeInvalidToken means the player tried to spend a token they no
	// longer hold.
	CodeInvalidToken Code = "INVALID_TOKEN"
	// CodeNotFound covers unknown sessions, players, or an empty catalog.
	CodeNotFound Code = "NOT_FOUND"
	// CodeState means the operation is invalid for the session's status.
	CodeState Code = "STATE"
	// CodeExternal marks failures of outside services. Audio lookups are
	// always absorbed, so this never surfaces from gameplay calls.
	CodeExternal Code = "EXTERNAL"
)

// HTTPStatus maps domain codes to HTTP status codes for the API layer.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeInvalidToken:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error every public store operation returns.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func validationErr(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func invalidTokenErr(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidToken, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func stateErr(format string, args ...any) *Error {
	return &Error{Code: CodeState, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a structured *Error, defaulting unknown errors to
// an EXTERNAL code so callers always get a code to switch on.
func AsError(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return &Error{Code: CodeExternal, Message: err.Error()}
}
