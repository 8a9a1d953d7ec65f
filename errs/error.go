package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Application error codes. ReturnError maps them to http status codes,
// so the services can signal a category without knowing about http.
const (
	ECONFLICT     = "conflict"
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthorized"
)

// Error is an application error. Message is safe to show to the end user.
// Anything else (driver errors, file system errors) stays internal and is
// only logged.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("yatube error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code of an error. Errors that are not an *Error
// are treated as internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the user-facing message of an error. Errors that
// are not an *Error get a generic message instead of their real text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

var codeToStatus = map[string]int{
	ECONFLICT:     http.StatusConflict,
	EINTERNAL:     http.StatusInternalServerError,
	EINVALID:      http.StatusUnprocessableEntity,
	ENOTFOUND:     http.StatusNotFound,
	EUNAUTHORIZED: http.StatusUnauthorized,
}

// ErrorStatus returns the http status code for an error.
func ErrorStatus(err error) int {
	if status, ok := codeToStatus[ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ReturnError writes an error to the response as json. Internal errors are
// logged with their full text, the client only sees the generic message.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	if ErrorCode(err) == EINTERNAL {
		LogError(r, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatus(err))
	json.NewEncoder(w).Encode(map[string]string{"error": ErrorMessage(err)})
}

// LogError logs an error together with the request it occurred on.
func LogError(r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
}
