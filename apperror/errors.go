// Package apperror carries the failure kinds a request can end with and the
// HTTP status each one maps to.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindMissingBody
	KindInvalidJSON
	KindValidation
	KindAgeOutOfRange
	KindNotFound
	KindAlreadyAssigned
)

// FieldErrors is keyed by wire field name.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind == KindValidation {
		msg = "validation failed"
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func MissingBody() error {
	return &Error{Kind: KindMissingBody, Message: "No input data provided"}
}

func InvalidJSON(err error) error {
	return &Error{Kind: KindInvalidJSON, Message: "Invalid JSON format", Err: err}
}

func Validation(fields FieldErrors) error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func AgeOutOfRange() error {
	return &Error{Kind: KindAgeOutOfRange, Message: "Your age can not be more than 20 or less than 5."}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func AlreadyAssigned() error {
	return &Error{Kind: KindAlreadyAssigned, Message: "Pupil is in the same class already."}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf maps an error to the response status code. Age and assignment
// conflicts are reported as 404 like a missing record.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindMissingBody, KindInvalidJSON:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAgeOutOfRange, KindNotFound, KindAlreadyAssigned:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
