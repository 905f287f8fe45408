package api

import (
	"context"
	"errors"
	"net/http"
)

type Kind int

const (
	KindNetwork Kind = iota + 1
	KindServer
	KindValidation
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindCanceled:
		return "canceled"
	}
	return "unknown"
}

// Error is a failed backend call. Status is 0 when no response arrived.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Kind() Kind {
	switch {
	case e.Status == 0 && errors.Is(e.Err, context.Canceled):
		return KindCanceled
	case e.Status == 0:
		return KindNetwork
	case e.Status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

func kindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind()
	}
	return 0
}

// IsServerError reports a network failure or a 5xx answer.
func IsServerError(err error) bool {
	k := kindOf(err)
	return k == KindNetwork || k == KindServer
}

// IsCanceled reports a call dropped because its context was cancelled before
// it went out. Nothing reached the backend.
func IsCanceled(err error) bool {
	return kindOf(err) == KindCanceled || errors.Is(err, context.Canceled)
}

// IsValidation reports a 4xx rejection.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// StatusOf returns the upstream HTTP status, or 0.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
