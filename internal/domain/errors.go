package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth signals a failed token acquisition for a model service.
	ErrAuth = errors.New("auth error")
	// ErrTransport signals a network failure or timeout talking to a model service.
	ErrTransport = errors.New("transport error")
	// ErrModel signals a non-success response from a model service.
	ErrModel = errors.New("model error")

	// ErrLookup signals a failed secondary catalog lookup.
	ErrLookup = errors.New("enrichment lookup failed")
	// ErrNoMatch signals a catalog lookup that returned no result.
	ErrNoMatch = errors.New("no catalog match")

	// ErrUserNotFound signals an unknown user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrSurveyNotFound signals a user without a stored survey.
	ErrSurveyNotFound = errors.New("survey not found")
	// ErrUnknownDomain signals a domain that is not configured.
	ErrUnknownDomain = errors.New("unknown domain")
)

// ModelError carries the upstream status and body of a failed model call.
type ModelError struct {
	Domain Domain
	Status int
	Body   string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s model returned status %d: %s", ErrModel.Error(), e.Domain, e.Status, e.Body)
}

func (e *ModelError) Unwrap() error { return ErrModel }

// NewModelError creates a model error for a non-success upstream response.
func NewModelError(d Domain, status int, body string) error {
	return &ModelError{Domain: d, Status: status, Body: body}
}

// IsFatal reports whether err aborts a pipeline when raised by a primary model call.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuth) || errors.Is(err, ErrTransport) || errors.Is(err, ErrModel)
}
