package services

import "errors"

// Service-level error kinds. Handlers map these onto HTTP statuses; anything
// unclassified surfaces as a dependency failure.
var (
	// ErrValidation is returned when request input is missing or malformed.
	// No side effect has been attempted when this is returned.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when the bearer credential is missing or
	// fails verification.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated identity lacks the
	// admin role.
	ErrForbidden = errors.New("forbidden")

	// ErrDelivery is returned when the email provider call fails. Any
	// datastore write performed before the send is NOT rolled back; stored
	// -but-not-emailed is an accepted terminal state.
	ErrDelivery = errors.New("email delivery failed")

	// ErrStorage is returned when a datastore write fails before any email
	// was attempted.
	ErrStorage = errors.New("storage failed")
)

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsUnauthorized reports whether err is an authorization-missing error
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsForbidden reports whether err is an insufficient-role error
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsDelivery reports whether err is an email delivery error
func IsDelivery(err error) bool { return errors.Is(err, ErrDelivery) }
