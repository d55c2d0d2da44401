package booking

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a second submission arrives while
// one is already running for the same draft.
var ErrSubmissionInFlight = errors.New("a submission is already in progress for this draft")

// ErrDraftNotFound is returned when no draft exists for the given ID.
var ErrDraftNotFound = errors.New("booking draft not found or expired")

// ValidationError is a local, synchronous field error. It never reaches
// the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s: %s", e.Field, e.Message)
}

// GatewayError carries the payment gateway's own failure verbatim. The
// attempt is over; the guest may retry by resubmitting.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gatewayError: %s", e.Message)
}

// IntentCreationError means the server could not issue a payment intent.
// No charge happened; the submission is retryable.
type IntentCreationError struct {
	Message string
	Err     error
}

func (e *IntentCreationError) Error() string {
	return fmt.Sprintf("intentCreationError: %s", e.Message)
}

func (e *IntentCreationError) Unwrap() error { return e.Err }

// PostChargeError is the critical case: the charge succeeded but the
// booking record could not be created. It must never be retried
// automatically and is flagged for manual reconciliation.
type PostChargeError struct {
	PaymentIntentID string
	Message         string
	Err             error
}

func (e *PostChargeError) Error() string {
	return fmt.Sprintf("postChargeError: %s (intent %s)", e.Message, e.PaymentIntentID)
}

func (e *PostChargeError) Unwrap() error { return e.Err }

// CashFinalizationError means booking creation failed before any charge.
// The submission is retryable.
type CashFinalizationError struct {
	Message string
	Err     error
}

func (e *CashFinalizationError) Error() string {
	return fmt.Sprintf("cashFinalizationError: %s", e.Message)
}

func (e *CashFinalizationError) Unwrap() error { return e.Err }
