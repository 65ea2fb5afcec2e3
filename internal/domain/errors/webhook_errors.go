package errors

import (
	"fmt"

	apperrors "github.com/v5hhrxpsqg-tech/Scribeer/pkg/errors"
)

// WebhookError represents a failure while processing a provider notification.
// Message is the body returned to the provider.
type WebhookError struct {
	Type      string
	Message   string
	EventType string
	Email     string
	Cause     error
}

func (e *WebhookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (event: %s, email: %s) - %v",
			e.Type, e.Message, e.EventType, e.Email, e.Cause)
	}
	return fmt.Sprintf("%s: %s (event: %s, email: %s)",
		e.Type, e.Message, e.EventType, e.Email)
}

func (e *WebhookError) Unwrap() error {
	return e.Cause
}

// Code maps the error type onto the shared error code table.
func (e *WebhookError) Code() string {
	if e.Type == ErrTypePersistence {
		return apperrors.ErrInternal
	}
	return apperrors.ErrInvalidArgument
}

// HTTPStatus is the status code returned to the provider.
func (e *WebhookError) HTTPStatus() int {
	return apperrors.ToHTTPStatus(e.Code())
}

// Webhook error types
const (
	ErrTypeMissingCredentials = "MISSING_CREDENTIALS"
	ErrTypeInvalidSignature   = "INVALID_SIGNATURE"
	ErrTypeMissingIdentity    = "MISSING_IDENTITY"
	ErrTypeUnknownAmount      = "UNKNOWN_AMOUNT"
	ErrTypePersistence        = "PERSISTENCE_ERROR"
	ErrTypeUnclassified       = "UNCLASSIFIED"
)

// NewMissingCredentialsError is returned when the signature header or the signing secret is absent
func NewMissingCredentialsError() *WebhookError {
	return &WebhookError{
		Type:    ErrTypeMissingCredentials,
		Message: "Missing signature",
	}
}

// NewInvalidSignatureError wraps a verification failure
func NewInvalidSignatureError(cause error) *WebhookError {
	return &WebhookError{
		Type:    ErrTypeInvalidSignature,
		Message: "Webhook Error: " + causeMessage(cause),
		Cause:   cause,
	}
}

// NewMissingIdentityError is returned when no customer email can be resolved
func NewMissingIdentityError(eventType string) *WebhookError {
	return &WebhookError{
		Type:      ErrTypeMissingIdentity,
		Message:   "No customer email",
		EventType: eventType,
	}
}

// NewUnknownAmountError is returned when neither the price id nor the amount maps to credits
func NewUnknownAmountError(eventType, email string) *WebhookError {
	return &WebhookError{
		Type:      ErrTypeUnknownAmount,
		Message:   "Unknown product amount",
		EventType: eventType,
		Email:     email,
	}
}

// NewPersistenceError wraps an account store failure
func NewPersistenceError(eventType, email string, cause error) *WebhookError {
	return &WebhookError{
		Type:      ErrTypePersistence,
		Message:   "Database error",
		EventType: eventType,
		Email:     email,
		Cause:     cause,
	}
}

// NewUnclassifiedError wraps any other failure, including recovered panics
func NewUnclassifiedError(cause error) *WebhookError {
	return &WebhookError{
		Type:    ErrTypeUnclassified,
		Message: "Webhook Error: " + causeMessage(cause),
		Cause:   cause,
	}
}

func causeMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
