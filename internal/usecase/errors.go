package usecase

import "errors"

const (
	CodeLeadNotFound      = "LEAD_NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeConflict          = "CONFLICT"
	CodePersistence       = "PERSISTENCE_ERROR"
	CodeNotification      = "NOTIFICATION_ERROR"
)

// DomainError is a business rule violation the caller can act on.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// HasCode reports whether err carries a DomainError or TechnicalError with code.
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// TechnicalError is an infrastructure failure (storage, notification).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
