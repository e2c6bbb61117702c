package utils

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidRating       = errors.New("ratings must be between 1 and 5")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrFingerprintRequired = errors.New("fingerprint required")
	ErrFingerprintTooLong  = errors.New("fingerprint too long")
	ErrDuplicateSubmission = errors.New("duplicate submission for subject")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyExists       = errors.New("record already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDatabaseError       = errors.New("database error")
)

// Messages shown to clients for business rejections.
const (
	MsgInvalidRating       = "Ratings must be between 1 and 5"
	MsgDuplicateSubmission = "You have already submitted feedback for this subject"
	MsgFingerprintRequired = "fingerprint required"
	MsgFingerprintTooLong  = "fingerprint must be at most 255 characters"
)

// FieldError is a validation failure tied to one request field. It matches ErrValidation.
type FieldError struct {
	Field   string
	Message string
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}
