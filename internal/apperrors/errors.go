package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidDate indicates that a supplied invoice date precedes the current date.
var ErrInvalidDate = errors.New("invalid date")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflicting resource state")

// ErrExpired indicates that an invoice has passed the configured expiry threshold.
var ErrExpired = errors.New("invoice expired")

// ErrForbidden indicates that the caller is not permitted to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrStoreUnavailable indicates an infrastructure failure talking to the data store.
// It is fatal to the calling operation and is never retried at this layer.
var ErrStoreUnavailable = errors.New("store unavailable")
