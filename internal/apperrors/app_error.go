package apperrors

// AppError pairs a classified error kind with the exact caller-facing
// message required by the business rule. errors.Is against the kind still
// works through Unwrap, while Error() stays stable and testable.
type AppError struct {
	Kind    error
	Message string
}

// NewAppError creates an AppError of the given kind with a fixed message.
func NewAppError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}
