package services

// Error codes surfaced alongside HTTP status codes so clients and tests can
// branch on the failure class rather than the message.
const (
	CodeValidation        = "validation_error"
	CodeNotFound          = "not_found"
	CodeInvalidTransition = "invalid_transition"
	CodeNoActiveOrder     = "no_active_order"
	CodeStorage           = "storage_error"
)

// ServiceError is a typed error with an HTTP status code and error code.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func validationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 400, Code: CodeValidation, Message: msg}
}

func notFoundError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 404, Code: CodeNotFound, Message: msg}
}

func invalidTransitionError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 409, Code: CodeInvalidTransition, Message: msg}
}

func noActiveOrderError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 409, Code: CodeNoActiveOrder, Message: msg}
}

func storageError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 500, Code: CodeStorage, Message: msg}
}
