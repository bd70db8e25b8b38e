package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindInvalidRequest:
		return "invalid_request"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

// NewStorageError marks err as a failure of the underlying store. The cause
// stays reachable through errors.Is / errors.As.
func NewStorageError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: message, Err: err}
}
