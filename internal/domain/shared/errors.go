package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes used across the receiving workflow
const (
	CodeNotFound                  = "NOT_FOUND"
	CodeInvalidState              = "INVALID_STATE"
	CodeValidation                = "VALIDATION"
	CodeIncompleteBatchAssignment = "INCOMPLETE_BATCH_ASSIGNMENT"
	CodeCatalogResolutionFailed   = "CATALOG_RESOLUTION_FAILED"
	CodeTransactionTimeout        = "TRANSACTION_TIMEOUT"
)

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState       = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrTransactionTimeout = NewDomainError(CodeTransactionTimeout, "Transaction exceeded its time bound; no changes were committed")
)

// IsDomainError reports whether err is a DomainError with the given code.
func IsDomainError(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
