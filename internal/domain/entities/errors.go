package entities

// DomainError is a caller-input fault with a stable machine-readable code.
// Validation, tenancy and existence failures are all DomainErrors; anything
// else bubbling out of the persistence layer is treated as a system fault.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Validation errors, in the order the rules are evaluated.
var (
	ErrTitleRequired      = &DomainError{Code: "TitleRequired", Message: "title is required"}
	ErrTitleTooShort      = &DomainError{Code: "TitleTooShort", Message: "title must be at least 3 characters"}
	ErrTitleTooLong       = &DomainError{Code: "TitleTooLong", Message: "title must be at most 100 characters"}
	ErrDescriptionTooLong = &DomainError{Code: "DescriptionTooLong", Message: "description must be at most 1000 characters"}
	ErrDueDateInPast      = &DomainError{Code: "DueDateInPast", Message: "due date cannot be in the past"}
	ErrInvalidPriority    = &DomainError{Code: "InvalidPriority", Message: "priority must be 0 (low), 1 (medium) or 2 (high)"}
	ErrInvalidStatus      = &DomainError{Code: "InvalidStatus", Message: "status must be 0 (pending), 1 (in progress) or 2 (completed)"}
)

// Tenancy and existence errors.
var (
	ErrAccountNotFound = &DomainError{Code: "AccountDoesNotExist", Message: "account does not exist"}
	ErrUserNotFound    = &DomainError{Code: "UserDoesNotExist", Message: "user does not exist"}
	ErrTaskNotFound    = &DomainError{Code: "TaskDoesNotExist", Message: "task does not exist"}
)
