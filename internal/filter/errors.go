package filter

import "fmt"

// ValidationError reports a malformed filter value. It signals a contract
// violation by the control that produced the value; the state it was applied
// to is left unchanged.
type ValidationError struct {
	Field   Field  `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (got %q)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a validation error
func NewValidationError(field Field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
