package model

import "fmt"

// ParseError represents SAF-T parsing errors with element context
type ParseError struct {
	Element string
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Element, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Element, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(element, field, message string, cause error) *ParseError {
	return &ParseError{
		Element: element,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
