package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidGrid indicates a grid that is empty, ragged, or holds values other than 0/1
	InvalidGrid ErrorCode = "INVALID_GRID"
	// UnknownPanelType indicates the requested panel is missing from the price catalog
	UnknownPanelType ErrorCode = "UNKNOWN_PANEL_TYPE"
	// InvalidStringCount indicates a non-positive number of electrical strings
	InvalidStringCount ErrorCode = "INVALID_STRING_COUNT"
	// InvalidConfig indicates a malformed configuration or reference data file
	InvalidConfig ErrorCode = "INVALID_CONFIG"
	// InvalidLayout indicates a layout file that could not be parsed into a grid
	InvalidLayout ErrorCode = "INVALID_LAYOUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditInput suggests correcting the input that was supplied
	EditInput FixActionType = "edit-input"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// BomError represents an error with code, message, and suggestions
type BomError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewBomError creates a new BomError
func NewBomError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *BomError {
	return &BomError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// New creates a BomError carrying the default fixes for its code.
func New(code ErrorCode, format string, args ...interface{}) *BomError {
	return NewBomError(code, fmt.Sprintf(format, args...), nil, GetSuggestedFixes(code))
}

// Wrap creates a BomError around cause.
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) *BomError {
	return NewBomError(code, fmt.Sprintf(format, args...), cause, GetSuggestedFixes(code))
}

// Error implements the error interface
func (e *BomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BomError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *BomError) WithDetails(details interface{}) *BomError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first BomError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var be *BomError
	if stderrors.As(err, &be) {
		return be.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InvalidGrid: {
		{
			Type:        EditInput,
			Description: "Use a rectangular grid where every cell is 0 (empty) or 1 (panel)",
		},
	},
	UnknownPanelType: {
		{
			Type:        RunCommand,
			Command:     "solarbom catalog show",
			Safe:        true,
			Description: "List the panel types known to the price catalog",
		},
	},
	InvalidStringCount: {
		{
			Type:        EditInput,
			Description: "Pass --strings with a value of at least 1",
		},
	},
	InvalidConfig: {
		{
			Type:        RunCommand,
			Command:     "solarbom config show",
			Safe:        true,
			Description: "Inspect the effective configuration",
		},
		{
			Type:        RunCommand,
			Command:     "solarbom catalog init",
			Safe:        true,
			Description: "Write a reference data file with the default prices and tables",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
