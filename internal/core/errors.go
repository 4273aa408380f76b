package core

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by DataLoadError.
var (
	ErrRequired          = errors.New("required field is empty")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrNotInteger        = errors.New("must be an integer")
	ErrUnknownType       = errors.New("unknown type")
	ErrIllegalMultiplier = errors.New("illegal multiplier")
	ErrStatOutOfRange    = errors.New("base stat out of range")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrInvalidCSV        = errors.New("invalid csv")
)

// ErrNotFound is matched by every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("pokemon not found")

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// DataLoadError reports source data that could not be turned into a dataset.
// Any DataLoadError aborts the whole load.
type DataLoadError struct {
	Source string // Backing file path, if known
	Row    int    // 1-based data row; 0 for file or header level failures
	Column string // Offending column, if any
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "data load"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(": row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// rowError builds a DataLoadError for a 0-based row index.
func rowError(index int, column string, err error) *DataLoadError {
	return &DataLoadError{Row: index + 1, Column: column, Err: err}
}

// NotFoundError reports an id that is absent from the current snapshot.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokemon %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidInputError reports a malformed query parameter at a boundary.
type InvalidInputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid input: %s=%q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NewInvalidInput returns an InvalidInputError for field.
func NewInvalidInput(field, value, message string) error {
	return &InvalidInputError{Field: field, Value: value, Message: message}
}
