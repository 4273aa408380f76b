package core

// error_messages.go maps errors to coded user messages.
//
// # Error Codes Reference
//
// This file maps errors to user-friendly messages with codes for support
// reference. Typed errors are resolved first with errors.Is; anything else
// falls back to case-insensitive substring patterns.
//
// # Dataset Errors (DATA001-DATA099)
//
//	DATA001 - Missing column: a required column is absent from the CSV header
//	DATA002 - Required field: a required cell is empty
//	DATA003 - Invalid number: a numeric cell is not a finite number or integer
//	DATA004 - Unknown type: an elemental type name is not recognized
//	DATA005 - Illegal multiplier: an against-value is outside {0, 0.25, 0.5, 1, 2, 4}
//	DATA006 - Duplicate id: two rows share the same Number
//	DATA007 - Unreadable dataset: the file is missing or malformed
//	DATA008 - Stat out of range: a base stat is outside [1,255]
//
// # Lookup Errors (NF001)
//
//	NF001 - Not found: no record with the requested id
//
// # Input Errors (INP001-INP099)
//
//	INP001 - Invalid parameter: a query parameter could not be parsed
//	INP002 - Invalid id: the path id is not a number
//
// # Request Errors (RATE001, REQ001-REQ002)
//
//	RATE001 - Rate limited: too many requests
//	REQ001  - Request cancelled
//	REQ002  - Request timed out
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server logs for the technical error.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgMissingColumns = UserMessage{
		Message: "Required column is missing from the dataset",
		Action:  "Check that the CSV header contains Number, Name, Type 1, the six stats and Generation",
		Code:    "DATA001",
	}
	msgRequired = UserMessage{
		Message: "Required field is empty in the dataset",
		Action:  "Fill in the reported row and column",
		Code:    "DATA002",
	}
	msgInvalidNumber = UserMessage{
		Message: "Invalid number in the dataset",
		Action:  "Use plain decimal numbers for numeric columns",
		Code:    "DATA003",
	}
	msgUnknownType = UserMessage{
		Message: "Unknown elemental type in the dataset",
		Action:  "Use one of the 18 standard type names",
		Code:    "DATA004",
	}
	msgIllegalMultiplier = UserMessage{
		Message: "Illegal damage multiplier in the dataset",
		Action:  "Against columns must be 0, 0.25, 0.5, 1, 2 or 4",
		Code:    "DATA005",
	}
	msgDuplicateID = UserMessage{
		Message: "Two dataset rows share the same number",
		Action:  "Make every Number value unique",
		Code:    "DATA006",
	}
	msgStatRange = UserMessage{
		Message: "Base stat out of range in the dataset",
		Action:  "Base stats must be between 1 and 255, or disable stat validation",
		Code:    "DATA008",
	}
	msgDataLoad = UserMessage{
		Message: "The dataset could not be loaded",
		Action:  "Check the data file path and contents, then reload",
		Code:    "DATA007",
	}
	msgNotFound = UserMessage{
		Message: "Pokémon not found",
		Action:  "Verify the id is correct",
		Code:    "NF001",
	}
	msgInvalidInput = UserMessage{
		Message: "Invalid request parameter",
		Action:  "Check the query parameters and try again",
		Code:    "INP001",
	}
	msgInvalidID = UserMessage{
		Message: "Invalid Pokémon id",
		Action:  "Use a numeric id",
		Code:    "INP002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Please try again",
		Code:    "REQ002",
	}
)

// typedMessages is checked in order with errors.Is; the first match wins.
// Specific dataset causes come before the generic DataLoadError fallback.
var typedMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrMissingColumns, msgMissingColumns},
	{ErrRequired, msgRequired},
	{ErrInvalidNumber, msgInvalidNumber},
	{ErrNotInteger, msgInvalidNumber},
	{ErrUnknownType, msgUnknownType},
	{ErrIllegalMultiplier, msgIllegalMultiplier},
	{ErrDuplicateID, msgDuplicateID},
	{ErrStatOutOfRange, msgStatRange},
	{ErrNotFound, msgNotFound},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches errors that arrive as plain strings (for example
// from middleware). Patterns are matched with strings.Contains on the
// lowercased message; the first match wins.
var errorPatterns = []errorPattern{
	{pattern: "rate limit", msg: UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
	{pattern: "not found", msg: msgNotFound},
	{pattern: "invalid csv", msg: msgDataLoad},
	{pattern: "no such file", msg: msgDataLoad},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(&NotFoundError{ID: 9999})
//	// msg.Code == "NF001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, tm := range typedMessages {
		if errors.Is(err, tm.target) {
			return tm.msg
		}
	}

	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		msg := msgInvalidInput
		if inputErr.Field == "id" {
			msg = msgInvalidID
		}
		msg.Message = fmt.Sprintf("%s: %s %s", msg.Message, inputErr.Field, inputErr.Message)
		return msg
	}

	var loadErr *DataLoadError
	if errors.As(err, &loadErr) {
		return msgDataLoad
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
