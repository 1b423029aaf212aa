package core

// error_messages.go maps parse errors to user-facing messages with codes
// for support reference. Callers relay these directly to end users.
//
// # Codes
//
//	FMT001  - Unsupported file format (extension is not registered)
//	TXT001  - Text is neither a JSON table nor comma-separated text
//	DATA001 - No data (no input, empty input, or zero rows)
//	DEC001  - File could not be decoded (malformed structure or encoding)
//	CAP001  - Server cannot read this format (decoder not installed)
//	OPT001  - Chart option names an unknown or non-numeric column
//
// Transport errors that never reach the pipeline are matched by pattern:
//
//	FILE001 - Request body too large
//	FILE002 - Invalid multipart form
//	BUSY001 - Too many concurrent parses
//	REQ001  - Request cancelled
//	REQ002  - Request timed out
//
//	ERR000  - Anything else. Check the server log for the technical error.

import (
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

var kindMessages = map[ErrorKind]UserMessage{
	KindUnsupportedFormat: {
		Message: "Unsupported file format",
		Action:  "Upload a .xlsx, .json, or .csv file",
		Code:    "FMT001",
	},
	KindUnparseableText: {
		Message: "The text could not be parsed",
		Action:  "Provide valid JSON or CSV data",
		Code:    "TXT001",
	},
	KindNoData: {
		Message: "No data found",
		Action:  "Provide a file or text containing a header and at least one row",
		Code:    "DATA001",
	},
	KindDecodeFailure: {
		Message: "The file could not be read",
		Action:  "Check that the file is well formed and saved as UTF-8 or Shift_JIS",
		Code:    "DEC001",
	},
	KindMissingCapability: {
		Message: "Server configuration error: this file format cannot be read",
		Action:  "Ask an administrator to enable or install the spreadsheet decoder",
		Code:    "CAP001",
	},
	KindInvalidOption: {
		Message: "Invalid chart option",
		Action:  "Choose columns that exist in the data; charted columns must be numeric",
		Code:    "OPT001",
	},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns covers errors raised outside the pipeline.
// The first case-insensitive substring match wins.
var errorPatterns = []errorPattern{
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Upload a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "multipart",
		msg: UserMessage{
			Message: "The upload form is invalid",
			Action:  "Send a multipart form with a file or a text field",
			Code:    "FILE002",
		},
	},
	{
		pattern: "too many concurrent parses",
		msg: UserMessage{
			Message: "The server is busy",
			Action:  "Please wait a moment and try again",
			Code:    "BUSY001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "REQ002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error into a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		if msg, ok := kindMessages[pe.Kind]; ok {
			if pe.Action != "" {
				msg.Action = pe.Action
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
