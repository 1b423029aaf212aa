package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure. Every kind has its own user message.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindUnsupportedFormat
	KindUnparseableText
	KindNoData
	KindDecodeFailure
	KindMissingCapability
	KindInvalidOption
)

var kindNames = map[ErrorKind]string{
	KindUnexpected:        "unexpected",
	KindUnsupportedFormat: "unsupported_format",
	KindUnparseableText:   "unparseable_text",
	KindNoData:            "no_data",
	KindDecodeFailure:     "decode_failure",
	KindMissingCapability: "missing_capability",
	KindInvalidOption:     "invalid_option",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsCallerError reports whether the caller can fix the input themselves.
// MissingCapability and Unexpected are operator problems.
func (k ErrorKind) IsCallerError() bool {
	switch k {
	case KindUnsupportedFormat, KindUnparseableText, KindNoData, KindDecodeFailure, KindInvalidOption:
		return true
	}
	return false
}

// ParseError is the error type returned by every pipeline stage.
type ParseError struct {
	Kind   ErrorKind
	Detail string // Technical detail for logs
	Action string // Overrides the default suggested action when set
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, detail string, err error) *ParseError {
	return &ParseError{Kind: kind, Detail: detail, Err: err}
}

// KindOf returns the kind of err. Errors that are not a *ParseError are
// KindUnexpected.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

// errNotThisFormat marks input that is syntactically not the format a
// decoder expected, as opposed to well-formed input with a bad shape.
// The text resolver uses it to move on to the next format.
var errNotThisFormat = errors.New("input is not in this format")
