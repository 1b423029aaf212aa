package core

import (
	"bytes"
	"errors"
	"strings"
)

// Resolve decodes input with the strategy the registry selects.
//
// A file is dispatched on its extension. Text is offered to each text
// format in order; a format that finds the text syntactically foreign
// passes it on, any other failure ends the attempt as KindUnparseableText.
func (r *Registry) Resolve(in RawInput) (*Table, Format, error) {
	if in.HasFile {
		return r.resolveFile(in)
	}
	return r.resolveText(in.Text)
}

func (r *Registry) resolveFile(in RawInput) (*Table, Format, error) {
	format, err := r.ForFile(in.FileName)
	if err != nil {
		return nil, Format{}, err
	}

	if len(bytes.TrimSpace(in.Data)) == 0 {
		return nil, format, newError(KindNoData, "file "+in.FileName+" is empty", nil)
	}

	table, err := format.Decode(in.Data)
	if err != nil {
		return nil, format, asParseError(err, KindDecodeFailure)
	}
	return table, format, nil
}

func (r *Registry) resolveText(text string) (*Table, Format, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Format{}, newError(KindNoData, "no file or text provided", nil)
	}

	data := []byte(text)
	var lastErr error
	for _, format := range r.TextFormats() {
		if !format.Available() {
			continue
		}

		table, err := format.Decode(data)
		if err == nil {
			return table, format, nil
		}
		if IsKind(err, KindNoData) {
			return nil, format, err
		}

		lastErr = err
		if errors.Is(err, errNotThisFormat) {
			continue
		}
		break
	}

	return nil, Format{}, &ParseError{
		Kind:   KindUnparseableText,
		Detail: "text is neither a JSON table nor comma-separated text",
		Err:    lastErr,
	}
}

// asParseError keeps a *ParseError as is and wraps anything else.
func asParseError(err error, kind ErrorKind) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return newError(kind, "", err)
}
