package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted for the client: an HTML alert for HTMX, JSON otherwise
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. statusFor picks the HTTP status from the error kind
//  4. Error is mapped via core.MapError to get user-friendly message
//  5. User message is rendered in the format the client expects

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/chartparse/internal/core"
	"github.com/JonMunkholm/chartparse/internal/logging"
	"github.com/JonMunkholm/chartparse/internal/web/templates"
)

// ErrorResponse is the JSON body of a failed request. Frontends read
// Detail; the other fields add guidance and a support code.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyParses),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}

	var pe *core.ParseError
	if !errors.As(err, &pe) {
		return http.StatusBadRequest
	}
	if pe.Kind.IsCallerError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the user-facing response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request error", args...)
	}

	if isHTMX(r) {
		s.renderErrorPartial(w, r, msg, status)
		return
	}
	writeJSON(w, status, ErrorResponse{
		Detail:  s.errorDetail(err, msg),
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// errorDetail is the sentence a frontend shows the user. It is built from
// the user message and its action; ParseError.Detail stays in the log.
// Server-side errors carry the technical message only when configured.
func (s *Server) errorDetail(err error, msg core.UserMessage) string {
	var pe *core.ParseError
	if errors.As(err, &pe) && !pe.Kind.IsCallerError() && s.cfg.Parse.ExposeInternalErrors {
		return err.Error()
	}
	return userDetail(msg)
}

func userDetail(msg core.UserMessage) string {
	if msg.Action == "" {
		return msg.Message
	}
	return msg.Message + ". " + msg.Action
}

// renderErrorPartial renders an HTMX-compatible error fragment. HTMX
// ignores non-2xx bodies by default, so the status goes in a header.
func (s *Server) renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Error-Status", http.StatusText(status))
	w.WriteHeader(http.StatusOK)

	if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error alert", "error", err)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
