package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/chartparse/internal/core"
	"github.com/JonMunkholm/chartparse/internal/logging"
	"github.com/JonMunkholm/chartparse/internal/web/middleware"
	"github.com/JonMunkholm/chartparse/internal/web/templates"
	"github.com/google/uuid"
)

// Form fields accepted by POST /parse.
const (
	fieldFile         = "file"
	fieldText         = "text"
	fieldLabelColumn  = "label_column"
	fieldValueColumns = "value_columns"
)

// handleHealth reports that the API is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": HealthMessage})
}

// handleUploadPage renders the upload form.
func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.UploadPage(s.service.Registry().Extensions()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render upload page", "error", err)
	}
}

// handleParse runs the pipeline on a multipart (or url-encoded) form with
// an optional "file" and an optional "text" field. A file wins over text.
// Chart options come from "label_column" and "value_columns".
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	parseID := uuid.New().String()
	w.Header().Set(middleware.ParseIDHeader, parseID)
	ctx := logging.WithParseID(r.Context(), parseID)
	r = r.WithContext(ctx)

	maxSize := s.cfg.Parse.MaxInputSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	in, err := readRawInput(r, maxSize)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	opts := readProjectOptions(r)

	logging.FromContext(ctx).Debug("parse received",
		"has_file", in.HasFile,
		"file", in.FileName,
		"size", len(in.Data)+len(in.Text),
	)

	bundle, err := s.service.ParseWithOptions(ctx, in, opts)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ParseResult(parseID, bundle).Render(ctx, w); err != nil {
			logging.FromContext(ctx).Error("render parse result", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// readRawInput extracts the file and text fields from the request form.
func readRawInput(r *http.Request, maxSize int64) (core.RawInput, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		if isTooLarge(err) {
			return core.RawInput{}, &http.MaxBytesError{Limit: maxSize}
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return core.RawInput{}, fmt.Errorf("invalid multipart form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return core.RawInput{}, fmt.Errorf("invalid form: %w", err)
		}
	}

	in := core.TextInput(r.FormValue(fieldText))

	file, header, err := r.FormFile(fieldFile)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil
	case err != nil:
		return core.RawInput{}, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer file.Close()

	// Browsers send an empty part when the file input is left blank
	if header.Filename == "" && header.Size == 0 {
		return in, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			return core.RawInput{}, &http.MaxBytesError{Limit: maxSize}
		}
		return core.RawInput{}, fmt.Errorf("read uploaded file: %w", err)
	}

	in.FileName = header.Filename
	in.Data = data
	in.HasFile = true
	return in, nil
}

// isTooLarge reports whether err came from the body size limit. The
// multipart reader does not always wrap the underlying error.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

// readProjectOptions reads chart options. value_columns may repeat and
// each value may hold a comma-separated list.
func readProjectOptions(r *http.Request) core.ProjectOptions {
	opts := core.ProjectOptions{
		LabelColumn: strings.TrimSpace(r.FormValue(fieldLabelColumn)),
	}
	for _, v := range r.Form[fieldValueColumns] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.ValueColumns = append(opts.ValueColumns, name)
			}
		}
	}
	return opts
}
