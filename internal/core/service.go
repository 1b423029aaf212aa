package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/chartparse/internal/logging"
)

// Service runs the parse pipeline: resolve, decode, project.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	registry *Registry
	limiter  *ParseLimiter
}

// NewService creates a Service. limiter may be nil, in which case parses
// are not throttled.
func NewService(registry *Registry, limiter *ParseLimiter) *Service {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Service{
		registry: registry,
		limiter:  limiter,
	}
}

// Registry returns the format dispatch table in use.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Parse turns raw input into a ChartBundle using default projection.
func (s *Service) Parse(ctx context.Context, in RawInput) (*ChartBundle, error) {
	return s.ParseWithOptions(ctx, in, ProjectOptions{})
}

// ParseWithOptions turns raw input into a ChartBundle. Every error is a
// *ParseError except limiter rejections and context errors.
func (s *Service) ParseWithOptions(ctx context.Context, in RawInput, opts ProjectOptions) (bundle *ChartBundle, err error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
		defer s.limiter.Release()
	}

	logger := logging.FromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in parse", "file", in.FileName, "panic", r)
			bundle = nil
			err = newError(KindUnexpected, "internal error", fmt.Errorf("%v", r))
		}
	}()

	table, format, err := s.registry.Resolve(in)
	if err != nil {
		s.logFailure(ctx, in, format, err)
		return nil, err
	}

	bundle, err = ProjectWith(table, opts)
	if err != nil {
		s.logFailure(ctx, in, format, err)
		return nil, err
	}

	if table.Encoding != "" && table.Encoding != EncodingUTF8 {
		logger.Debug("text decoded with fallback encoding", "encoding", table.Encoding, "format", format.Name)
	}
	logger.Debug("parse completed",
		"format", format.Name,
		"file", in.FileName,
		"rows", table.Rows(),
		"columns", len(table.Columns),
		"numeric_columns", len(bundle.NumericColumns),
		"chartable", bundle.Chartable(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return bundle, nil
}

func (s *Service) logFailure(ctx context.Context, in RawInput, format Format, err error) {
	logger := logging.FromContext(ctx)
	kind := KindOf(err)
	if kind.IsCallerError() {
		logger.Warn("parse rejected",
			"kind", kind.String(),
			"format", format.Name,
			"file", in.FileName,
			"error", err.Error(),
		)
		return
	}
	logger.Error("parse failed",
		"kind", kind.String(),
		"format", format.Name,
		"file", in.FileName,
		"error", err.Error(),
	)
}

// LimiterStatus reports parse concurrency. Zero when unthrottled.
func (s *Service) LimiterStatus() ParseLimiterStatus {
	if s.limiter == nil {
		return ParseLimiterStatus{}
	}
	return s.limiter.Status()
}

// WaitForParses blocks until in-flight parses finish or ctx ends.
func (s *Service) WaitForParses(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.WaitForDrain(ctx)
}

// Parse runs the pipeline with the default registry and no throttling.
func Parse(in RawInput) (*ChartBundle, error) {
	return NewService(nil, nil).Parse(context.Background(), in)
}
