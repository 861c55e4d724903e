package repository

import (
	"context"
	"time"
)

// Instrumented decorates a Store with metrics and failure logging. Every
// operation records its duration and an ok/error status under the
// operation names save, load, delete and list.
type Instrumented[T Aggregate] struct {
	inner   Store[T]
	metrics MetricsRecorder
	logger  Logger
}

// Instrument wraps inner. A nil recorder disables metrics; a nil logger
// falls back to NopLogger.
func Instrument[T Aggregate](inner Store[T], metrics MetricsRecorder, logger Logger) *Instrumented[T] {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Instrumented[T]{inner: inner, metrics: metrics, logger: logger}
}

func (s *Instrumented[T]) observe(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordDuration(operation, time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordResult(operation, status)
	}
	if err != nil {
		s.logger.Error("repository operation failed", "operation", operation, "error", err)
	}
}

// Save persists the aggregate through the wrapped store.
func (s *Instrumented[T]) Save(ctx context.Context, aggregate T) error {
	start := time.Now()
	err := s.inner.Save(ctx, aggregate)
	s.observe("save", start, err)
	return err
}

// Load fetches an aggregate through the wrapped store.
func (s *Instrumented[T]) Load(ctx context.Context, id string) (T, error) {
	start := time.Now()
	out, err := s.inner.Load(ctx, id)
	s.observe("load", start, err)
	return out, err
}

// Delete removes an aggregate through the wrapped store.
func (s *Instrumented[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, id)
	s.observe("delete", start, err)
	return err
}

// List fetches all aggregates through the wrapped store.
func (s *Instrumented[T]) List(ctx context.Context) ([]T, error) {
	start := time.Now()
	out, err := s.inner.List(ctx)
	s.observe("list", start, err)
	return out, err
}

// Close releases the wrapped store.
func (s *Instrumented[T]) Close() error {
	return s.inner.Close()
}
