// Package instrument gives every registry service the same logging, metrics,
// tracing and audit treatment for its mutations.
package instrument

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"medsim/internal/platform/metrics"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/requestcontext"
)

// OutcomeOK labels successful operations in metrics.
const OutcomeOK = "ok"

// Recorder is owned by one registry service.
type Recorder struct {
	registry string
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	auditor  audit.Emitter
	clock    func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(r *Recorder) {
		r.tracer = t
	}
}

// WithAuditEmitter sets where mutation events go. Without one no events are emitted.
func WithAuditEmitter(e audit.Emitter) Option {
	return func(r *Recorder) {
		r.auditor = e
	}
}

// WithClock sets the time source used for every timestamp the registry stores.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.clock = now
	}
}

// New builds a Recorder for registry.
func New(registry string, opts ...Option) *Recorder {
	r := &Recorder{
		registry: registry,
		logger:   slog.Default(),
		tracer:   otel.Tracer("medsim/" + registry),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now reads the registry clock.
func (r *Recorder) Now() time.Time {
	return r.clock()
}

// Logger exposes the registry logger for read paths.
func (r *Recorder) Logger() *slog.Logger {
	return r.logger
}

// SetRecords publishes the registry size.
func (r *Recorder) SetRecords(n int) {
	if r.metrics != nil {
		r.metrics.SetRecords(r.registry, n)
	}
}

// Op tracks one in-flight mutation.
type Op struct {
	r         *Recorder
	ctx       context.Context
	span      trace.Span
	operation string
	caller    id.Identity
	key       string
	start     time.Time
}

// Start opens a span for operation and returns the context to run it under.
func (r *Recorder) Start(ctx context.Context, operation string, caller id.Identity, key string) (context.Context, *Op) {
	ctx, span := r.tracer.Start(ctx, r.registry+"."+operation,
		trace.WithAttributes(
			attribute.String("medsim.registry", r.registry),
			attribute.String("medsim.caller", caller.String()),
			attribute.String("medsim.key", key),
		),
	)
	return ctx, &Op{
		r:         r,
		ctx:       ctx,
		span:      span,
		operation: operation,
		caller:    caller,
		key:       key,
		start:     time.Now(),
	}
}

// Finish closes the operation. On success it emits action to the audit
// trail; an Unauthorized failure emits an access_denied security event.
// err is returned unchanged.
func (o *Op) Finish(err error, action audit.AuditEvent) error {
	defer o.span.End()

	r := o.r
	outcome := OutcomeOK
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, outcome)
	}
	o.span.SetAttributes(attribute.String("medsim.outcome", outcome))

	if r.metrics != nil {
		r.metrics.ObserveOperation(r.registry, o.operation, outcome, o.start)
	}

	attrs := []any{
		"registry", r.registry,
		"operation", o.operation,
		"caller", o.caller,
		"key", o.key,
		"request_id", requestcontext.RequestID(o.ctx),
	}
	switch {
	case err == nil:
		r.logger.InfoContext(o.ctx, "registry mutation applied", attrs...)
		o.emit(audit.Event{
			Action:  string(action),
			Outcome: audit.OutcomeSuccess,
		})
	case isCoreFailure(err):
		r.logger.WarnContext(o.ctx, "registry mutation rejected", append(attrs, "code", outcome)...)
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			o.emit(audit.Event{
				Action:  string(audit.EventAccessDenied),
				Outcome: audit.OutcomeDenied,
				Reason:  o.operation,
			})
		}
	default:
		r.logger.ErrorContext(o.ctx, "registry mutation failed", append(attrs, "code", outcome, "error", err)...)
	}
	return err
}

func (o *Op) emit(event audit.Event) {
	r := o.r
	if r.auditor == nil {
		return
	}
	event.Category = audit.AuditEvent(event.Action).Category()
	event.Timestamp = r.clock()
	event.Actor = o.caller
	event.Registry = r.registry
	event.Key = o.key
	event.RequestID = requestcontext.RequestID(o.ctx)
	if err := r.auditor.Emit(o.ctx, event); err != nil {
		r.logger.ErrorContext(o.ctx, "failed to emit audit event",
			"registry", r.registry,
			"action", event.Action,
			"key", o.key,
			"error", err,
		)
	}
}

func isCoreFailure(err error) bool {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeUnauthorized, dErrors.CodeAlreadyExists,
		dErrors.CodeNotFound, dErrors.CodeSessionAlreadyCompleted:
		return true
	default:
		return false
	}
}
