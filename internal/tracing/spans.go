package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for navigation tracing.
const (
	AttrNavigationID  = "navigation.id"
	AttrNavigationURI = "navigation.uri"
	AttrJournalLen    = "journal.length"
	AttrDirection     = "navigation.direction"
	AttrErrorMessage  = "error.message"
)

// Span names.
const (
	SpanNavigate = "navigation.execute"
	SpanGoBack   = "navigation.back"
)

// Event names recorded on navigation spans.
const (
	EventQueued          = "navigation.queued"
	EventProviderApplied = "provider.applied"
	EventJournalPushed   = "journal.pushed"
)

// StartNavigation opens a span for one navigation attempt.
func StartNavigation(ctx context.Context, tracer trace.Tracer, name, id, uri string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrNavigationID, id),
			attribute.String(AttrNavigationURI, uri),
		),
	)
}

// EndNavigation records the outcome on span and ends it.
func EndNavigation(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
