package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer name for govcx operations
const TracerName = "github.com/willibrandon/govcx"

// Common attribute keys
const (
	AttrDocumentKind = attribute.Key("govcx.document.kind")
	AttrDocumentPath = attribute.Key("govcx.document.path")
	AttrOperation    = attribute.Key("govcx.operation")
	AttrProjectCount = attribute.Key("govcx.solution.project_count")
)

// StartLoadSpan starts a span for parsing a document from disk
func StartLoadSpan(ctx context.Context, kind, path string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, kind+".load",
		trace.WithAttributes(
			AttrDocumentKind.String(kind),
			AttrDocumentPath.String(path),
			AttrOperation.String("load"),
		),
	)
}

// StartWriteSpan starts a span for serializing a document to disk
func StartWriteSpan(ctx context.Context, kind, path string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, kind+".write",
		trace.WithAttributes(
			AttrDocumentKind.String(kind),
			AttrDocumentPath.String(path),
			AttrOperation.String("write"),
		),
	)
}
