package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrRequestID      = "request.id"
	AttrPostID         = "post.id"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPURL        = "http.url"
	AttrKVKey          = "kv.key"
	AttrKVBytes        = "kv.bytes"
	AttrGeoProvider    = "geo.provider"
	AttrGeoCached      = "geo.cached"
	AttrOutcome        = "outcome"
	AttrCacheHit       = "cache.hit"
)

// Span names.
const (
	SpanPostsFetch = "posts.fetch"
	SpanKVGet      = "kv.get"
	SpanKVSet      = "kv.set"
	SpanKVRemove   = "kv.remove"
	SpanGeoLocate  = "geo.locate"
)

// RecordError marks span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
