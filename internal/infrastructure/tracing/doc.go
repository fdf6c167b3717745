/*
Package tracing provides lightweight request tracing.

# Overview

Every HTTP request gets a trace ID (taken from X-Trace-ID when the caller
supplies one) and a span. Child spans cover outbound calls, and the trace
context can be propagated on outbound requests through the same headers.
Completed spans are written to the structured log.

# Usage

	tracer := tracing.New("numclass", logger)
	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "funfact.lookup")
	defer tracer.Finish(span)
	span.SetTag("number", "153")

# Headers

  - X-Trace-ID: identifier for the whole request flow
  - X-Span-ID: identifier for the current operation
*/
package tracing
