package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context this (used by mylog)
type CtxTraceContext struct{}

// CtxRequestID is a context key for the request id (set by myhttp.RequestID)
type CtxRequestID struct{}

// ContextFromHTTPRequest derives from the request context, so cancellation of the inbound
// connection propagates to outbound calls.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}

func WithRequestID(c context.Context, requestID string) context.Context {
	return context.WithValue(c, CtxRequestID{}, requestID)
}

func RequestID(c context.Context) string {
	id, _ := c.Value(CtxRequestID{}).(string)
	return id
}

func Trace(c context.Context) string {
	trace, _ := c.Value(CtxTraceContext{}).(string)
	return trace
}
