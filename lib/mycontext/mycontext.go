package mycontext

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CtxTraceContext is a context key for the trace label (used by mylog)
type CtxTraceContext struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	trace := r.Header.Get("X-Request-Id")
	if trace == "" {
		trace = uuid.New().String()
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}

func GetTraceID(c context.Context) string {
	trace, ok := c.Value(CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return trace
}
