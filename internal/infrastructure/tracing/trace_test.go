package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanInheritsTrace(t *testing.T) {
	tracer := New("numclass", nil)

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.NotEmpty(t, root.TraceID)
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
}

func TestInjectExtractRoundTrip(t *testing.T) {
	tracer := New("numclass", nil)
	span, ctx := tracer.StartSpan(context.Background(), "op")

	header := http.Header{}
	Inject(ctx, header)
	assert.Equal(t, string(span.TraceID), header.Get(TraceHeader))
	assert.Equal(t, string(span.SpanID), header.Get(SpanHeader))

	extracted := Extract(context.Background(), header)
	assert.Equal(t, span.TraceID, GetTraceID(extracted))
	assert.Equal(t, span.SpanID, GetSpanID(extracted))
}

func TestInjectWithoutTraceLeavesHeadersEmpty(t *testing.T) {
	header := http.Header{}
	Inject(context.Background(), header)
	assert.Empty(t, header)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	tracer := New("numclass", zap.New(core))

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))

	var seen TraceID
	router.GET("/api/classify-number", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/classify-number", nil)
	req.Header.Set(TraceHeader, "trace-from-caller")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, TraceID("trace-from-caller"), seen)
	assert.Equal(t, "trace-from-caller", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "GET /api/classify-number", entries[0].ContextMap()["operation"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}
