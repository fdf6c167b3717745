package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/numclass/internal/domain/classify"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numclass/internal/providers/funfact"
)

type stubClassifier struct {
	err error
}

func (s stubClassifier) Classify(context.Context, string) (*classify.Result, error) {
	return nil, s.err
}

func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/api/classify-number", h.ClassifyNumber)
	return router
}

func get(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func offlineHandlers() *Handlers {
	return NewHandlers(classify.New(funfact.Fallback{}, nil, nil), nil, nil)
}

func TestClassifyNumberSuccess(t *testing.T) {
	router := newTestRouter(offlineHandlers())

	tests := []struct {
		query string
		want  string
	}{
		{
			query: "371",
			want:  `{"number":371,"is_prime":false,"is_perfect":false,"properties":["armstrong","odd"],"digit_sum":11,"fun_fact":"371 is an Armstrong number because 3^3 + 7^3 + 1^3 = 371"}`,
		},
		{
			query: "496",
			want:  `{"number":496,"is_prime":false,"is_perfect":true,"properties":["even"],"digit_sum":19,"fun_fact":"496 is an interesting number!"}`,
		},
		{
			query: "97",
			want:  `{"number":97,"is_prime":true,"is_perfect":false,"properties":["odd"],"digit_sum":16,"fun_fact":"97 is an interesting number!"}`,
		},
		{
			query: "-8",
			want:  `{"number":-8,"is_prime":false,"is_perfect":false,"properties":["negative","even"],"digit_sum":8,"fun_fact":"-8 is an interesting number!"}`,
		},
		{
			query: "5.0",
			want:  `{"number":5.0,"is_prime":false,"is_perfect":false,"properties":["floating-point"],"digit_sum":5,"fun_fact":"5 is an interesting number!"}`,
		},
		{
			query: "3.5",
			want:  `{"number":3.5,"is_prime":false,"is_perfect":false,"properties":["floating-point"],"digit_sum":8,"fun_fact":"3.5 is an interesting number!"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, router, "/api/classify-number?number="+tt.query)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestClassifyNumberInvalid(t *testing.T) {
	router := newTestRouter(offlineHandlers())

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "letters",
			target: "/api/classify-number?number=abc",
			want:   `{"number":"abc","error":true,"message":"Invalid number format"}`,
		},
		{
			name:   "empty",
			target: "/api/classify-number?number=",
			want:   `{"number":"","error":true,"message":"Invalid number format"}`,
		},
		{
			name:   "absent",
			target: "/api/classify-number",
			want:   `{"number":null,"error":true,"message":"Missing 'number' query parameter"}`,
		},
		{
			name:   "hex",
			target: "/api/classify-number?number=0x1F",
			want:   `{"number":"0x1F","error":true,"message":"Invalid number format"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.target)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestClassifyNumberInternalFault(t *testing.T) {
	fault := fmt.Errorf("%w: evaluating %q", classify.ErrInternalFault, "42")
	router := newTestRouter(NewHandlers(stubClassifier{err: fault}, nil, nil))

	w := get(t, router, "/api/classify-number?number=42")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "evaluating")
}

func TestClassifyNumberUnknownErrorIsOpaque(t *testing.T) {
	router := newTestRouter(NewHandlers(stubClassifier{err: errors.New("boom")}, nil, nil))

	w := get(t, router, "/api/classify-number?number=1")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestClassifyNumberKeepsFloatNotation(t *testing.T) {
	router := newTestRouter(offlineHandlers())

	w := get(t, router, "/api/classify-number?number=5.0")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number":5.0,`)
}

func TestClassifyNumberAbandoned(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"cancelled", fmt.Errorf("classify %q: %w", "42", context.Canceled)},
		{"deadline", fmt.Errorf("classify %q: %w", "42", context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(NewHandlers(stubClassifier{err: tt.err}, nil, nil))

			w := get(t, router, "/api/classify-number?number=42")

			assert.Equal(t, StatusClientClosedRequest, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestRoot(t *testing.T) {
	router := newTestRouter(offlineHandlers())

	w := get(t, router, "/")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestHealth(t *testing.T) {
	t.Run("without lookup", func(t *testing.T) {
		router := newTestRouter(offlineHandlers())

		w := get(t, router, "/health")

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Status  string                 `json:"status"`
			FunFact map[string]interface{} `json:"funfact"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, false, body.FunFact["enabled"])
		assert.NotContains(t, body.FunFact, "breaker")
	})

	t.Run("reports open breaker", func(t *testing.T) {
		breaker := resilience.New("funfact", resilience.Settings{
			Timeout:     time.Hour,
			ReadyToTrip: resilience.ConsecutiveFailures(1),
		})
		_ = breaker.Execute(func() error { return errors.New("down") })

		router := newTestRouter(NewHandlers(classify.New(nil, nil, nil), breaker, nil))
		w := get(t, router, "/health")

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			FunFact struct {
				Enabled bool `json:"enabled"`
				Breaker struct {
					Name  string `json:"name"`
					State string `json:"state"`
				} `json:"breaker"`
			} `json:"funfact"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.FunFact.Enabled)
		assert.Equal(t, "funfact", body.FunFact.Breaker.Name)
		assert.Equal(t, resilience.StateOpen.String(), body.FunFact.Breaker.State)
	})
}
