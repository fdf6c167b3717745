package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numclass/internal/domain/classify"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/resilience"
)

// Version reported by the banner and health endpoints
const Version = "1.0.0"

// StatusClientClosedRequest is returned when the caller went away or the
// request deadline passed before classification finished.
const StatusClientClosedRequest = 499

// Classifier is the domain operation served by ClassifyNumber.
type Classifier interface {
	Classify(ctx context.Context, raw string) (*classify.Result, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	classifier Classifier
	breaker    *resilience.Breaker
	logger     *zap.Logger
	startTime  time.Time
}

// NewHandlers creates a new handler set. breaker is nil when the external
// fun fact lookup is disabled.
func NewHandlers(classifier Classifier, breaker *resilience.Breaker, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		classifier: classifier,
		breaker:    breaker,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// ErrorResponse is the body of a 400 reply. Number echoes the raw input, or
// is null when the parameter was absent.
type ErrorResponse struct {
	Number  *string `json:"number"`
	Error   bool    `json:"error"`
	Message string  `json:"message"`
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Number Classifier (Go)",
		"version": Version,
		"endpoints": []string{
			"GET /api/classify-number?number=<n>",
			"GET /health",
			"GET /metrics",
		},
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	funfact := gin.H{"enabled": h.breaker != nil}
	if h.breaker != nil {
		counts := h.breaker.Counts()
		funfact["breaker"] = gin.H{
			"name":                 h.breaker.Name(),
			"state":                h.breaker.State().String(),
			"consecutive_failures": counts.ConsecutiveFailures,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"version":        Version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"funfact":        funfact,
	})
}

// ClassifyNumber handles GET /api/classify-number?number=<raw>
func (h *Handlers) ClassifyNumber(c *gin.Context) {
	raw, present := c.GetQuery("number")

	result, err := h.classifier.Classify(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, raw, present, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) fail(c *gin.Context, raw string, present bool, err error) {
	_ = c.Error(err)

	if errors.Is(err, classify.ErrInvalidNumber) {
		resp := ErrorResponse{Error: true, Message: invalidMessage(present)}
		if present {
			resp.Number = &raw
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		h.logger.Debug("Classification abandoned",
			zap.String("number", raw),
			zap.Error(err),
		)
		c.AbortWithStatus(StatusClientClosedRequest)
		return
	}

	h.logger.Error("Classification failed",
		zap.String("number", raw),
		zap.Error(err),
	)
	InternalError(c)
}

func invalidMessage(present bool) string {
	if !present {
		return "Missing 'number' query parameter"
	}
	return "Invalid number format"
}

// InternalError writes the opaque 500 body. Details stay in the logs.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
	})
}
