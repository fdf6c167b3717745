package funfact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numclass/internal/domain/number"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/tracing"
)

// Placeholder replaced by the number in the URL template
const Placeholder = "{number}"

var (
	// ErrEnrichmentUnavailable wraps every lookup failure. It never leaves
	// Fact; callers of Lookup can match on it.
	ErrEnrichmentUnavailable = errors.New("fun fact unavailable")
	ErrUnsupportedKey        = errors.New("number not served by trivia service")
	ErrFactNotFound          = errors.New("trivia service has no fact for number")
	ErrEmptyFact             = errors.New("trivia service returned empty text")

	// errCallerGone marks a call abandoned by its caller. It says nothing
	// about the service's health.
	errCallerGone = errors.New("caller cancelled lookup")
)

// entityUnescaper restores the characters the sanitizer escapes in plain
// text. It never produces markup.
var entityUnescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// Config configures the trivia client.
type Config struct {
	URL             string
	Timeout         time.Duration
	Retries         int
	AllowNegative   bool
	BreakerFailures uint32
	BreakerCooldown time.Duration
	// PropagateTrace sends X-Trace-ID/X-Span-ID to the service. Enable only
	// for internal hosts.
	PropagateTrace bool
}

// factPayload is the JSON shape served by numbersapi-style services.
type factPayload struct {
	Text  string `json:"text"`
	Found *bool  `json:"found"`
}

// Client looks up trivia text for numbers over HTTP. It is safe for
// concurrent use.
type Client struct {
	resty         *resty.Client
	urlTemplate   string
	timeout       time.Duration
	allowNegative bool
	propagate     bool
	breaker       *resilience.Breaker
	sanitizer     *bluemonday.Policy
	logger        *zap.Logger
	metrics       *monitoring.Metrics
	tracer        *tracing.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records lookup outcomes
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = metrics }
}

// WithTracer adds a span per lookup and propagates trace headers
func WithTracer(tracer *tracing.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// New creates a trivia client.
func New(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	c := &Client{
		urlTemplate:   cfg.URL,
		timeout:       cfg.Timeout,
		allowNegative: cfg.AllowNegative,
		propagate:     cfg.PropagateTrace,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = tracing.New("funfact", c.logger)
	}

	// Pooled transport from retryablehttp; retries are driven by resty
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	c.resty = resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(100*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("User-Agent", "numclass-funfact/1.0").
		SetHeader("Accept", "application/json, text/plain")

	logger := c.logger
	c.breaker = resilience.New("funfact", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: resilience.ConsecutiveFailures(cfg.BreakerFailures),
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return c
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Lookup fetches trivia for n. Every failure wraps ErrEnrichmentUnavailable.
//
// Only transport errors, non-2xx replies and undecodable bodies count against
// the breaker. A missing fact or a caller that went away does not.
func (c *Client) Lookup(ctx context.Context, n number.Number) (string, error) {
	if n.IsNegative() && !c.allowNegative {
		return "", fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, ErrUnsupportedKey)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, err)
	}

	caller := ctx
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	span, ctx := c.tracer.StartSpan(ctx, "funfact.lookup")
	span.SetTag("number", n.String())
	defer c.tracer.Finish(span)

	target := strings.ReplaceAll(c.urlTemplate, Placeholder, url.PathEscape(n.String()))

	var (
		text string
		miss error
	)
	err := c.breaker.Execute(func() error {
		req := c.resty.R().SetContext(ctx)
		if c.propagate {
			tracing.Inject(ctx, req.Header)
		}

		resp, err := req.Get(target)
		if err != nil {
			if caller.Err() != nil {
				return fmt.Errorf("%w: %w", errCallerGone, err)
			}
			return err
		}
		span.SetStatus(resp.StatusCode())
		if resp.IsError() {
			return fmt.Errorf("unexpected status %d", resp.StatusCode())
		}

		text, err = c.decode(resp)
		if errors.Is(err, ErrFactNotFound) || errors.Is(err, ErrEmptyFact) {
			miss = err
			return nil
		}
		return err
	})
	if err == nil {
		err = miss
	}
	if err != nil {
		span.SetError(err)
		return "", fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, err)
	}
	return text, nil
}

// Fact returns trivia for n, or the deterministic fallback sentence when the
// lookup fails for any reason.
func (c *Client) Fact(ctx context.Context, n number.Number) string {
	start := time.Now()

	text, err := c.Lookup(ctx, n)
	if err != nil {
		if errors.Is(err, ErrUnsupportedKey) {
			c.logger.Debug("Fun fact lookup skipped", zap.String("number", n.String()))
		} else {
			c.logger.Warn("Fun fact lookup failed, using fallback",
				zap.String("number", n.String()),
				zap.Error(err),
			)
		}
		c.record("fallback", start)
		return number.DefaultFact(n)
	}

	c.record("fetched", start)
	return text
}

func (c *Client) record(outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordFunFact(outcome, time.Since(start))
	}
}

// decode extracts plain text from a JSON or text/plain response. Entities are
// decoded before sanitizing so that encoded markup is stripped too; the result
// is plain text.
func (c *Client) decode(resp *resty.Response) (string, error) {
	text := string(resp.Body())

	if strings.Contains(resp.Header().Get("Content-Type"), "json") {
		var payload factPayload
		if err := sonic.Unmarshal(resp.Body(), &payload); err != nil {
			return "", fmt.Errorf("decode fun fact: %w", err)
		}
		if payload.Found != nil && !*payload.Found {
			return "", ErrFactNotFound
		}
		text = payload.Text
	}

	text = strings.TrimSpace(entityUnescaper.Replace(c.sanitizer.Sanitize(html.UnescapeString(text))))
	if text == "" {
		return "", ErrEmptyFact
	}
	return text, nil
}

// Fallback serves only the deterministic fallback text. It is used when the
// external lookup is disabled.
type Fallback struct{}

// Fact returns number.DefaultFact(n)
func (Fallback) Fact(_ context.Context, n number.Number) string {
	return number.DefaultFact(n)
}
