package classify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/numclass/internal/domain/number"
)

// Property tags, in the order they appear in a result
const (
	PropertyArmstrong     = "armstrong"
	PropertyFloatingPoint = "floating-point"
	PropertyNegative      = "negative"
)

var (
	// ErrInvalidNumber marks input that could not be parsed (HTTP 400).
	ErrInvalidNumber = number.ErrInvalidNumber
	// ErrInternalFault marks an unexpected failure during classification
	// (HTTP 500). Details stay in the logs.
	ErrInternalFault = errors.New("internal fault")
)

// Enricher supplies the fun fact for a number. Implementations must never
// fail: on any problem they return fallback text.
type Enricher interface {
	Fact(ctx context.Context, n number.Number) string
}

// Recorder receives one event per classification with the branch taken.
type Recorder interface {
	RecordClassification(branch string)
}

// Result is the classification of one number. It is built once and never
// modified afterwards.
type Result struct {
	Number     interface{} `json:"number"`
	IsPrime    bool        `json:"is_prime"`
	IsPerfect  bool        `json:"is_perfect"`
	Properties []string    `json:"properties"`
	DigitSum   int64       `json:"digit_sum"`
	FunFact    string      `json:"fun_fact"`
}

// facts is the predicate part of a Result, computed without enrichment.
type facts struct {
	isPrime    bool
	isPerfect  bool
	properties []string
	digitSum   int64
	branch     string
}

// Classifier sequences parsing, predicate evaluation and enrichment.
// It holds no per-request state and is safe for concurrent use.
type Classifier struct {
	enricher Enricher
	recorder Recorder
	logger   *zap.Logger
	evaluate func(context.Context, number.Number) (facts, error)
}

// New creates a classifier. recorder and logger may be nil.
func New(enricher Enricher, recorder Recorder, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		enricher: enricher,
		recorder: recorder,
		logger:   logger,
		evaluate: evaluate,
	}
}

// Classify parses raw and classifies the number.
//
// Parse failures return an error wrapping ErrInvalidNumber. Unexpected
// faults return an error wrapping ErrInternalFault. If ctx ends before the
// predicates finish, the error wraps ctx.Err(). Enrichment problems never
// surface: the enricher substitutes fallback text.
func (c *Classifier) Classify(ctx context.Context, raw string) (*Result, error) {
	n, err := number.Parse(raw)
	if err != nil {
		c.record("invalid")
		return nil, err
	}

	var (
		f    facts
		fact string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("Predicate evaluation panicked",
					zap.String("number", raw),
					zap.Any("panic", r),
				)
				err = fmt.Errorf("%w: evaluating %q", ErrInternalFault, raw)
			}
		}()
		f, err = c.evaluate(gctx, n)
		if err != nil {
			return fmt.Errorf("classify %q: %w", raw, err)
		}
		return nil
	})
	g.Go(func() error {
		fact = c.enrich(gctx, n)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.record(f.branch)
	return &Result{
		Number:     n.Value(),
		IsPrime:    f.isPrime,
		IsPerfect:  f.isPerfect,
		Properties: f.properties,
		DigitSum:   f.digitSum,
		FunFact:    fact,
	}, nil
}

// enrich calls the enricher, treating a panic as an unavailable service.
func (c *Classifier) enrich(ctx context.Context, n number.Number) (fact string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Enricher panicked, using fallback",
				zap.String("number", n.String()),
				zap.Any("panic", r),
			)
			fact = number.DefaultFact(n)
		}
	}()
	if c.enricher == nil {
		return number.DefaultFact(n)
	}
	return c.enricher.Fact(ctx, n)
}

func (c *Classifier) record(branch string) {
	if c.recorder != nil {
		c.recorder.RecordClassification(branch)
	}
}

// evaluate applies the branch policy for floats, negative integers and
// non-negative integers. Only the prime and perfect checks can run long, so
// ctx is consulted around them.
func evaluate(ctx context.Context, n number.Number) (facts, error) {
	if !n.IsInteger() {
		return facts{
			properties: []string{PropertyFloatingPoint},
			digitSum:   number.FloatDigitSum(n.Float64()),
			branch:     "float",
		}, nil
	}

	v := n.Int()
	if v < 0 {
		return facts{
			properties: []string{PropertyNegative, number.Parity(v)},
			digitSum:   number.DigitSum(v),
			branch:     "negative",
		}, nil
	}

	properties := make([]string, 0, 2)
	if number.IsArmstrong(v) {
		properties = append(properties, PropertyArmstrong)
	}
	properties = append(properties, number.Parity(v))

	isPrime, err := number.IsPrimeContext(ctx, v)
	if err != nil {
		return facts{}, err
	}
	if err := ctx.Err(); err != nil {
		return facts{}, err
	}

	return facts{
		isPrime:    isPrime,
		isPerfect:  number.IsPerfect(v),
		properties: properties,
		digitSum:   number.DigitSum(v),
		branch:     "integer",
	}, nil
}
