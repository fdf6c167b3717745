package number

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidNumber is returned for input that is absent, empty or not a
// finite decimal number.
var ErrInvalidNumber = errors.New("invalid number")

var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Parse converts a raw query token into a Number.
//
// Plain integer literals that fit int64 become integers. Any other finite
// decimal literal, including integer literals that overflow int64 and values
// such as "5.0", becomes a float. Surrounding whitespace, hex, NaN and Inf
// are rejected.
func Parse(raw string) (Number, error) {
	if raw == "" {
		return Number{}, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}

	if integerPattern.MatchString(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Integer(n), nil
		}
	}

	if !decimalPattern.MatchString(raw) {
		return Number{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidNumber, raw)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, fmt.Errorf("%w: %q is out of range", ErrInvalidNumber, raw)
	}

	return Float(f), nil
}
