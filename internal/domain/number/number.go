package number

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags the domain a parsed number belongs to.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Number is a parsed numeric input. Exactly one of the integer or float
// payloads is meaningful, selected by Kind. A float with a zero fractional
// part stays a float.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// Integer creates an integer number
func Integer(n int64) Number {
	return Number{kind: KindInteger, i: n}
}

// Float creates a floating-point number
func Float(f float64) Number {
	return Number{kind: KindFloat, f: f}
}

// Kind returns the number's domain
func (n Number) Kind() Kind {
	return n.kind
}

// IsInteger reports whether the number belongs to the integer domain
func (n Number) IsInteger() bool {
	return n.kind == KindInteger
}

// Int returns the integer payload. Only meaningful for KindInteger.
func (n Number) Int() int64 {
	return n.i
}

// Float64 returns the value as a float64 for either kind.
func (n Number) Float64() float64 {
	if n.kind == KindInteger {
		return float64(n.i)
	}
	return n.f
}

// IsNegative reports whether the value is below zero
func (n Number) IsNegative() bool {
	if n.kind == KindInteger {
		return n.i < 0
	}
	return n.f < 0
}

// Value returns the payload for JSON encoding: an int64 for integers and a
// json.Number for floats. Floats always carry a decimal point, so 5.0 stays
// 5.0 on the wire.
func (n Number) Value() interface{} {
	if n.kind == KindInteger {
		return n.i
	}
	s := n.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s)
}

// String renders the number in plain decimal notation, never with an exponent.
func (n Number) String() string {
	if n.kind == KindInteger {
		return strconv.FormatInt(n.i, 10)
	}
	return decimal.NewFromFloat(n.f).String()
}
