// Package number parses raw numeric input and evaluates the classification
// predicates over it.
//
// Parsing yields a Number tagged as either an integer (int64) or a float
// (float64). The predicates operate on the integer domain only:
//   - IsPrime: 6k±1 trial division
//   - IsPerfect: proper divisor sum
//   - IsArmstrong: digit-power sum, never true for negatives
//   - DigitSum / Parity
//
// Everything in this package is pure and safe for concurrent use.
package number
