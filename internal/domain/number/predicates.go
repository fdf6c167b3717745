package number

import (
	"context"
	"math/bits"
	"strconv"
	"strings"
)

// directDivisorLimit bounds the inputs for which IsPerfect sums divisors
// directly. Larger inputs go through the Euclid–Euler form.
const directDivisorLimit = 1 << 20

// primeCheckInterval is how many trial divisions IsPrimeContext runs between
// cancellation checks.
const primeCheckInterval = 4096

// IsPrime reports whether n is prime using 6k±1 trial division.
// Cost is O(√n); primes close to MaxInt64 take several seconds.
func IsPrime(n int64) bool {
	ok, _ := IsPrimeContext(context.Background(), n)
	return ok
}

// IsPrimeContext is IsPrime that gives up once ctx is done, returning
// ctx.Err().
func IsPrimeContext(ctx context.Context, n int64) (bool, error) {
	if n < 2 {
		return false, nil
	}
	if n < 4 {
		return true, nil
	}
	if n%2 == 0 || n%3 == 0 {
		return false, nil
	}
	step := 0
	for i := int64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false, nil
		}
		if step++; step == primeCheckInterval {
			step = 0
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// IsPerfect reports whether n equals the sum of its proper divisors.
// Zero, one and negatives are never perfect.
func IsPerfect(n int64) bool {
	if n < 2 {
		return false
	}
	if n <= directDivisorLimit {
		return properDivisorSum(n) == n
	}

	// No odd perfect number exists below 10^1500, so over int64 the only
	// candidates are 2^k * (2^(k+1) - 1) with the odd factor prime.
	if n%2 != 0 {
		return false
	}
	k := bits.TrailingZeros64(uint64(n))
	if k > 31 {
		return false
	}
	odd := n >> k
	return odd == int64(1)<<(k+1)-1 && IsPrime(odd)
}

// properDivisorSum sums the divisors of n in [1, n-1], enumerating pairs
// up to √n. It stops early once the sum exceeds n.
func properDivisorSum(n int64) int64 {
	sum := int64(1)
	for i := int64(2); i <= n/i; i++ {
		if n%i != 0 {
			continue
		}
		sum += i
		if pair := n / i; pair != i {
			sum += pair
		}
		if sum > n {
			return sum
		}
	}
	return sum
}

// IsArmstrong reports whether n equals the sum of its digits each raised to
// the number of digits. Negative numbers are never Armstrong numbers.
func IsArmstrong(n int64) bool {
	if n < 0 {
		return false
	}

	digits := decimalDigits(uint64(n))
	power := len(digits)
	target := uint64(n)

	var sum uint64
	for _, d := range digits {
		term := pow(uint64(d), power)
		if term > target || sum > target-term {
			return false
		}
		sum += term
	}
	return sum == target
}

// DigitSum returns the sum of the decimal digits of |n|.
func DigitSum(n int64) int64 {
	var sum int64
	for _, d := range decimalDigits(abs(n)) {
		sum += int64(d)
	}
	return sum
}

// FloatDigitSum sums the decimal digits in the plain textual form of f.
// Sign and decimal point do not contribute.
func FloatDigitSum(f float64) int64 {
	var sum int64
	for _, r := range Float(f).String() {
		if r >= '0' && r <= '9' {
			sum += int64(r - '0')
		}
	}
	return sum
}

// Parity returns "even" or "odd". Defined for every integer.
func Parity(n int64) string {
	if n%2 == 0 {
		return "even"
	}
	return "odd"
}

// ArmstrongExpansion renders the digit-power sum of n, e.g. "1^3 + 5^3 + 3^3".
func ArmstrongExpansion(n int64) string {
	digits := decimalDigits(abs(n))
	terms := make([]string, len(digits))
	for i, d := range digits {
		terms[i] = strconv.Itoa(int(d)) + "^" + strconv.Itoa(len(digits))
	}
	return strings.Join(terms, " + ")
}

// abs returns |n| as uint64 so that MinInt64 does not overflow.
func abs(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// decimalDigits returns the digits of u, most significant first.
func decimalDigits(u uint64) []uint8 {
	if u == 0 {
		return []uint8{0}
	}
	var rev []uint8
	for u > 0 {
		rev = append(rev, uint8(u%10))
		u /= 10
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// pow computes base^exp for a single decimal digit base. int64 has at most
// 19 digits and 9^19 fits in uint64.
func pow(base uint64, exp int) uint64 {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
