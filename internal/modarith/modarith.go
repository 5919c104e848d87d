// Package modarith implements the small integer number theory shared by the
// oracle, period extraction and the driver.
package modarith

import "math/bits"

// GCD returns the greatest common divisor of |a| and |b|; GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MulMod returns a*b mod m for 0 <= a, b < m without overflow.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// ModPow returns base^exp mod m by square-and-multiply. m must be positive
// and exp non-negative.
func ModPow(base, exp, m int) int {
	if m == 1 {
		return 0
	}
	mod := uint64(m)
	b := uint64(((base % m) + m) % m)
	result := uint64(1)
	for e := uint64(exp); e > 0; e >>= 1 {
		if e&1 == 1 {
			result = MulMod(result, b, mod)
		}
		b = MulMod(b, b, mod)
	}
	return int(result)
}

// IsPrime reports whether n is prime by trial division.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// CeilLog2 returns the number of bits needed to hold values in [0, n).
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
