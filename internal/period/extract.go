package period

import (
	"fmt"

	"github.com/san-kum/shorsim/internal/modarith"
)

// Outcome classifies the result of an extraction.
type Outcome int

const (
	// NoPeriod means no convergent denominator was a valid period.
	NoPeriod Outcome = iota
	// OddPeriod means a period was found but it is odd.
	OddPeriod
	// TrivialFactors means the period is even but both gcds are 1 or N.
	TrivialFactors
	// Factored means a nontrivial factor pair was recovered.
	Factored
)

func (o Outcome) String() string {
	switch o {
	case NoPeriod:
		return "no-period"
	case OddPeriod:
		return "odd-period"
	case TrivialFactors:
		return "trivial-factors"
	case Factored:
		return "factored"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Extraction records every intermediate of one classical post-processing run.
type Extraction struct {
	Outcome      Outcome
	C, Q         int
	Modulus      int
	Base         int
	Coefficients []int
	Convergents  []Convergent
	Period       int
	Factors      [2]int
}

// Found reports whether a valid period was accepted.
func (e Extraction) Found() bool { return e.Period > 0 }

// VerifyPeriod reports whether 0 < r < N and a^r ≡ 1 (mod N).
func VerifyPeriod(a, r, N int) bool {
	if r <= 0 || r >= N {
		return false
	}
	return modarith.ModPow(a, r, N) == 1
}

// FindPeriod scans the convergents of c/Q in order and returns the first
// denominator that verifies as the period of a modulo N.
func FindPeriod(c, Q, N, a int) (int, bool) {
	for _, cv := range Convergents(ContinuedFraction(c, Q)) {
		if VerifyPeriod(a, cv.Den, N) {
			return cv.Den, true
		}
	}
	return 0, false
}

// FindFactorsFromPeriod splits N using an even period r of a: with
// x = a^(r/2) mod N it tries gcd(x-1, N) and then gcd(x+1, N), returning
// (g, N/g) for the first g in (1, N).
func FindFactorsFromPeriod(N, a, r int) (int, int, bool) {
	if r <= 0 || r%2 != 0 || N < 2 {
		return 0, 0, false
	}
	if modarith.ModPow(a, r, N) != 1 {
		return 0, 0, false
	}

	x := modarith.ModPow(a, r/2, N)
	for _, g := range []int{modarith.GCD(x-1, N), modarith.GCD(x+1, N)} {
		if g > 1 && g < N {
			return g, N / g, true
		}
	}
	return 0, 0, false
}

// Extract runs the full classical post-processing of measurement c over a
// register of Q = 2^m values.
func Extract(c, Q, N, a int) (Extraction, error) {
	if N < 2 {
		return Extraction{}, fmt.Errorf("%w: modulus %d", ErrInvalidParameter, N)
	}
	if Q <= 0 {
		return Extraction{}, fmt.Errorf("%w: domain size %d", ErrInvalidParameter, Q)
	}
	if c < 0 || c >= Q {
		return Extraction{}, fmt.Errorf("%w: measurement %d outside [0, %d)", ErrInvalidParameter, c, Q)
	}
	if a <= 1 || a >= N {
		return Extraction{}, fmt.Errorf("%w: base %d outside (1, %d)", ErrInvalidParameter, a, N)
	}
	if g := modarith.GCD(a, N); g != 1 {
		return Extraction{}, fmt.Errorf("%w: gcd(%d, %d) = %d", ErrInvalidParameter, a, N, g)
	}

	ex := Extraction{C: c, Q: Q, Modulus: N, Base: a, Outcome: NoPeriod}
	ex.Coefficients = ContinuedFraction(c, Q)
	ex.Convergents = Convergents(ex.Coefficients)

	for _, cv := range ex.Convergents {
		if VerifyPeriod(a, cv.Den, N) {
			ex.Period = cv.Den
			break
		}
	}

	switch {
	case ex.Period == 0:
		ex.Outcome = NoPeriod
	case ex.Period%2 != 0:
		ex.Outcome = OddPeriod
	default:
		p, q, ok := FindFactorsFromPeriod(N, a, ex.Period)
		if ok {
			ex.Outcome = Factored
			ex.Factors = [2]int{p, q}
		} else {
			ex.Outcome = TrivialFactors
		}
	}
	return ex, nil
}
