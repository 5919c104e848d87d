package period

// MaxDepth bounds the number of continued-fraction coefficients.
const MaxDepth = 20

// Convergent is the rational Num/Den approximating c/Q.
type Convergent struct {
	Num int
	Den int
}

// ContinuedFraction returns the coefficients [a0; a1, ...] of num/den by
// repeated Euclidean division, stopping at a zero remainder or MaxDepth.
func ContinuedFraction(num, den int) []int {
	if den == 0 {
		return nil
	}
	coeffs := make([]int, 0, 8)
	for den != 0 && len(coeffs) < MaxDepth {
		coeffs = append(coeffs, num/den)
		num, den = den, num%den
	}
	return coeffs
}

// Convergents returns the successive convergents of coeffs using
// p_k = a_k·p_{k-1} + p_{k-2}, q_k = a_k·q_{k-1} + q_{k-2} seeded with
// p_{-2}=0, p_{-1}=1, q_{-2}=1, q_{-1}=0.
func Convergents(coeffs []int) []Convergent {
	out := make([]Convergent, 0, len(coeffs))
	pPrev2, pPrev1 := 0, 1
	qPrev2, qPrev1 := 1, 0
	for _, a := range coeffs {
		p := a*pPrev1 + pPrev2
		q := a*qPrev1 + qPrev2
		out = append(out, Convergent{Num: p, Den: q})
		pPrev2, pPrev1 = pPrev1, p
		qPrev2, qPrev1 = qPrev1, q
	}
	return out
}

// Evaluate returns the value of the continued fraction as a float.
func Evaluate(coeffs []int) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	v := float64(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		v = float64(coeffs[i]) + 1/v
	}
	return v
}
