package shor_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
	"github.com/san-kum/shorsim/internal/shor"
)

var _ = Describe("order finding for N=15", func() {
	const (
		N = 15
		a = 7
	)

	var sz shor.Sizing

	BeforeEach(func() {
		var err error
		sz, err = shor.SizeFor(N, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("sizes the registers from N", func() {
		Expect(sz.RegisterA).To(Equal(8))
		Expect(sz.RegisterB).To(Equal(4))
		Expect(sz.Domain()).To(Equal(256))
	})

	It("keeps every intermediate state normalized", func() {
		m, n := sz.RegisterA, sz.RegisterB
		src := shor.NewSource(11)

		s, err := shor.Initialize(m, n)
		Expect(err).NotTo(HaveOccurred())

		s, err = shor.ApplySuperposition(s, m, n)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.TotalProbability()).To(BeNumerically("~", 1, 1e-9))

		s, err = shor.ApplyOracle(s, a, N, m, n)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.TotalProbability()).To(BeNumerically("~", 1, 1e-9))

		s, y, err := shor.MeasureRegisterB(s, m, n, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(BeElementOf(1, 4, 7, 13))
		Expect(s.TotalProbability()).To(BeNumerically("~", 1, 1e-9))

		s, err = shor.QFT(s, m)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.TotalProbability()).To(BeNumerically("~", 1, 1e-9))

		c, s, err := shor.MeasureRegisterA(s, m, n, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(c % 64).To(Equal(0))
		Expect(s.IsNormalized()).To(BeTrue())
	})

	It("recovers factors whose product is N", func() {
		f := shor.New(shor.DefaultConfig())

		var found *shor.AttemptResult
		for i := 0; i < 20 && found == nil; i++ {
			res, err := f.Attempt(context.Background(), N, a, i)
			Expect(err).NotTo(HaveOccurred())
			if res.Extraction.Outcome == period.Factored {
				found = res
			}
		}

		Expect(found).NotTo(BeNil())
		Expect(found.Extraction.Period).To(Equal(4))
		Expect(found.Extraction.Factors[0] * found.Extraction.Factors[1]).To(Equal(N))
	})

	It("rejects a base sharing a factor with N", func() {
		s, err := shor.Initialize(sz.RegisterA, sz.RegisterB)
		Expect(err).NotTo(HaveOccurred())

		_, err = shor.ApplyOracle(s, 3, N, sz.RegisterA, sz.RegisterB)
		Expect(err).To(MatchError(quantum.ErrInvalidParameter))
	})
})

var _ = Describe("Factorizer", func() {
	DescribeTable("factors small semiprimes",
		func(n int) {
			res, err := shor.New(shor.DefaultConfig()).Factor(context.Background(), n)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.P * res.Q).To(Equal(n))
			Expect(res.P).To(BeNumerically(">", 1))
			Expect(res.Q).To(BeNumerically(">", 1))
		},
		Entry("15", 15),
		Entry("21", 21),
		Entry("even", 10),
	)
})
