package shor

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/san-kum/shorsim/internal/modarith"
	"github.com/san-kum/shorsim/internal/period"
	"github.com/san-kum/shorsim/internal/quantum"
)

// Config controls the retry policy of a Factorizer.
type Config struct {
	// MaxBase bounds the bases tried to a ∈ [2, min(N, MaxBase)).
	MaxBase     int
	MaxAttempts int
	Seed        uint64
	// RegisterA overrides m = 2⌈log₂ N⌉ when positive.
	RegisterA int
	Engine    *quantum.Engine
	Logger    zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		MaxBase:     20,
		MaxAttempts: 5,
		Seed:        42,
		Engine:      quantum.DefaultEngine,
		Logger:      zerolog.Nop(),
	}
}

// AttemptResult is the outcome of one simulated attempt.
type AttemptResult struct {
	Base       int
	Attempt    int
	Seed       uint64
	Y          int
	C          int
	Extraction period.Extraction
	Spectrum   []float64
	Metrics    map[string]float64
}

// Factorization is a successful factoring of N = P·Q.
type Factorization struct {
	N        int
	P, Q     int
	Base     int
	Period   int
	C, Y     int
	Attempts int
	// Classical is set when N was split without simulation.
	Classical bool
	Sizing    Sizing
	// Last is the attempt that produced the factors.
	Last *AttemptResult
}

// Factorizer runs attempts over bases until one yields factors.
type Factorizer struct {
	cfg       Config
	observers []Observer
	metrics   []Metric
}

func New(cfg Config) *Factorizer {
	if cfg.Engine == nil {
		cfg.Engine = quantum.DefaultEngine
	}
	return &Factorizer{
		cfg:       cfg,
		observers: make([]Observer, 0),
		metrics:   make([]Metric, 0),
	}
}

func (f *Factorizer) AddObserver(o Observer) { f.observers = append(f.observers, o) }
func (f *Factorizer) AddMetric(m Metric)     { f.metrics = append(f.metrics, m) }

func (f *Factorizer) Config() Config { return f.cfg }

// AttemptSeed derives the seed of attempt i on base a.
func AttemptSeed(seed uint64, a, i int) uint64 {
	return seed + uint64(a)<<32 + uint64(i)
}

// NewSource returns the PCG source used for a seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

type metricObserver []Metric

func (ms metricObserver) OnStage(snap Snapshot) {
	for _, m := range ms {
		m.Observe(snap)
	}
}

// Attempt runs attempt number i for base a. Extraction failures such as
// NoPeriod are reported in the result, not as errors.
func (f *Factorizer) Attempt(ctx context.Context, N, a, i int) (*AttemptResult, error) {
	sz, err := SizeFor(N, f.cfg.RegisterA)
	if err != nil {
		return nil, err
	}
	seed := AttemptSeed(f.cfg.Seed, a, i)
	return runAttempt(ctx, sz, a, i, seed, f.cfg.Engine, f.observers, f.metrics)
}

func runAttempt(ctx context.Context, sz Sizing, a, i int, seed uint64, e *quantum.Engine, observers []Observer, metrics []Metric) (*AttemptResult, error) {
	run, err := NewRun(RunConfig{
		Modulus:   sz.N,
		Base:      a,
		RegisterA: sz.RegisterA,
		RegisterB: sz.RegisterB,
		Source:    NewSource(seed),
		Engine:    e,
	})
	if err != nil {
		return nil, err
	}

	for _, m := range metrics {
		m.Reset()
	}
	for _, o := range observers {
		run.AddObserver(o)
	}
	if len(metrics) > 0 {
		run.AddObserver(metricObserver(metrics))
	}

	ex, err := run.Finish(ctx)
	if err != nil {
		return nil, err
	}

	res := &AttemptResult{
		Base:       a,
		Attempt:    i,
		Seed:       seed,
		Y:          run.Y(),
		C:          run.C(),
		Extraction: ex,
		Spectrum:   run.Spectrum(),
		Metrics:    make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// Validate rejects moduli that cannot be factored: N < 4 and primes.
func Validate(N int) error {
	if N < 4 {
		return fmt.Errorf("%w: N=%d must be at least 4", quantum.ErrInvalidParameter, N)
	}
	if modarith.IsPrime(N) {
		return fmt.Errorf("%w: N=%d is prime", quantum.ErrInvalidParameter, N)
	}
	return nil
}

// Bases returns the coprime bases a ∈ [2, min(N, maxBase)) in order.
func Bases(N, maxBase int) []int {
	limit := N
	if maxBase > 0 && maxBase < limit {
		limit = maxBase
	}
	bases := make([]int, 0, limit)
	for a := 2; a < limit; a++ {
		if modarith.GCD(a, N) == 1 {
			bases = append(bases, a)
		}
	}
	return bases
}

// Factor finds a nontrivial factor pair of N. Even N is split classically.
func (f *Factorizer) Factor(ctx context.Context, N int) (*Factorization, error) {
	if err := Validate(N); err != nil {
		return nil, err
	}
	log := f.cfg.Logger.With().Int("n", N).Logger()

	if N%2 == 0 {
		log.Info().Msg("even modulus, splitting classically")
		return &Factorization{N: N, P: 2, Q: N / 2, Classical: true}, nil
	}

	sz, err := SizeFor(N, f.cfg.RegisterA)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("m", sz.RegisterA).
		Int("n_b", sz.RegisterB).
		Int("qubits", sz.Total()).
		Msg("starting order finding")

	attempts := 0
	for _, a := range Bases(N, f.cfg.MaxBase) {
		for i := 0; i < f.cfg.MaxAttempts; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			attempts++
			seed := AttemptSeed(f.cfg.Seed, a, i)
			res, err := runAttempt(ctx, sz, a, i, seed, f.cfg.Engine, f.observers, f.metrics)
			if err != nil {
				return nil, fmt.Errorf("base %d attempt %d: %w", a, i, err)
			}

			ex := res.Extraction
			log.Debug().
				Int("a", a).
				Int("attempt", i).
				Int("y", res.Y).
				Int("c", res.C).
				Str("outcome", ex.Outcome.String()).
				Int("period", ex.Period).
				Msg("attempt finished")

			if ex.Outcome != period.Factored {
				continue
			}

			log.Info().
				Int("a", a).
				Int("period", ex.Period).
				Int("p", ex.Factors[0]).
				Int("q", ex.Factors[1]).
				Int("attempts", attempts).
				Msg("factored")
			return &Factorization{
				N:        N,
				P:        ex.Factors[0],
				Q:        ex.Factors[1],
				Base:     a,
				Period:   ex.Period,
				C:        res.C,
				Y:        res.Y,
				Attempts: attempts,
				Sizing:   sz,
				Last:     res,
			}, nil
		}
	}

	log.Warn().Int("attempts", attempts).Msg("no factors found")
	return nil, fmt.Errorf("%w: N=%d after %d attempts", ErrNotFactored, N, attempts)
}
