package metrics

import "github.com/san-kum/shorsim/internal/shor"

// Support records the largest number of non-negligible amplitudes held by
// the state during an attempt.
type Support struct {
	name string
	max  int
}

func NewSupport() *Support {
	return &Support{name: "support"}
}

func (s *Support) Name() string { return s.name }

func (s *Support) Observe(snap shor.Snapshot) {
	if snap.State == nil {
		return
	}
	if n := snap.State.Support(); n > s.max {
		s.max = n
	}
}

func (s *Support) Value() float64 { return float64(s.max) }

func (s *Support) Reset() { s.max = 0 }
