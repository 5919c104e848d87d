package shor

import (
	"errors"

	"github.com/san-kum/shorsim/internal/quantum"
)

// ErrNotFactored indicates every base and attempt was exhausted without a
// nontrivial factor pair.
var ErrNotFactored = errors.New("shor: no factors found")

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &quantum.OpError{Op: op, Wrapped: err}
}
