package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/shorsim/internal/shor"
)

var registry = map[string]func() shor.Metric{
	"norm_drift":  func() shor.Metric { return NewNormDrift() },
	"support":     func() shor.Metric { return NewSupport() },
	"qft_entropy": func() shor.Metric { return NewEntropy() },
}

// New returns a fresh metric by name.
func New(name string) (shor.Metric, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Names lists the registered metrics in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a fresh instance of every registered metric.
func Default() []shor.Metric {
	out := make([]shor.Metric, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name]())
	}
	return out
}
