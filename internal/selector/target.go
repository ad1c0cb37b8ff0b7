package selector

import (
	"fmt"

	"overmind/internal/outcome"
)

// Target builds the training response for one network: every entry is
// 1-label, then the chosen entry is set to label.
func Target(options, chosen int, label outcome.Label) ([]float64, error) {
	if options <= 0 {
		return nil, fmt.Errorf("target size must be positive, got=%d", options)
	}
	if chosen < 0 || chosen >= options {
		return nil, fmt.Errorf("chosen option out of range: chosen=%d options=%d", chosen, options)
	}
	value := label.Float()
	out := make([]float64, options)
	for i := range out {
		out[i] = 1 - value
	}
	out[chosen] = value
	return out, nil
}
