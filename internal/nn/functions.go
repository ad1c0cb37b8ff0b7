package nn

import (
	"fmt"
	"math"
)

// OneHot encodes index as a vector of size n with a single 1.
func OneHot(n, index int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("one-hot size must be positive, got=%d", n)
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("one-hot index out of range: index=%d size=%d", index, n)
	}
	out := make([]float64, n)
	out[index] = 1
	return out, nil
}

// Concat joins vectors into a fresh slice.
func Concat(parts ...[]float64) []float64 {
	size := 0
	for _, part := range parts {
		size += len(part)
	}
	out := make([]float64, 0, size)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

// Argmax returns the index of the largest value; the first index wins ties.
// NaN entries never win.
func Argmax(values []float64) (int, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("values must not be empty")
	}
	best := -1
	for i, value := range values {
		if math.IsNaN(value) {
			continue
		}
		if best < 0 || value > values[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("values are all NaN")
	}
	return best, nil
}

// Divide scales every value by 1/divisor.
func Divide(values []float64, divisor float64) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		out[i] = value / divisor
	}
	return out
}

// Avg returns the arithmetic mean of values.
func Avg(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("values must not be empty")
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values)), nil
}

// Std returns population standard deviation.
func Std(values []float64) (float64, error) {
	mean, err := Avg(values)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, value := range values {
		diff := mean - value
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values))), nil
}
