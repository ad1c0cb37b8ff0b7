// Package outcome turns consecutive fitness values into the binary
// correctness label the selector networks train on.
package outcome

// Threshold is the percent change at or below which a window counts as a
// regression.
const Threshold = -10.0

type Label int

const (
	Incorrect Label = 0
	Correct   Label = 1
)

func (l Label) Float() float64 {
	return float64(l)
}

func (l Label) String() string {
	if l == Correct {
		return "correct"
	}
	return "incorrect"
}

// PercentChange is the relative change from previous to current in percent.
// A zero previous value yields the raw difference.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return current - previous
	}
	return (current - previous) / previous * 100
}

func Evaluate(current, previous float64) Label {
	if PercentChange(current, previous) <= Threshold {
		return Incorrect
	}
	return Correct
}

// Tracker holds the previous fitness between windows. The zero value starts
// from a previous fitness of 0.
type Tracker struct {
	previous float64
	seen     int
}

func (t *Tracker) Observe(current float64) (Label, float64) {
	change := PercentChange(current, t.previous)
	label := Correct
	if change <= Threshold {
		label = Incorrect
	}
	t.previous = current
	t.seen++
	return label, change
}

func (t *Tracker) Previous() float64 {
	return t.previous
}

// Windows counts observations since the last reset.
func (t *Tracker) Windows() int {
	return t.seen
}

func (t *Tracker) Reset() {
	t.previous = 0
	t.seen = 0
}
