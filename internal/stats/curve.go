package stats

import (
	"overmind/internal/model"
	"overmind/internal/nn"
)

// AverageCurve averages the i-th sample of every list that still has one.
// Shorter games simply stop contributing, so late points average over fewer
// games. Point i is placed at startTick + i*step.
func AverageCurve(lists [][]float64, startTick, step int) []model.CurvePoint {
	if step <= 0 {
		step = 100
	}
	if startTick < 0 {
		startTick = 0
	}
	points := make([]model.CurvePoint, 0, 128)
	for i := 0; ; i++ {
		values := make([]float64, 0, len(lists))
		for _, list := range lists {
			if i < len(list) {
				values = append(values, list[i])
			}
		}
		if len(values) == 0 {
			break
		}
		avg, _ := nn.Avg(values)
		points = append(points, model.CurvePoint{Tick: startTick + i*step, Value: avg})
	}
	return points
}

// CurveSpread is the per-point population standard deviation matching
// AverageCurve.
func CurveSpread(lists [][]float64) []float64 {
	out := make([]float64, 0, 128)
	for i := 0; ; i++ {
		values := make([]float64, 0, len(lists))
		for _, list := range lists {
			if i < len(list) {
				values = append(values, list[i])
			}
		}
		if len(values) == 0 {
			return out
		}
		std, _ := nn.Std(values)
		out = append(out, std)
	}
}

func fitnessValues(samples []model.FitnessSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Fitness
	}
	return out
}
