package stats

import (
	"math"
	"testing"
)

func TestAverageCurve(t *testing.T) {
	lists := [][]float64{
		{1, 2, 3},
		{2, 4},
		{3},
	}
	points := AverageCurve(lists, 0, 100)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d (%+v)", len(points), points)
	}
	if points[0].Tick != 0 || points[1].Tick != 100 || points[2].Tick != 200 {
		t.Fatalf("unexpected ticks: %+v", points)
	}
	if points[0].Value != 2 || points[1].Value != 3 || points[2].Value != 3 {
		t.Fatalf("unexpected averages: %+v", points)
	}
}

func TestAverageCurveEmpty(t *testing.T) {
	if points := AverageCurve(nil, 0, 100); len(points) != 0 {
		t.Fatalf("expected no points, got %+v", points)
	}
	if points := AverageCurve([][]float64{{}, {}}, 0, 0); len(points) != 0 {
		t.Fatalf("expected no points, got %+v", points)
	}
}

func TestCurveSpread(t *testing.T) {
	spread := CurveSpread([][]float64{{1, 5}, {3}})
	if len(spread) != 2 {
		t.Fatalf("expected 2 spread values, got %+v", spread)
	}
	if math.Abs(spread[0]-1) > 1e-12 || spread[1] != 0 {
		t.Fatalf("unexpected spread: %+v", spread)
	}
}
