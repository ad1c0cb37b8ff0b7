package nn

import (
	"math"
	"testing"
)

func TestOneHot(t *testing.T) {
	got, err := OneHot(4, 2)
	if err != nil {
		t.Fatalf("one-hot failed: %v", err)
	}
	want := []float64{0, 0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected one-hot at %d: got=%v want=%v", i, got, want)
		}
	}
	if _, err := OneHot(4, 4); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := OneHot(0, 0); err == nil {
		t.Fatal("expected size error")
	}
}

func TestConcatCopiesParts(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{3}
	out := Concat(a, nil, b)
	if len(out) != 3 || out[0] != 1 || out[2] != 3 {
		t.Fatalf("unexpected concat: %v", out)
	}
	out[0] = 9
	if a[0] != 1 {
		t.Fatal("concat aliased its input")
	}
}

func TestArgmaxFirstIndexWinsTies(t *testing.T) {
	idx, err := Argmax([]float64{0.2, 0.7, 0.7, 0.1})
	if err != nil {
		t.Fatalf("argmax failed: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected first max index 1, got=%d", idx)
	}
	if _, err := Argmax(nil); err == nil {
		t.Fatal("expected empty error")
	}
	if _, err := Argmax([]float64{math.NaN()}); err == nil {
		t.Fatal("expected all-NaN error")
	}
	idx, err = Argmax([]float64{math.NaN(), -3, -1})
	if err != nil || idx != 2 {
		t.Fatalf("expected NaN to be skipped, got idx=%d err=%v", idx, err)
	}
}

func TestArgmaxIsScaleInvariant(t *testing.T) {
	scores := []float64{-0.4, 1.3, 0.2, 1.29, -2}
	base, err := Argmax(scores)
	if err != nil {
		t.Fatalf("argmax failed: %v", err)
	}
	for _, factor := range []float64{1e-6, 0.5, 3, 1e6} {
		scaled := make([]float64, len(scores))
		for i, s := range scores {
			scaled[i] = s * factor
		}
		got, err := Argmax(scaled)
		if err != nil {
			t.Fatalf("argmax failed: %v", err)
		}
		if got != base {
			t.Fatalf("argmax changed under scaling by %g: got=%d want=%d", factor, got, base)
		}
	}
}

func TestDivide(t *testing.T) {
	out := Divide([]float64{200, 100, 0}, 200)
	if out[0] != 1 || out[1] != 0.5 || out[2] != 0 {
		t.Fatalf("unexpected divide: %v", out)
	}
}

func TestAvgAndStd(t *testing.T) {
	avg, err := Avg([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("avg failed: %v", err)
	}
	if math.Abs(avg-2) > 1e-12 {
		t.Fatalf("unexpected avg: %f", avg)
	}
	std, err := Std([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("std failed: %v", err)
	}
	if math.Abs(std-math.Sqrt(2.0/3.0)) > 1e-12 {
		t.Fatalf("unexpected std: %f", std)
	}
	if _, err := Avg(nil); err == nil {
		t.Fatal("expected avg empty error")
	}
}
