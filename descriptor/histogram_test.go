package descriptor

import (
	"math"
	"testing"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
)

func testSpec() config.BlockSpec {
	return config.BlockSpec{
		CellX: 8, CellY: 8, CellsX: 2, CellsY: 2, StrideX: 8, StrideY: 8,
		Bins: 9, Normalizer: config.NormNone,
	}
}

func TestComputeLengthAndNonNegative(t *testing.T) {
	spec := testSpec()
	field := gradient.NewField(16, 16, false)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			field.Set(x, y, float64((x+y)%5), (x*7+y*3)%360)
		}
	}

	v, err := Compute(field, spec, 0, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(v) != spec.Length() {
		t.Fatalf("len(v) = %d, want %d", len(v), spec.Length())
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("v[%d] = %v, want finite", i, x)
		}
		if x < 0 {
			t.Fatalf("v[%d] = %v, want non-negative", i, x)
		}
	}
}

func TestComputeOutOfBoundsIsError(t *testing.T) {
	spec := testSpec()
	field := gradient.NewField(8, 8, false)
	if _, err := Compute(field, spec, 4, 4); err == nil {
		t.Fatal("expected error for block extending outside field")
	}
}

func TestComputeUniformFieldIsZeroVector(t *testing.T) {
	spec := testSpec()
	field := gradient.NewField(16, 16, false)
	// Leave all magnitudes at their zero default: a uniform-color image
	// has zero gradient everywhere, per §8's round-trip property.
	v, err := Compute(field, spec, 0, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i, x := range v {
		if x != 0 {
			t.Errorf("v[%d] = %v, want 0 for a uniform-color image", i, x)
		}
	}
}

func TestComputeL2NormBounded(t *testing.T) {
	spec := testSpec()
	spec.Normalizer = config.NormL2
	field := gradient.NewField(16, 16, false)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			field.Set(x, y, 10, (x*13+y*7)%360)
		}
	}
	v, err := Compute(field, spec, 0, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm <= 0 || norm > 1+1e-3 {
		t.Errorf("‖v‖₂ = %v, want in (0, 1+1e-3]", norm)
	}
}

func TestComputeL2HysNormBounded(t *testing.T) {
	spec := testSpec()
	spec.Normalizer = config.NormL2Hys
	field := gradient.NewField(16, 16, false)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			field.Set(x, y, 50, (x*11+y*5)%360)
		}
	}
	v, err := Compute(field, spec, 0, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm <= 0 || norm > 1+1e-3 {
		t.Errorf("‖v‖₂ = %v, want in (0, 1+1e-3]", norm)
	}
}
