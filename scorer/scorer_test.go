package scorer

import "testing"

func TestScore(t *testing.T) {
	m := Model{Weights: []float64{1, 2, 3}, Bias: 1}
	got := Score(m, []float64{1, 1, 1})
	want := 1 + 2 + 3 - 1.0
	if got != want {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	m := Model{Weights: []float64{1, 2, 3}, Bias: 0}
	if err := m.Validate(3); err != nil {
		t.Errorf("Validate(3) error = %v, want nil", err)
	}
	if err := m.Validate(4); err == nil {
		t.Error("Validate(4) expected error for length mismatch")
	}
}
