package modelfile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/hogdetect/scorer"
)

func TestLoadValid(t *testing.T) {
	src := "V6.01\n200\n0\n3\n1.5\n1 2 3 0\n"
	m, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := scorer.Model{Weights: []float64{1, 2, 3}, Bias: 1.5}
	if !cmp.Equal(m, want) {
		t.Errorf("Load() = %+v, want %+v", m, want)
	}
}

func TestLoadRejectsWrongVersionString(t *testing.T) {
	src := "V5.99\n200\n0\n1\n0\n1 0\n"
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Error("expected error for wrong version string")
	}
}

func TestLoadRejectsOldVersion(t *testing.T) {
	src := "V6.01\n100\n0\n1\n0\n1 0\n"
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Error("expected error for version below minimum")
	}
}

func TestLoadRejectsNonLinearKernel(t *testing.T) {
	src := "V6.01\n200\n1\n1\n0\n1 0\n"
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Error("expected error for non-linear kernel type")
	}
}

func TestLoadRejectsWeightLengthMismatch(t *testing.T) {
	src := "V6.01\n200\n0\n3\n0\n1 2 0\n"
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Error("expected error for weight vector length mismatch")
	}
}
