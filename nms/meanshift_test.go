package nms

import (
	"testing"

	"github.com/ausocean/hogdetect/config"
)

func testConfig() *config.DetectorConfig {
	return &config.DetectorConfig{
		Transfer:         config.TransferNone,
		SigmaX:           8,
		SigmaY:           16,
		SigmaScale:       0.3,
		ModeEpsilon:      1e-5,
		MaxModeIters:     100,
		DensityThreshold: 0.01,
	}
}

func TestFindEmptyInputYieldsNoDetections(t *testing.T) {
	if got := Find(nil, testConfig()); got != nil {
		t.Errorf("Find(nil) = %v, want nil", got)
	}
}

func TestFindMergesTwins(t *testing.T) {
	raw := []RawDetection{
		{Score: 2.0, Scale: 1, X: 100, Y: 100, Width: 64, Height: 128},
		{Score: 2.0, Scale: 1, X: 104, Y: 100, Width: 64, Height: 128},
	}
	c := testConfig()
	got := Find(raw, c)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	cx := got[0].X + got[0].Width/2
	if cx < 100 || cx > 104+64 {
		t.Errorf("merged mode center x = %d, want roughly within [100, 168]", cx)
	}
}

func TestFindSeparatesIsolatedPair(t *testing.T) {
	raw := []RawDetection{
		{Score: 2.0, Scale: 1, X: 100, Y: 100, Width: 64, Height: 128},
		{Score: 2.0, Scale: 1, X: 400, Y: 100, Width: 64, Height: 128},
	}
	c := testConfig()
	got := Find(raw, c)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}

func TestFindSuppressesBelowDensityThreshold(t *testing.T) {
	raw := []RawDetection{
		{Score: 0.001, Scale: 1, X: 100, Y: 100, Width: 64, Height: 128},
	}
	c := testConfig()
	c.DensityThreshold = 1e6 // unreachably high
	if got := Find(raw, c); len(got) != 0 {
		t.Errorf("len(got) = %d, want 0 below an unreachable density threshold", len(got))
	}
}

func TestTransferFunctions(t *testing.T) {
	tests := []struct {
		name  string
		fn    config.TransferFunc
		w     float64
		alpha float64
		beta  float64
		tau   float64
	}{
		{"hardclip below tau", config.TransferHardClip, 0, 1, 0, 1},
		{"hardclip above tau", config.TransferHardClip, 2, 1, 0, 1},
		{"sigmoid", config.TransferSigmoid, 0.5, 1, 0, 0},
		{"softclip", config.TransferSoftClip, 0.5, 1, 0, 0},
		{"none", config.TransferNone, 0.5, 0, 0, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := transferWeight(test.fn, test.w, test.alpha, test.beta, test.tau)
			if test.name == "hardclip below tau" && got != 0 {
				t.Errorf("hardclip(w<tau) = %v, want 0", got)
			}
			if test.name == "hardclip above tau" && got <= 0 {
				t.Errorf("hardclip(w>tau) = %v, want > 0", got)
			}
			if test.name == "none" && got != test.w {
				t.Errorf("none transform = %v, want %v", got, test.w)
			}
		})
	}
}
