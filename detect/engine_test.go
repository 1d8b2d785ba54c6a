package detect

import (
	"testing"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/ausocean/hogdetect/scorer"
)

func smallWindowSpec() config.WindowSpec {
	b := config.BlockSpec{
		CellX: 8, CellY: 8, CellsX: 2, CellsY: 2, StrideX: 8, StrideY: 8,
		Bins: 9, Normalizer: config.NormL2Hys, Preprocessor: config.RGBGrad,
	}
	return config.WindowSpec{
		Width: 16, Height: 16, StrideX: 8, StrideY: 8,
		Blocks:        []config.BlockSpec{b},
		BlockOffsets:  [][]config.BlockOffset{config.NewRegularBlockGrid(b, 16, 16)},
		CacheBudgetMB: 1,
	}
}

func TestNewEngineRejectsMismatchedModelLength(t *testing.T) {
	window := smallWindowSpec()
	cfg := &config.DetectorConfig{
		Window: window, StartScale: 1, Ratio: 1.05,
		SigmaX: 8, SigmaY: 16, SigmaScale: 0.3,
	}
	model := scorer.Model{Weights: make([]float64, window.Length()+1)}
	if _, err := NewEngine(cfg, model); err == nil {
		t.Fatal("expected error for mismatched model/window descriptor length")
	}
}

func TestNewEngineAcceptsMatchingModel(t *testing.T) {
	window := smallWindowSpec()
	cfg := &config.DetectorConfig{
		Window: window, StartScale: 1, Ratio: 1.05,
		SigmaX: 8, SigmaY: 16, SigmaScale: 0.3,
	}
	model := scorer.Model{Weights: make([]float64, window.Length())}
	if _, err := NewEngine(cfg, model); err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
}

// TestDetectEmptySceneYieldsNoDetections exercises scenario 1 of §8: a
// uniform-color image produces zero FinalDetections regardless of model
// weights, since every window's descriptor is the zero vector and a
// reasonable bias keeps the score at or below threshold. This requires a
// working gocv/OpenCV runtime to execute.
func TestDetectEmptySceneYieldsNoDetections(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a gocv/OpenCV runtime")
	}
	window := smallWindowSpec()
	cfg := &config.DetectorConfig{
		Window: window, StartScale: 1, Ratio: 1.05, NoPyramid: true,
		SigmaX: 8, SigmaY: 16, SigmaScale: 0.3, ScoreThreshold: 0,
		DensityThreshold: 0.01,
	}
	model := scorer.Model{Weights: make([]float64, window.Length()), Bias: 1}
	for i := range model.Weights {
		model.Weights[i] = 1
	}

	e, err := NewEngine(cfg, model)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	pix := make([]byte, 16*16*3)
	for i := range pix {
		pix[i] = 128
	}
	img := gradient.Image{Pix: pix, Width: 16, Height: 16}

	got, err := e.Detect(img)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Detect() on a uniform image = %v, want no detections", got)
	}
}
