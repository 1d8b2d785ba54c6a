/*
NAME
  config.go

DESCRIPTION
  config defines the frozen descriptor recipes (BlockSpec, WindowSpec) and
  the detector-wide tuning parameters used by the gradient, descriptor,
  pyramid and nms packages.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config holds the immutable descriptor recipes (BlockSpec,
// WindowSpec) and the tunable parameters of a detection pass (pyramid,
// thresholds, mean-shift bandwidths), following the pattern established by
// github.com/ausocean/av/revid/config: plain exported fields, a Validate
// method that defaults or rejects bad values, and a carried Logger.
package config

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Preprocessor selects the gradient-computation variant of §4.1.
type Preprocessor uint8

const (
	RGBGrad Preprocessor = iota
	RGBSqrtGrad
	RGBLogGrad
	LabGrad
	LabSqrtGrad
)

func (p Preprocessor) String() string {
	switch p {
	case RGBGrad:
		return "RGBGrad"
	case RGBSqrtGrad:
		return "RGBSqrtGrad"
	case RGBLogGrad:
		return "RGBLogGrad"
	case LabGrad:
		return "LabGrad"
	case LabSqrtGrad:
		return "LabSqrtGrad"
	default:
		return "unknown"
	}
}

// Normalizer selects the block-vector normalization scheme of §4.1. Both
// the epsilon-regularized family and the "traditional" conditional-divisor
// family are kept as distinct, explicit values (see the Open Question in
// SPEC_FULL.md §6).
type Normalizer uint8

const (
	NormNone Normalizer = iota
	NormL1
	NormL1Sqrt
	NormL2
	NormL2Hys
	NormL1Trad
	NormL2Trad
	NormL2TradHys
	NormL1TradSqrt
)

func (n Normalizer) String() string {
	switch n {
	case NormNone:
		return "None"
	case NormL1:
		return "L1"
	case NormL1Sqrt:
		return "L1Sqrt"
	case NormL2:
		return "L2"
	case NormL2Hys:
		return "L2Hys"
	case NormL1Trad:
		return "L1-trad"
	case NormL2Trad:
		return "L2-trad"
	case NormL2TradHys:
		return "L2-trad-hys"
	case NormL1TradSqrt:
		return "L1-trad-sqrt"
	default:
		return "unknown"
	}
}

// TransferFunc selects the score-to-weight transform used before
// mean-shift mode-finding, per §4.4.
type TransferFunc uint8

const (
	TransferHardClip TransferFunc = iota
	TransferSigmoid
	TransferSoftClip
	TransferNone
)

// BlockSpec is a frozen descriptor recipe for one family of HOG blocks. It
// is immutable after construction: build a new BlockSpec rather than
// mutating one shared across engines (§3, §5 ownership rules).
type BlockSpec struct {
	CellX, CellY   int // cell size in pixels (Cx, Cy)
	CellsX, CellsY int // cells per block (Nx, Ny)
	StrideX        int // block stride in pixels (Sx)
	StrideY        int // block stride in pixels (Sy)
	Bins           int // orientation bin count B
	SemiCircular   bool
	WeightSigma    float64 // spatial Gaussian weight std; <1e-3 disables
	Normalizer     Normalizer
	Preprocessor   Preprocessor

	// SmoothSigma is the Gaussian smoothing std (σg) applied before
	// differentiation; 0 disables smoothing.
	SmoothSigma float64
}

// BlockExtent returns the pixel footprint (Cx·Nx, Cy·Ny) of one block.
func (b BlockSpec) BlockExtent() (int, int) {
	return b.CellX * b.CellsX, b.CellY * b.CellsY
}

// Length returns the flattened descriptor length Nx·Ny·B.
func (b BlockSpec) Length() int {
	return b.CellsX * b.CellsY * b.Bins
}

// OrientationRange returns 180 for semi-circular orientation, else 360.
func (b BlockSpec) OrientationRange() float64 {
	if b.SemiCircular {
		return 180
	}
	return 360
}

// Validate checks for contradictory BlockSpec parameters, per the
// "Invalid configuration: fail fast at construction" policy of §7.
func (b BlockSpec) Validate() error {
	switch {
	case b.CellX <= 0 || b.CellY <= 0:
		return errors.Errorf("config: cell size must be positive, got (%d, %d)", b.CellX, b.CellY)
	case b.CellsX <= 0 || b.CellsY <= 0:
		return errors.Errorf("config: cells-per-block must be positive, got (%d, %d)", b.CellsX, b.CellsY)
	case b.StrideX <= 0 || b.StrideY <= 0:
		return errors.Errorf("config: block stride must be positive, got (%d, %d)", b.StrideX, b.StrideY)
	case b.Bins <= 0:
		return errors.Errorf("config: orientation bin count must be positive, got %d", b.Bins)
	case b.WeightSigma < 0:
		return errors.Errorf("config: weight sigma must be non-negative, got %f", b.WeightSigma)
	case b.SmoothSigma < 0:
		return errors.Errorf("config: smoothing sigma must be non-negative, got %f", b.SmoothSigma)
	}
	return nil
}

// BlockOffset is a block top-left position within a window, relative to
// the window's own top-left.
type BlockOffset struct{ X, Y int }

// WindowSpec is the detection-window recipe: extent, stride, the ordered
// list of BlockSpecs, and the precomputed block-offset grid for each.
// A WindowSpec owns its BlockSpecs (§9 explicit-ownership design note).
type WindowSpec struct {
	Width, Height   int // Wx, Wy
	StrideX         int // Wsx
	StrideY         int // Wsy
	Blocks          []BlockSpec
	BlockOffsets    [][]BlockOffset // parallel to Blocks
	CacheBudgetMB   float64         // memory budget per BlockSpec cache
}

// Length returns the total WindowDescriptor length: the sum, over blocks,
// of (blocks-per-window × descriptor length).
func (w WindowSpec) Length() int {
	var n int
	for i, b := range w.Blocks {
		n += len(w.BlockOffsets[i]) * b.Length()
	}
	return n
}

// Validate checks the WindowSpec and all of its BlockSpecs, and ensures
// every block offset keeps its block fully inside the window.
func (w WindowSpec) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return errors.Errorf("config: window extent must be positive, got (%d, %d)", w.Width, w.Height)
	}
	if w.StrideX <= 0 || w.StrideY <= 0 {
		return errors.Errorf("config: window stride must be positive, got (%d, %d)", w.StrideX, w.StrideY)
	}
	if len(w.Blocks) == 0 {
		return errors.New("config: window must carry at least one BlockSpec")
	}
	if len(w.BlockOffsets) != len(w.Blocks) {
		return errors.Errorf("config: block-offset grids (%d) must match block count (%d)", len(w.BlockOffsets), len(w.Blocks))
	}
	for i, b := range w.Blocks {
		if err := b.Validate(); err != nil {
			return errors.Wrapf(err, "config: block %d", i)
		}
		bx, by := b.BlockExtent()
		for _, off := range w.BlockOffsets[i] {
			if off.X < 0 || off.Y < 0 || off.X+bx > w.Width || off.Y+by > w.Height {
				return errors.Errorf("config: block %d offset (%d,%d) extends outside window (%d,%d)", i, off.X, off.Y, w.Width, w.Height)
			}
		}
	}
	return nil
}

// NewRegularBlockGrid builds the regular, window-centered grid of block
// top-left offsets for a BlockSpec within a WxH window, honoring the
// block's stride. This is the standard "HOG block grid" construction: as
// many strided positions as fit, centered in any leftover margin.
func NewRegularBlockGrid(b BlockSpec, width, height int) []BlockOffset {
	bx, by := b.BlockExtent()
	if bx > width || by > height {
		return nil
	}
	nx := (width-bx)/b.StrideX + 1
	ny := (height-by)/b.StrideY + 1
	marginX := (width - bx - (nx-1)*b.StrideX) / 2
	marginY := (height - by - (ny-1)*b.StrideY) / 2

	offs := make([]BlockOffset, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			offs = append(offs, BlockOffset{X: marginX + i*b.StrideX, Y: marginY + j*b.StrideY})
		}
	}
	return offs
}

// DetectorConfig carries the pyramid, thresholding and mean-shift
// parameters of one detection pass, plus the Logger every component logs
// diagnostic notes through (see SPEC_FULL.md §2 Logging).
type DetectorConfig struct {
	Window WindowSpec

	// Pyramid parameters, §4.2.
	StartScale float64 // s0, >= 1
	EndScale   float64 // se, optional cap; 0 means unbounded
	Ratio      float64 // r, > 1
	NoPyramid  bool    // if true, only scale 1 is evaluated

	// Border padding parameters, §4.2.
	MarginX, MarginY         float64 // mx, my
	AvgObjWidth, AvgObjHeight float64 // ax, ay

	// Scoring threshold, §4.2 / §4.4 (this is "τ" / "light-threshold").
	ScoreThreshold float64

	// Mean-shift transfer function and its parameters, §4.4.
	Transfer     TransferFunc
	Alpha, Beta  float64

	// Mean-shift bandwidths, §4.4.
	SigmaX, SigmaY, SigmaScale float64

	// Mean-shift convergence, §4.4.
	ModeEpsilon  float64
	MaxModeIters int

	// Final density threshold for emitting a FinalDetection, §4.4.
	DensityThreshold float64

	Logger   logging.Logger
	LogLevel int8
}

const (
	defaultModeEpsilon  = 1e-5
	defaultMaxModeIters = 100
)

// LogInvalidField logs that a field was bad or unset and has been
// defaulted, matching the revid/config.Config.LogInvalidField idiom.
func (c *DetectorConfig) LogInvalidField(name string, def interface{}) {
	if c.Logger == nil {
		return
	}
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// Validate checks DetectorConfig and its WindowSpec, defaulting a small
// number of fields (mean-shift iteration cap and epsilon) rather than
// rejecting them, and fails fast on everything else per §7.
func (c *DetectorConfig) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return errors.Wrap(err, "config: window spec")
	}
	if c.StartScale < 1 {
		return errors.Errorf("config: start scale must be >= 1, got %f", c.StartScale)
	}
	if !c.NoPyramid && c.Ratio <= 1 {
		return errors.Errorf("config: pyramid ratio must be > 1, got %f", c.Ratio)
	}
	if c.SigmaX <= 0 || c.SigmaY <= 0 || c.SigmaScale <= 0 {
		return errors.Errorf("config: mean-shift sigmas must be positive, got (%f, %f, %f)", c.SigmaX, c.SigmaY, c.SigmaScale)
	}
	if c.ModeEpsilon <= 0 {
		c.LogInvalidField("ModeEpsilon", defaultModeEpsilon)
		c.ModeEpsilon = defaultModeEpsilon
	}
	if c.MaxModeIters <= 0 {
		c.LogInvalidField("MaxModeIters", defaultMaxModeIters)
		c.MaxModeIters = defaultMaxModeIters
	}
	return nil
}
