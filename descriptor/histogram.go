/*
NAME
  histogram.go

DESCRIPTION
  histogram.go computes a single BlockDescriptor from a gradient field via
  tri-linearly-interpolated orientation histogramming (§4.1). The
  histogram has Nx·Ny·B cells (the BlockSpec.Length() invariant of §3 and
  the universal invariant of §8); spatial interpolation is not circular
  and drops out-of-range weight, orientation interpolation is circular and
  wraps.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import (
	"math"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/pkg/errors"
)

// Compute extracts the block at top-left (x0, y0) from field and returns
// its BlockDescriptor, after optional Gaussian spatial weighting,
// tri-linear histogram accumulation, and normalization.
//
// Requesting a block that does not fit entirely inside field is an
// implementation bug in the caller (the sliding-window driver must never
// do this, per §4.1's Failure semantics); Compute reports it as an error
// rather than panicking, so callers can choose how to treat a violated
// internal invariant.
func Compute(field *gradient.Field, spec config.BlockSpec, x0, y0 int) (Vector, error) {
	bx, by := spec.BlockExtent()
	if x0 < 0 || y0 < 0 || x0+bx > field.Width || y0+by > field.Height {
		return nil, errors.Errorf("descriptor: block at (%d,%d) extent (%d,%d) outside field (%d,%d)", x0, y0, bx, by, field.Width, field.Height)
	}

	weights := spatialWeight(spec, bx, by)

	hist := make(Vector, spec.Length())
	oriRange := spec.OrientationRange()
	binWidth := oriRange / float64(spec.Bins)
	cellWidth := float64(spec.CellX)
	cellHeight := float64(spec.CellY)

	for py := 0; py < by; py++ {
		for px := 0; px < bx; px++ {
			mag, ori := field.At(x0+px, y0+py)
			if weights != nil {
				mag *= weights[py*bx+px]
			}
			if mag == 0 {
				continue
			}
			voteTrilinear(hist, spec, mag, float64(ori), binWidth, cellWidth, cellHeight, float64(px), float64(py))
		}
	}

	return applyNormalizer(hist, spec.Normalizer), nil
}

// spatialWeight returns the centered 2-D Gaussian weight window with
// std = block-extent/(2σw), or nil when σw < 1e-3 (disabled), per §4.1
// step 2.
func spatialWeight(spec config.BlockSpec, bx, by int) []float64 {
	if spec.WeightSigma < 1e-3 {
		return nil
	}
	sigmaX := float64(bx) / (2 * spec.WeightSigma)
	sigmaY := float64(by) / (2 * spec.WeightSigma)
	cx := float64(bx-1) / 2
	cy := float64(by-1) / 2

	w := make([]float64, bx*by)
	for y := 0; y < by; y++ {
		dy := (float64(y) - cy) / sigmaY
		for x := 0; x < bx; x++ {
			dx := (float64(x) - cx) / sigmaX
			w[y*bx+x] = math.Exp(-0.5 * (dx*dx + dy*dy))
		}
	}
	return w
}

// voteTrilinear spreads one pixel's (magnitude, orientation) vote across
// up to 8 neighboring (cellX, cellY, bin) histogram entries using
// tri-linear interpolation on the continuous coordinate
// (px + 0.5, py + 0.5, ori), per §4.1 step 3. Spatial axes are not
// circular: a neighbor outside [0, CellsX) / [0, CellsY) contributes
// nothing. The orientation axis is circular and wraps mod Bins.
func voteTrilinear(hist Vector, spec config.BlockSpec, mag, ori, binWidth, cellWidth, cellHeight, px, py float64) {
	cx := (px+0.5)/cellWidth - 0.5
	cy := (py+0.5)/cellHeight - 0.5
	ob := ori/binWidth - 0.5

	cx0, cx1 := int(math.Floor(cx)), int(math.Floor(cx))+1
	cy0, cy1 := int(math.Floor(cy)), int(math.Floor(cy))+1
	ob0 := int(math.Floor(ob))
	ob1 := ob0 + 1

	fx := cx - float64(cx0)
	fy := cy - float64(cy0)
	fo := ob - float64(ob0)

	for _, cxp := range []struct {
		idx    int
		weight float64
	}{{cx0, 1 - fx}, {cx1, fx}} {
		if cxp.idx < 0 || cxp.idx >= spec.CellsX {
			continue
		}
		for _, cyp := range []struct {
			idx    int
			weight float64
		}{{cy0, 1 - fy}, {cy1, fy}} {
			if cyp.idx < 0 || cyp.idx >= spec.CellsY {
				continue
			}
			for _, obp := range []struct {
				idx    int
				weight float64
			}{{ob0, 1 - fo}, {ob1, fo}} {
				bin := ((obp.idx % spec.Bins) + spec.Bins) % spec.Bins
				w := cxp.weight * cyp.weight * obp.weight
				if w == 0 {
					continue
				}
				i := (cyp.idx*spec.CellsX+cxp.idx)*spec.Bins + bin
				hist[i] += mag * w
			}
		}
	}
}
