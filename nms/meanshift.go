/*
NAME
  meanshift.go

DESCRIPTION
  meanshift.go implements the scale-space mean-shift mode-finding NMS of
  spec.md §4.4: each RawDetection becomes a weighted point in 3-D
  (cx, cy, log s) scale-space, an anisotropic Gaussian kernel with a
  per-point, scale-dependent bandwidth is mean-shifted to convergence from
  every point, converged points within one bandwidth unit are merged into
  a mode, and modes above a density threshold are emitted as
  FinalDetections.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nms

import (
	"math"

	"github.com/ausocean/hogdetect/config"
)

// point3 is a point in scale-space: (cx, cy, log s).
type point3 struct{ X, Y, Z float64 }

// weighted is one input point with its transfer-function weight.
type weighted struct {
	p point3
	q float64
}

// bandwidth returns the per-point anisotropic std (σx·e^z, σy·e^z, σs)
// for a point at log-scale z, per §4.4: "the spatial std is
// scale-dependent".
func bandwidth(c *config.DetectorConfig, z float64) point3 {
	ez := math.Exp(z)
	return point3{X: c.SigmaX * ez, Y: c.SigmaY * ez, Z: c.SigmaScale}
}

// kernel evaluates the unnormalized anisotropic Gaussian φ(p; r, σ).
func kernel(p, r, sigma point3) float64 {
	dx := (r.X - p.X) / sigma.X
	dy := (r.Y - p.Y) / sigma.Y
	dz := (r.Z - p.Z) / sigma.Z
	return math.Exp(-0.5 * (dx*dx + dy*dy + dz*dz))
}

// localDistSq returns the squared distance between a and b under the
// bandwidth metric sigma: Σ_d ((a_d - b_d)/σ_d)^2.
func localDistSq(a, b, sigma point3) float64 {
	dx := (a.X - b.X) / sigma.X
	dy := (a.Y - b.Y) / sigma.Y
	dz := (a.Z - b.Z) / sigma.Z
	return dx*dx + dy*dy + dz*dz
}

// shift performs one mean-shift update from r, per §4.4's update rule:
//
//	r' = Σ_i q_i·φ(p_i;r,σ(p_i))·p_i/σ(p_i) / Σ_i q_i·φ(p_i;r,σ(p_i))/σ(p_i)
//
// where numerator and divisor both carry a per-dimension
// reciprocal-bandwidth factor because bandwidths are point-dependent, so
// r' is a weighted mean of the input points.
func shift(points []weighted, r point3, c *config.DetectorConfig) point3 {
	var numX, numY, numZ float64
	var denX, denY, denZ float64
	for _, wp := range points {
		sigma := bandwidth(c, wp.p.Z)
		phi := kernel(wp.p, r, sigma)
		wq := wp.q * phi
		if wq == 0 {
			continue
		}
		numX += wq * wp.p.X / sigma.X
		numY += wq * wp.p.Y / sigma.Y
		numZ += wq * wp.p.Z / sigma.Z
		denX += wq / sigma.X
		denY += wq / sigma.Y
		denZ += wq / sigma.Z
	}
	if denX == 0 || denY == 0 || denZ == 0 {
		return r
	}
	return point3{X: numX / denX, Y: numY / denY, Z: numZ / denZ}
}

// density returns the φ-sum at point m over all input points, i.e. the
// kernel density estimate at m.
func density(points []weighted, m point3, c *config.DetectorConfig) float64 {
	var d float64
	for _, wp := range points {
		sigma := bandwidth(c, wp.p.Z)
		d += wp.q * kernel(wp.p, m, sigma)
	}
	return d
}

// converge mean-shifts from start until the squared update, measured
// under the current point's local bandwidth metric, falls below c.ModeEpsilon, or
// c.MaxModeIters iterations elapse (the cap is part of the contract, not
// a workaround, per §9).
func converge(points []weighted, start point3, c *config.DetectorConfig) point3 {
	r := start
	for i := 0; i < c.MaxModeIters; i++ {
		sigma := bandwidth(c, r.Z)
		next := shift(points, r, c)
		if localDistSq(next, r, sigma) < c.ModeEpsilon {
			return next
		}
		r = next
	}
	return r
}

// Find runs mean-shift mode-finding over raw, per spec.md §4.4, and
// returns the FinalDetections whose density exceeds c.DensityThreshold.
// Zero raw detections yields zero final detections. Degenerate clusters
// (near-zero total weight) are silently suppressed.
func Find(raw []RawDetection, c *config.DetectorConfig) []FinalDetection {
	if len(raw) == 0 {
		return nil
	}

	points := make([]weighted, len(raw))
	for i, d := range raw {
		cx := float64(d.X) + float64(d.Width)/2
		cy := float64(d.Y) + float64(d.Height)/2
		z := math.Log(d.Scale)
		q := transferWeight(c.Transfer, d.Score, c.Alpha, c.Beta, c.ScoreThreshold)
		points[i] = weighted{p: point3{X: cx, Y: cy, Z: z}, q: q}
	}

	var modes []point3
	var modeDensity []float64
	for _, wp := range points {
		if wp.q <= 0 {
			continue
		}
		m := converge(points, wp.p, c)
		sigma := bandwidth(c, m.Z)

		merged := false
		for _, existing := range modes {
			if localDistSq(m, existing, sigma) < 1 {
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		modes = append(modes, m)
		modeDensity = append(modeDensity, density(points, m, c))
	}

	// Reference window extent for emission; §3 "window-top-left-in-source,
	// window-extent-in-source": here we reconstruct the nominal (unscaled)
	// window extent from the first raw detection's own window at scale 1.
	baseW, baseH := nominalWindowExtent(raw)

	var out []FinalDetection
	for i, m := range modes {
		if modeDensity[i] <= c.DensityThreshold {
			continue
		}
		s := math.Exp(m.Z)
		w := baseW * s
		h := baseH * s
		x := int(math.Ceil(m.X - w/2))
		y := int(math.Ceil(m.Y - h/2))
		out = append(out, FinalDetection{
			Score:  modeDensity[i],
			Scale:  s,
			X:      x,
			Y:      y,
			Width:  int(math.Floor(w)),
			Height: int(math.Floor(h)),
		})
	}
	return out
}

// nominalWindowExtent recovers the scale-1 window extent (Wx, Wy) implied
// by the raw detections, by un-scaling the first detection's window.
func nominalWindowExtent(raw []RawDetection) (float64, float64) {
	d := raw[0]
	if d.Scale <= 0 {
		return float64(d.Width), float64(d.Height)
	}
	return float64(d.Width) / d.Scale, float64(d.Height) / d.Scale
}
