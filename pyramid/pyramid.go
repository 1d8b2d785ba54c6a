/*
NAME
  pyramid.go

DESCRIPTION
  pyramid.go builds the scale pyramid described in spec.md §3/§4.2: an
  ordered sequence of (scale, resampled image) levels starting at s0 and
  growing by ratio r, stopping when the next resampled extent would drop
  below the window extent.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pyramid builds scale pyramids over an Image and enumerates
// sliding-window positions within each level, per spec.md §4.2. Level
// resampling uses gocv's resize: area interpolation when downscaling,
// bilinear otherwise.
package pyramid

import (
	"github.com/ausocean/hogdetect/gradient"
	"github.com/pkg/errors"
)

// Level is one resampled copy of the source image at a particular scale.
// A Level is exclusively owned by the Pyramid for the duration of one
// detection pass (§3, §5).
type Level struct {
	Scale float64
	Image gradient.Image
}

// Pyramid is the ordered sequence of Levels built for one source image.
type Pyramid struct {
	Levels []Level
	// Note carries a non-fatal diagnostic, e.g. that an explicitly
	// requested end scale was capped, per §4.2.
	Note string
}

// Build constructs the pyramid for src with window extent (winW, winH),
// start scale s0 (>=1), ratio r (>1), and an optional end scale se (0
// means unbounded). Levels stop at the largest k with
// floor(E/s_k) >= (winW, winH) componentwise; an explicit se that would
// force levels below the window extent is silently capped at that
// derived maximum, surfaced via Pyramid.Note rather than failing the
// pass.
func Build(src gradient.Image, winW, winH int, s0, ratio, se float64) (*Pyramid, error) {
	if s0 < 1 {
		return nil, errors.Errorf("pyramid: start scale must be >= 1, got %f", s0)
	}
	if ratio <= 1 {
		return nil, errors.Errorf("pyramid: ratio must be > 1, got %f", ratio)
	}

	scales, note := scaleSequence(src.Width, src.Height, winW, winH, s0, ratio, se)

	p := &Pyramid{Note: note}
	for _, scale := range scales {
		level, err := Resample(src, scale)
		if err != nil {
			return nil, errors.Wrapf(err, "pyramid: resampling at scale %f", scale)
		}
		p.Levels = append(p.Levels, Level{Scale: scale, Image: level})
	}
	return p, nil
}

// scaleSequence computes the ordered list of scales a Pyramid built over
// an (ew, eh) source with the given window extent, start scale and ratio
// would contain, without doing any actual resampling. Extracted from
// Build so the termination rule (§8: "number of levels equals
// floor(log_r(min(E/W))) + 1 when s0 = 1") can be tested without gocv.
func scaleSequence(ew, eh, winW, winH int, s0, ratio, se float64) ([]float64, string) {
	var scales []float64
	var note string
	scale := s0
	for {
		lw := int(float64(ew) / scale)
		lh := int(float64(eh) / scale)
		if lw < winW || lh < winH {
			if se > 0 && scale <= se {
				note = "requested end scale exceeds the derived maximum; capped at the largest scale whose level still contains the window"
			}
			break
		}
		if se > 0 && scale > se {
			break
		}
		scales = append(scales, scale)
		scale *= ratio
	}
	return scales, note
}
