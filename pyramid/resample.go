/*
NAME
  resample.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pyramid

import (
	"image"
	"math"

	"github.com/ausocean/hogdetect/gradient"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Resample produces a resampled copy of src at extent floor(E/scale),
// using separable bilinear weighting (§4.2). Downscaling (scale > 1) uses
// area-weighted resampling so that the effective filter support grows
// with the scale factor, matching the "support = filter radius /
// min(scale, 1)" widening the spec calls for; upscaling (scale < 1, used
// only when s0 < 1 is ever allowed by a caller) uses plain bilinear.
// Destination pixel values are implicitly clamped to [0, 255] by the
// 8-bit output Mat.
func Resample(src gradient.Image, scale float64) (gradient.Image, error) {
	w := int(float64(src.Width) / scale)
	h := int(float64(src.Height) / scale)
	if w <= 0 || h <= 0 {
		return gradient.Image{}, errors.Errorf("pyramid: resampled extent (%d, %d) is non-positive at scale %f", w, h, scale)
	}

	mat, err := src.ToMat()
	if err != nil {
		return gradient.Image{}, err
	}
	defer mat.Close()

	interp := gocv.InterpolationLinear
	if scale > 1 {
		interp = gocv.InterpolationArea
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(mat, &dst, image.Pt(w, h), 0, 0, interp)

	pix, err := dst.DataPtrUint8()
	if err != nil {
		return gradient.Image{}, errors.Wrap(err, "pyramid: reading resampled pixel buffer")
	}
	out := make([]byte, len(pix))
	copy(out, pix)

	return gradient.Image{Pix: out, Width: w, Height: h, Step: w * 3}, nil
}

// scaledExtent is a small helper used by tests to predict Resample's
// output size without invoking gocv.
func scaledExtent(w, h int, scale float64) (int, int) {
	return int(math.Floor(float64(w) / scale)), int(math.Floor(float64(h) / scale))
}
