/*
NAME
  image.go

DESCRIPTION
  image.go defines the Image type: the caller-supplied pixel buffer
  described in spec.md §6 (3-channel, 8-bit, RGB, row-major, with an
  optional explicit row stride).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gradient computes GradientFields (per-pixel magnitude and
// orientation) from an Image, via one of five configurable Preprocessor
// variants (§4.1). It depends on gocv for the underlying derivative,
// smoothing and color-space operations.
package gradient

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Image is a 2-D grid of 3-channel RGB pixels, matching the external
// interface of spec.md §6: a caller-supplied pixel buffer plus
// (width, height, row-stride). A Step of 0 means stride = 3*Width.
type Image struct {
	Pix    []byte
	Width  int
	Height int
	Step   int
}

// stride returns the effective row stride in bytes.
func (im Image) stride() int {
	if im.Step == 0 {
		return im.Width * 3
	}
	return im.Step
}

// Validate checks that the pixel buffer is large enough for the claimed
// extent and stride.
func (im Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return errors.Errorf("gradient: image extent must be positive, got (%d, %d)", im.Width, im.Height)
	}
	need := im.stride()*(im.Height-1) + im.Width*3
	if len(im.Pix) < need {
		return errors.Errorf("gradient: pixel buffer too small: have %d bytes, need %d", len(im.Pix), need)
	}
	return nil
}

// ToMat converts Image to a gocv 8-bit 3-channel Mat for use by the
// Preprocessor implementations. The caller owns the returned Mat and must
// Close it.
func (im Image) ToMat() (gocv.Mat, error) {
	if err := im.Validate(); err != nil {
		return gocv.Mat{}, err
	}
	mat, err := gocv.NewMatFromBytes(im.Height, im.Width, gocv.MatTypeCV8UC3, packRows(im))
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "gradient: building Mat from image bytes")
	}
	return mat, nil
}

// packRows returns a tightly packed (stride == Width*3) copy of the pixel
// data, which gocv.NewMatFromBytes requires.
func packRows(im Image) []byte {
	stride := im.stride()
	if stride == im.Width*3 {
		return im.Pix
	}
	out := make([]byte, im.Width*3*im.Height)
	for y := 0; y < im.Height; y++ {
		copy(out[y*im.Width*3:(y+1)*im.Width*3], im.Pix[y*stride:y*stride+im.Width*3])
	}
	return out
}
