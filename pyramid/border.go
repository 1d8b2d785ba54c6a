/*
NAME
  border.go

DESCRIPTION
  border.go implements the border policy of spec.md §4.2: before pyramid
  construction the source image may be padded on all four sides, with
  padded rows/columns replicating the nearest valid edge pixel. Final
  RawDetection coordinates are translated back to the un-padded source
  frame before being emitted (done by the caller via Unpad).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pyramid

import (
	"github.com/ausocean/hogdetect/gradient"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Margin computes the padding margin from the "margin vs average-object
// -size" pair (mx, my, ax, ay), as max(mx·E/ax, my·E/ay). E is taken as
// the mean of the source image's width and height, so a single margin
// value is applied uniformly on all four sides.
func Margin(mx, my, ax, ay float64, width, height int) int {
	e := float64(width+height) / 2
	var a, b float64
	if ax > 0 {
		a = mx * e / ax
	}
	if ay > 0 {
		b = my * e / ay
	}
	m := a
	if b > m {
		m = b
	}
	if m < 0 {
		m = 0
	}
	return int(m)
}

// Pad replicates src's edge pixels outward by margin pixels on all four
// sides.
func Pad(src gradient.Image, margin int) (gradient.Image, error) {
	if margin <= 0 {
		return src, nil
	}
	mat, err := src.ToMat()
	if err != nil {
		return gradient.Image{}, err
	}
	defer mat.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CopyMakeBorder(mat, &dst, margin, margin, margin, margin, gocv.BorderReplicate, gocv.Scalar{})

	pix, err := dst.DataPtrUint8()
	if err != nil {
		return gradient.Image{}, errors.Wrap(err, "pyramid: reading padded pixel buffer")
	}
	w, h := src.Width+2*margin, src.Height+2*margin
	out := make([]byte, len(pix))
	copy(out, pix)
	return gradient.Image{Pix: out, Width: w, Height: h, Step: w * 3}, nil
}

// Unpad translates a point in the padded source frame back to the
// original, un-padded source frame.
func Unpad(x, y, margin int) (int, int) { return x - margin, y - margin }
