/*
NAME
  common.go

DESCRIPTION
  common.go implements the differentiation pipeline shared by every
  Preprocessor variant: optional separable Gaussian smoothing, the
  centered first-difference stencil, per-pixel channel-max magnitude
  selection, and orientation quantization (§4.1).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// smooth applies separable discrete-Gaussian smoothing with support 3σ on
// each side, using edge replication per §4.1's boundary policy. sigma<=0
// is a no-op (caller skips straight to the stencil).
func smooth(src gocv.Mat, sigma float64) (gocv.Mat, error) {
	if sigma <= 0 {
		return src.Clone(), nil
	}
	radius := int(math.Ceil(3 * sigma))
	ksize := 2*radius + 1
	dst := gocv.NewMat()
	gocv.GaussianBlurWithParams(src, &dst, image.Pt(ksize, ksize), sigma, sigma, gocv.BorderReplicate)
	return dst, nil
}

// derivative computes the centered first-difference stencil [-1, 0, +1]
// along one axis, via a Sobel kernel of size 1 (which OpenCV implements
// as exactly that stencil) with edge-replicated borders.
func derivative(src gocv.Mat, dx, dy int) (gocv.Mat, error) {
	dst := gocv.NewMat()
	gocv.SobelWithParams(src, &dst, gocv.MatTypeCV64F, dx, dy, 1, 1, 0, gocv.BorderReplicate)
	return dst, nil
}

// channelMaxMagOri combines per-channel (ddx, ddy) derivative Mats into a
// single Field by, at each pixel, picking the channel with the largest
// L2 gradient magnitude (§4.1: "the per-pixel output picks the channel
// with the largest magnitude").
func channelMaxMagOri(ddx, ddy gocv.Mat, width, height, channels int, semiCircular bool) (*Field, error) {
	dxData, err := ddx.DataPtrFloat64()
	if err != nil {
		return nil, errors.Wrap(err, "gradient: reading dx buffer")
	}
	dyData, err := ddy.DataPtrFloat64()
	if err != nil {
		return nil, errors.Wrap(err, "gradient: reading dy buffer")
	}

	f := NewField(width, height, semiCircular)
	oriRange := 360.0
	if semiCircular {
		oriRange = 180.0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * channels
			var bestMag float64 = -1
			var bestDx, bestDy float64
			for c := 0; c < channels; c++ {
				gx := dxData[base+c]
				gy := dyData[base+c]
				mag := math.Hypot(gx, gy)
				if mag > bestMag {
					bestMag = mag
					bestDx, bestDy = gx, gy
				}
			}
			deg := math.Atan2(bestDy, bestDx) * 180 / math.Pi
			if deg < 0 {
				deg += 360
			}
			if semiCircular {
				deg = math.Mod(deg, 180)
			}
			ori := int(math.Mod(deg, oriRange))
			f.Set(x, y, bestMag, ori)
		}
	}
	// Boundary rows and columns take their interior neighbor's values.
	if width > 2 {
		for y := 0; y < height; y++ {
			i, j := y*width, (y+1)*width-1
			f.Mag[i], f.Ori[i] = f.Mag[i+1], f.Ori[i+1]
			f.Mag[j], f.Ori[j] = f.Mag[j-1], f.Ori[j-1]
		}
	}
	if height > 2 {
		last := (height - 1) * width
		copy(f.Mag[:width], f.Mag[width:2*width])
		copy(f.Ori[:width], f.Ori[width:2*width])
		copy(f.Mag[last:], f.Mag[last-width:last])
		copy(f.Ori[last:], f.Ori[last-width:last])
	}
	return f, nil
}

// differentiate runs the shared smoothing + stencil + combine pipeline on
// a single-Mat source (already transformed/color-converted by the
// caller), returning the resulting Field.
func differentiate(src gocv.Mat, smoothSigma float64, semiCircular bool) (*Field, error) {
	smoothed, err := smooth(src, smoothSigma)
	if err != nil {
		return nil, err
	}
	defer smoothed.Close()

	ddx, err := derivative(smoothed, 1, 0)
	if err != nil {
		return nil, err
	}
	defer ddx.Close()

	ddy, err := derivative(smoothed, 0, 1)
	if err != nil {
		return nil, err
	}
	defer ddy.Close()

	return channelMaxMagOri(ddx, ddy, src.Cols(), src.Rows(), src.Channels(), semiCircular)
}

// applyTransform rewrites every channel value v as transform(v), in
// place, operating on an 8-bit-per-channel Mat promoted to float64.
func applyTransform(src gocv.Mat, transform pixelTransform) (gocv.Mat, error) {
	f64 := gocv.NewMat()
	src.ConvertTo(&f64, gocv.MatTypeCV64F)

	data, err := f64.DataPtrFloat64()
	if err != nil {
		f64.Close()
		return gocv.Mat{}, errors.Wrap(err, "gradient: reading pixel buffer for transform")
	}
	for i := range data {
		data[i] = transform(data[i])
	}
	return f64, nil
}

func sqrtTransform(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

func logTransform(v float64) float64 { return math.Log1p(v) }
