/*
NAME
  variants.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

import (
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// rgbPreprocessor implements RGB_Grad, RGB_Sqrt_Grad and RGB_Log_Grad: a
// pixelTransform is applied to the raw channel values before
// differentiation.
type rgbPreprocessor struct {
	smoothSigma  float64
	semiCircular bool
	transform    pixelTransform
}

func (p *rgbPreprocessor) Compute(img Image) (*Field, error) {
	mat, err := img.ToMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	transformed, err := applyTransform(mat, p.transform)
	if err != nil {
		return nil, err
	}
	defer transformed.Close()

	return differentiate(transformed, p.smoothSigma, p.semiCircular)
}

// labPreprocessor implements Lab_Grad and Lab_Sqrt_Grad: the image is
// converted to CIE L*a*b* before differentiation, and in the "sqrt"
// variant the magnitude (not the pixel values) is square-rooted
// afterwards, per spec.md §4.1.
type labPreprocessor struct {
	smoothSigma  float64
	semiCircular bool
	sqrtMag      bool
}

func (p *labPreprocessor) Compute(img Image) (*Field, error) {
	mat, err := img.ToMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(mat, &lab, gocv.ColorRGBToLab)

	f, err := differentiate(lab, p.smoothSigma, p.semiCircular)
	if err != nil {
		return nil, errors.Wrap(err, "gradient: Lab differentiation")
	}
	if p.sqrtMag {
		for i, m := range f.Mag {
			if m < 0 {
				m = 0
			}
			f.Mag[i] = math.Sqrt(m)
		}
	}
	return f, nil
}
