/*
NAME
  preprocess.go

DESCRIPTION
  preprocess.go provides the interface and implementations of the
  gradient preprocessors used to turn an Image into a Field.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

import (
	"github.com/ausocean/hogdetect/config"
	"github.com/pkg/errors"
)

// Preprocessor computes a gradient Field from an Image. Each variant of
// spec.md §4.1's table is a distinct implementation; none carry per-call
// dynamic allocation beyond what the derivative computation itself needs.
//
// NB: Preprocessor implementations are not safe for concurrent use from
// multiple goroutines against the same instance; construct one per
// detection engine, per §5.
type Preprocessor interface {
	Compute(img Image) (*Field, error)
}

// pixelTransform remaps a channel value in [0,255] before differentiation.
type pixelTransform func(v float64) float64

func identityTransform(v float64) float64 { return v }

// New dispatches to the Preprocessor implementation named by variant.
func New(variant config.Preprocessor, smoothSigma float64, semiCircular bool) (Preprocessor, error) {
	switch variant {
	case config.RGBGrad:
		return &rgbPreprocessor{smoothSigma: smoothSigma, semiCircular: semiCircular, transform: identityTransform}, nil
	case config.RGBSqrtGrad:
		return &rgbPreprocessor{smoothSigma: smoothSigma, semiCircular: semiCircular, transform: sqrtTransform}, nil
	case config.RGBLogGrad:
		return &rgbPreprocessor{smoothSigma: smoothSigma, semiCircular: semiCircular, transform: logTransform}, nil
	case config.LabGrad:
		return &labPreprocessor{smoothSigma: smoothSigma, semiCircular: semiCircular, sqrtMag: false}, nil
	case config.LabSqrtGrad:
		return &labPreprocessor{smoothSigma: smoothSigma, semiCircular: semiCircular, sqrtMag: true}, nil
	default:
		return nil, errors.Errorf("gradient: unknown preprocessor variant %v", variant)
	}
}
