/*
NAME
  normalize.go

DESCRIPTION
  normalize.go implements the nine block-vector normalizers of spec.md
  §4.1: None (identity), the four epsilon-regularized schemes
  (L1/L1Sqrt/L2/L2Hys) and their four "traditional" counterparts, which
  replace the epsilon
  regularizer with a conditional unit divisor when the block carries
  little gradient energy. Both families are kept as distinct, explicit
  config.Normalizer values (see the Open Question recorded in
  DESIGN.md/SPEC_FULL.md).

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
	"gonum.org/v1/gonum/floats"
)

const (
	defaultEps = 1.0
	hysClip    = 0.2
	hysEps     = 0.01
)

// applyNormalizer dispatches to the normalizer named by n, operating on
// the full flattened block vector v. v is modified in place and also
// returned.
func applyNormalizer(v Vector, n config.Normalizer) Vector {
	switch n {
	case config.NormNone:
		return v
	case config.NormL1:
		return normL1(v, defaultEps, false)
	case config.NormL1Sqrt:
		return normL1Sqrt(v, defaultEps, false)
	case config.NormL2:
		return normL2(v, defaultEps, false)
	case config.NormL2Hys:
		return normL2Hys(v, defaultEps, false)
	case config.NormL1Trad:
		return normL1(v, defaultEps, true)
	case config.NormL2Trad:
		return normL2(v, defaultEps, true)
	case config.NormL2TradHys:
		return normL2Hys(v, defaultEps, true)
	case config.NormL1TradSqrt:
		return normL1Sqrt(v, defaultEps, true)
	default:
		return v
	}
}

// divisor returns the value v should be divided by given a pre-norm
// quantity "norm" (Σv for L1 schemes, ‖v‖₂ for L2 schemes) and the fixed
// cardinality of v (used both as the epsilon scale and, for the
// "traditional" schemes, as the small-energy test), per
// lear/cvision/dnormalizer.h's epsilon*vec.size() convention.
func divisor(norm, count float64, eps float64, traditional bool) float64 {
	thresh := eps * count
	if traditional {
		if norm < thresh {
			return 1
		}
		return norm
	}
	return norm + thresh
}

func normL1(v Vector, eps float64, traditional bool) Vector {
	d := divisor(floats.Sum(v), float64(len(v)), eps, traditional)
	floats.Scale(1/d, v)
	return v
}

func normL1Sqrt(v Vector, eps float64, traditional bool) Vector {
	v = normL1(v, eps, traditional)
	for i, x := range v {
		if x < 0 {
			x = 0
		}
		v[i] = math.Sqrt(x)
	}
	return v
}

func normL2(v Vector, eps float64, traditional bool) Vector {
	l2 := floats.Norm(v, 2)
	d := divisor(l2, float64(len(v)), eps, traditional)
	floats.Scale(1/d, v)
	return v
}

func normL2Hys(v Vector, eps float64, traditional bool) Vector {
	v = normL2(v, eps, traditional)
	for i, x := range v {
		if x > hysClip {
			v[i] = hysClip
		}
	}
	l2 := floats.Norm(v, 2)
	floats.Scale(1/(l2+hysEps), v)
	return v
}
