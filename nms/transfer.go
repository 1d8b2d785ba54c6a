/*
NAME
  transfer.go

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

// transferWeight maps a raw classifier score w to a mean-shift weight q,
// per the four transfer functions of §4.4. alpha, beta and tau are
// config.DetectorConfig parameters; tau is the same light-threshold used
// during sliding-window enumeration.
func transferWeight(fn config.TransferFunc, w, alpha, beta, tau float64) float64 {
	switch fn {
	case config.TransferHardClip:
		v := alpha * (w - tau)
		if v < 0 {
			return 0
		}
		return v
	case config.TransferSigmoid:
		return 1 / (1 + math.Exp(alpha*w+beta))
	case config.TransferSoftClip:
		return (1 / alpha) * math.Log(1+math.Exp(alpha*(w-beta)))
	case config.TransferNone:
		return w
	default:
		return w
	}
}
