/*
NAME
  types.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package nms fuses raw per-window detections across space and scale
// into a small set of final object detections via scale-space mean-shift
// mode-finding, per spec.md §4.4.
package nms

// RawDetection is an above-threshold window score, not yet fused, per
// §3. Window extent at scale s equals round(Wx·s, Wy·s).
type RawDetection struct {
	Score         float64
	Scale         float64
	X, Y          int // window top-left in source coordinates
	Width, Height int // window extent in source coordinates
}

// FinalDetection has the same shape as RawDetection, but Score is a
// kernel-density value rather than a raw classifier margin, and the
// window is centered on the discovered mode.
type FinalDetection struct {
	Score         float64
	Scale         float64
	X, Y          int
	Width, Height int
}
