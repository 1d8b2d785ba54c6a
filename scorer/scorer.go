/*
NAME
  scorer.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package scorer implements the linear classifier contract of spec.md
// §4.3: given a descriptor vector d and a LinearModel (w, b), it returns
// ⟨w, d⟩ − b. The scorer holds no hidden state and is used identically
// for a single query or a broadcast over a window.
package scorer

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Model is a linear classifier: a weight vector and a bias.
type Model struct {
	Weights []float64
	Bias    float64
}

// Validate checks that the model's weight length matches the expected
// WindowDescriptor length L, per the Dimension-mismatch error kind of
// spec.md §7.
func (m Model) Validate(wantLen int) error {
	if len(m.Weights) != wantLen {
		return errors.Errorf("scorer: model weight length %d does not match window descriptor length %d", len(m.Weights), wantLen)
	}
	return nil
}

// Score returns ⟨w, d⟩ − b. d must have the same length as m.Weights;
// Score does not validate this on every call (Validate should be called
// once up front) but will propagate the panic from gonum/floats.Dot if
// the lengths differ, consistent with the "arithmetic anomalies are not
// swallowed" policy of spec.md §7.
func Score(m Model, d []float64) float64 {
	return floats.Dot(m.Weights, d) - m.Bias
}
