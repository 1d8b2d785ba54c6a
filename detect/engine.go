/*
NAME
  engine.go

DESCRIPTION
  engine.go wires the pyramid, gradient, descriptor and scorer packages
  into the sliding-window / scale-pyramid driver of spec.md §4.2, then
  hands the resulting RawDetections to nms for mode-finding fusion. This
  mirrors the role github.com/ausocean/av/revid plays for its own
  pipeline: one Engine owns all per-pass mutable state (its descriptor
  caches and the current gradient field) and must not be shared across
  concurrent detection passes (§5).

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package detect orchestrates one end-to-end detection pass: pyramid
// construction, gradient computation, sliding-window descriptor
// extraction and scoring, and mean-shift NMS fusion.
package detect

import (
	"math"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/descriptor"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/ausocean/hogdetect/nms"
	"github.com/ausocean/hogdetect/pyramid"
	"github.com/ausocean/hogdetect/scorer"
	"github.com/pkg/errors"
)

// Engine runs detection passes for one DetectorConfig and LinearModel. An
// Engine is not safe for concurrent use: a caller running multiple images
// in parallel must construct one Engine per goroutine (§5).
type Engine struct {
	cfg   *config.DetectorConfig
	model scorer.Model
	pre   gradient.Preprocessor
	desc  *descriptor.Engine
}

// NewEngine validates cfg and model against each other and builds an
// Engine ready to run detection passes.
func NewEngine(cfg *config.DetectorConfig, model scorer.Model) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "detect: invalid config")
	}
	if err := model.Validate(cfg.Window.Length()); err != nil {
		return nil, errors.Wrap(err, "detect: model/window mismatch")
	}
	// All BlockSpecs in a WindowSpec share the same preprocessor choice
	// and smoothing sigma in this implementation: the first block's
	// recipe governs gradient computation for the whole window.
	b := cfg.Window.Blocks[0]
	pre, err := gradient.New(b.Preprocessor, b.SmoothSigma, b.SemiCircular)
	if err != nil {
		return nil, errors.Wrap(err, "detect: building preprocessor")
	}
	return &Engine{
		cfg:   cfg,
		model: model,
		pre:   pre,
		desc:  descriptor.NewEngine(cfg.Window),
	}, nil
}

// Detect runs one full detection pass over src and returns the fused
// FinalDetections, per spec.md §4.2's operation contract.
func (e *Engine) Detect(src gradient.Image) ([]nms.FinalDetection, error) {
	margin := pyramid.Margin(e.cfg.MarginX, e.cfg.MarginY, e.cfg.AvgObjWidth, e.cfg.AvgObjHeight, src.Width, src.Height)
	padded, err := pyramid.Pad(src, margin)
	if err != nil {
		return nil, errors.Wrap(err, "detect: padding source image")
	}

	var levels []pyramid.Level
	var note string
	if e.cfg.NoPyramid {
		levels = []pyramid.Level{{Scale: 1, Image: padded}}
	} else {
		pyr, err := pyramid.Build(padded, e.cfg.Window.Width, e.cfg.Window.Height, e.cfg.StartScale, e.cfg.Ratio, e.cfg.EndScale)
		if err != nil {
			return nil, errors.Wrap(err, "detect: building pyramid")
		}
		levels = pyr.Levels
		note = pyr.Note
	}
	if note != "" && e.cfg.Logger != nil {
		e.cfg.Logger.Info("detect: pyramid note", "note", note)
	}

	var raw []nms.RawDetection
	for _, level := range levels {
		field, err := e.pre.Compute(level.Image)
		if err != nil {
			return nil, errors.Wrapf(err, "detect: computing gradient at scale %f", level.Scale)
		}
		e.desc.Reset(field)

		pts := pyramid.Enumerate(level.Image.Width, level.Image.Height, e.cfg.Window.Width, e.cfg.Window.Height, e.cfg.Window.StrideX, e.cfg.Window.StrideY)
		for _, pt := range pts {
			d, err := e.desc.WindowDescriptor(pt.X, pt.Y)
			if err != nil {
				return nil, errors.Wrapf(err, "detect: descriptor at level scale %f, window (%d,%d)", level.Scale, pt.X, pt.Y)
			}
			score := scorer.Score(e.model, d)
			if score <= e.cfg.ScoreThreshold {
				continue
			}

			sx := float64(pt.X) * level.Scale
			sy := float64(pt.Y) * level.Scale
			sw := float64(e.cfg.Window.Width) * level.Scale
			sh := float64(e.cfg.Window.Height) * level.Scale
			ux, uy := pyramid.Unpad(int(sx), int(sy), margin)

			raw = append(raw, nms.RawDetection{
				Score:  score,
				Scale:  level.Scale,
				X:      ux,
				Y:      uy,
				Width:  int(math.Round(sw)),
				Height: int(math.Round(sh)),
			})
		}
	}

	return nms.Find(raw, e.cfg), nil
}
