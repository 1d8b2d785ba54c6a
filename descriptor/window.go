/*
NAME
  window.go

DESCRIPTION
  window.go assembles a WindowDescriptor for a query window top-left by
  iterating a WindowSpec's BlockSpecs in order and, for each, its
  precomputed block-offset grid, querying that BlockSpec's cache and
  concatenating the results (§4.1 "WindowDescriptor assembly"). Engine
  owns exactly one Cache per BlockSpec and the gradient field the caches
  are currently bound to (§3 ownership rules).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import (
	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
)

// Engine owns the descriptor caches for one WindowSpec. It is mutable
// state: construct one per concurrent detection pass, never share across
// goroutines (§5).
type Engine struct {
	window config.WindowSpec
	caches []*Cache
}

// NewEngine builds an Engine for window, deriving each BlockSpec's cache
// capacity from window.CacheBudgetMB.
func NewEngine(window config.WindowSpec) *Engine {
	caches := make([]*Cache, len(window.Blocks))
	for i, b := range window.Blocks {
		cap := CacheCapacity(window.CacheBudgetMB, b.Length())
		caches[i] = NewCache(b, cap)
	}
	return &Engine{window: window, caches: caches}
}

// Reset clears every block cache and rebinds the Engine to a new
// gradient field (new source image, or new pyramid level).
func (e *Engine) Reset(field *gradient.Field) {
	for _, c := range e.caches {
		c.Reset(field)
	}
}

// WindowDescriptor assembles the concatenated descriptor for the window
// whose top-left (in the current gradient field) is (x0, y0). The output
// layout is a deterministic, stable concatenation in BlockSpec order,
// then block-offset order, per §4.1.
func (e *Engine) WindowDescriptor(x0, y0 int) (Vector, error) {
	out := make(Vector, 0, e.window.Length())
	for i, offs := range e.window.BlockOffsets {
		cache := e.caches[i]
		for _, off := range offs {
			v, err := cache.Get(x0+off.X, y0+off.Y)
			if err != nil {
				return nil, err
			}
			out = append(out, v...)
		}
	}
	return out, nil
}
