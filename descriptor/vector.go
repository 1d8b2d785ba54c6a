/*
NAME
  vector.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package descriptor computes, normalizes and caches HOG block
// descriptors, and assembles them into WindowDescriptors per spec.md
// §3-4.1. Numeric work on the flattened block vector (norms,
// normalization) is done with gonum/floats.
package descriptor

// Vector is a flattened block or window descriptor.
type Vector []float64
