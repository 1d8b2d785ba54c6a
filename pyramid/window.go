/*
NAME
  window.go

DESCRIPTION
  window.go enumerates sliding-window top-left positions within one
  pyramid level, per spec.md §4.2: all (i·Wsx, j·Wsy) with
  top-left+window <= level extent, in (outer=y, inner=x) order so that the
  descriptor cache sees spatial locality between neighboring windows.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pyramid

// Point is a sliding-window top-left position within a level.
type Point struct{ X, Y int }

// Enumerate returns every window top-left position that keeps the window
// entirely inside a level of extent (levelW, levelH), in fixed
// (outer=y, inner=x) order. The result is a deterministic function of its
// arguments: two calls with equal inputs produce exactly the same
// sequence (§8's sliding-window invariant).
func Enumerate(levelW, levelH, winW, winH, strideX, strideY int) []Point {
	if winW > levelW || winH > levelH || strideX <= 0 || strideY <= 0 {
		return nil
	}
	var pts []Point
	for y := 0; y+winH <= levelH; y += strideY {
		for x := 0; x+winW <= levelW; x += strideX {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}
