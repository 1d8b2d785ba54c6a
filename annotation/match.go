package annotation

// IoU returns the intersection-over-union of two 0-based, inclusive
// bounding boxes, in [0, 1].
func IoU(a, b Box) float64 {
	ix0, iy0 := max(a.Xmin, b.Xmin), max(a.Ymin, b.Ymin)
	ix1, iy1 := min(a.Xmax, b.Xmax), min(a.Ymax, b.Ymax)
	if ix1 < ix0 || iy1 < iy0 {
		return 0
	}
	inter := float64((ix1 - ix0 + 1) * (iy1 - iy0 + 1))
	union := float64(a.Width()*a.Height()+b.Width()*b.Height()) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
