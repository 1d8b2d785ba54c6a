/*
NAME
  field.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

// Field holds per-pixel (magnitude, orientation) for an image's gradient,
// per spec.md §3. Orientation is an integer degree in [0, 180) when
// SemiCircular, else [0, 360). Extent always equals the source image
// extent; boundary rows/columns are populated from their nearest interior
// neighbor by the preprocessor (§4.1).
type Field struct {
	Width, Height int
	SemiCircular  bool
	Mag           []float64 // row-major, len == Width*Height
	Ori           []int     // row-major degrees, len == Width*Height
}

// NewField allocates a Field of the given extent.
func NewField(width, height int, semiCircular bool) *Field {
	return &Field{
		Width:        width,
		Height:       height,
		SemiCircular: semiCircular,
		Mag:          make([]float64, width*height),
		Ori:          make([]int, width*height),
	}
}

// At returns the (magnitude, orientation) pair at (x, y).
func (f *Field) At(x, y int) (float64, int) {
	i := y*f.Width + x
	return f.Mag[i], f.Ori[i]
}

// Set stores the (magnitude, orientation) pair at (x, y).
func (f *Field) Set(x, y int, mag float64, ori int) {
	i := y*f.Width + x
	f.Mag[i] = mag
	f.Ori[i] = ori
}
