package gradient

import "testing"

func TestImageValidate(t *testing.T) {
	tests := []struct {
		name    string
		im      Image
		wantErr bool
	}{
		{
			name: "exact fit, implicit stride",
			im:   Image{Pix: make([]byte, 4*4*3), Width: 4, Height: 4},
		},
		{
			name: "explicit stride with padding",
			im:   Image{Pix: make([]byte, 4*(4*3+2)), Width: 4, Height: 4, Step: 4*3 + 2},
		},
		{
			name:    "buffer too small",
			im:      Image{Pix: make([]byte, 4), Width: 4, Height: 4},
			wantErr: true,
		},
		{
			name:    "zero extent",
			im:      Image{Pix: make([]byte, 16), Width: 0, Height: 4},
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.im.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestPackRowsStripsPadding(t *testing.T) {
	// 2x2 image, stride padded by 2 bytes per row.
	width, height := 2, 2
	stride := width*3 + 2
	pix := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width*3; x++ {
			pix[y*stride+x] = byte(y*10 + x)
		}
	}
	im := Image{Pix: pix, Width: width, Height: height, Step: stride}

	packed := packRows(im)
	if len(packed) != width*3*height {
		t.Fatalf("packed length = %d, want %d", len(packed), width*3*height)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width*3; x++ {
			want := byte(y*10 + x)
			got := packed[y*width*3+x]
			if got != want {
				t.Errorf("packed[%d,%d] = %d, want %d", y, x, got, want)
			}
		}
	}
}

func TestPackRowsNoPaddingReturnsSameSlice(t *testing.T) {
	im := Image{Pix: make([]byte, 2*2*3), Width: 2, Height: 2}
	if got := packRows(im); len(got) != len(im.Pix) {
		t.Errorf("packRows length = %d, want %d", len(got), len(im.Pix))
	}
}
