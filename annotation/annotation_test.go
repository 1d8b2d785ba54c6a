package annotation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `# comment line, ignored
Image filename : "frame0001.png"
Image size (X x Y x C) : 320 x 240 x 3
Bounding box for object 1 "fish" (10, 20) - (30, 40)
Bounding box for object 2 "coral" (1, 1) - (320, 240)
`

func TestParse(t *testing.T) {
	a, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if a.Width != 320 || a.Height != 240 {
		t.Fatalf("size = (%d, %d), want (320, 240)", a.Width, a.Height)
	}
	want := []Box{
		{Label: "fish", Xmin: 9, Ymin: 19, Xmax: 29, Ymax: 39},
		{Label: "coral", Xmin: 0, Ymin: 0, Xmax: 319, Ymax: 239}, // spans the whole image
	}
	if diff := cmp.Diff(want, a.Boxes); diff != "" {
		t.Errorf("Boxes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsBoxBeforeSize(t *testing.T) {
	src := `Image filename : "x.png"
Bounding box for object 1 "fish" (1, 1) - (2, 2)
`
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Error("expected error when a bounding box line precedes the image size line")
	}
}

func TestIoU(t *testing.T) {
	a := Box{Xmin: 0, Ymin: 0, Xmax: 9, Ymax: 9}   // 10x10
	b := Box{Xmin: 5, Ymin: 5, Xmax: 14, Ymax: 14} // 10x10, overlapping 5x5 corner

	got := IoU(a, b)
	want := 25.0 / (100 + 100 - 25)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("IoU mismatch (-want +got):\n%s", diff)
	}

	if got := IoU(a, a); got != 1 {
		t.Errorf("IoU(a, a) = %f, want 1", got)
	}

	disjoint := Box{Xmin: 100, Ymin: 100, Xmax: 109, Ymax: 109}
	if got := IoU(a, disjoint); got != 0 {
		t.Errorf("IoU(a, disjoint) = %f, want 0", got)
	}
}
