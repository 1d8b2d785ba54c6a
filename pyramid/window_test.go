package pyramid

import (
	"reflect"
	"testing"
)

func TestEnumerateOrderAndBounds(t *testing.T) {
	pts := Enumerate(20, 20, 8, 8, 8, 8)
	want := []Point{
		{0, 0}, {8, 0},
		{0, 8}, {8, 8},
	}
	if !reflect.DeepEqual(pts, want) {
		t.Errorf("Enumerate() = %v, want %v", pts, want)
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	a := Enumerate(64, 128, 16, 16, 8, 8)
	b := Enumerate(64, 128, 16, 16, 8, 8)
	if !reflect.DeepEqual(a, b) {
		t.Error("two Enumerate() calls on equal inputs produced different sequences")
	}
}

func TestEnumerateExactFitSingleWindow(t *testing.T) {
	pts := Enumerate(64, 128, 64, 128, 8, 8)
	if len(pts) != 1 || pts[0] != (Point{0, 0}) {
		t.Errorf("Enumerate() = %v, want exactly one window at (0,0)", pts)
	}
}

func TestEnumerateWindowLargerThanLevel(t *testing.T) {
	pts := Enumerate(32, 32, 64, 64, 8, 8)
	if pts != nil {
		t.Errorf("Enumerate() = %v, want nil", pts)
	}
}

func TestScaledExtent(t *testing.T) {
	w, h := scaledExtent(640, 480, 2)
	if w != 320 || h != 240 {
		t.Errorf("scaledExtent() = (%d, %d), want (320, 240)", w, h)
	}
}
