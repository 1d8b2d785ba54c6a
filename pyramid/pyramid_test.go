package pyramid

import (
	"math"
	"testing"
)

func TestScaleSequenceTerminationCount(t *testing.T) {
	ew, eh := 640, 480
	winW, winH := 64, 128
	want := int(math.Floor(math.Log(math.Min(float64(ew)/float64(winW), float64(eh)/float64(winH)))/math.Log(1.05))) + 1

	scales, note := scaleSequence(ew, eh, winW, winH, 1, 1.05, 0)
	if note != "" {
		t.Errorf("unexpected note: %q", note)
	}
	if len(scales) != want {
		t.Errorf("len(scales) = %d, want %d", len(scales), want)
	}
	if scales[0] != 1 {
		t.Errorf("scales[0] = %v, want 1", scales[0])
	}
}

func TestScaleSequenceCapsAtRequestedEndScale(t *testing.T) {
	scales, note := scaleSequence(640, 480, 64, 128, 1, 1.05, 1.01)
	if note != "" {
		t.Errorf("unexpected note %q: end scale 1.01 is inside the derived range", note)
	}
	if len(scales) == 0 {
		t.Fatal("expected at least the start scale")
	}
	if scales[len(scales)-1] > 1.01 {
		t.Errorf("last scale %v exceeds requested end scale 1.01", scales[len(scales)-1])
	}
}

func TestMargin(t *testing.T) {
	m := Margin(0.1, 0.2, 50, 100, 640, 480)
	e := float64(640+480) / 2
	want := int(math.Max(0.1*e/50, 0.2*e/100))
	if m != want {
		t.Errorf("Margin() = %d, want %d", m, want)
	}
}
