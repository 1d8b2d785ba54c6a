package descriptor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
)

func TestCacheCapacityMinimumOne(t *testing.T) {
	if got := CacheCapacity(0, 36); got != 1 {
		t.Errorf("CacheCapacity(0, 36) = %d, want 1", got)
	}
	if got := CacheCapacity(-1, 36); got != 1 {
		t.Errorf("CacheCapacity(-1, 36) = %d, want 1", got)
	}
}

func TestCacheRepeatedQueryIsBitIdentical(t *testing.T) {
	spec := testSpec()
	field := gradient.NewField(32, 32, false)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			field.Set(x, y, float64((x*y)%7), (x+y)%360)
		}
	}
	c := NewCache(spec, 4)
	c.Reset(field)

	v1, err := c.Get(0, 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	v2, err := c.Get(0, 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !cmp.Equal([]float64(v1), []float64(v2)) {
		t.Errorf("repeated Get() at same key differ: %v vs %v", v1, v2)
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want hits=1 misses=1", hits, misses)
	}
}

func TestCacheFIFOEviction(t *testing.T) {
	spec := testSpec()
	field := gradient.NewField(64, 64, false)
	c := NewCache(spec, 2)
	c.Reset(field)

	c.Get(0, 0)
	c.Get(16, 0)
	c.Get(32, 0) // evicts (0,0)

	if _, ok := c.data[blockKey{0, 0}]; ok {
		t.Error("expected (0,0) to be evicted from a capacity-2 FIFO after a third distinct insert")
	}
	if _, ok := c.data[blockKey{32, 0}]; !ok {
		t.Error("expected most recent key to remain resident")
	}
}

func TestEngineWindowDescriptorLength(t *testing.T) {
	spec := testSpec()
	offs := config.NewRegularBlockGrid(spec, 64, 128)
	window := config.WindowSpec{
		Width: 64, Height: 128, StrideX: 8, StrideY: 8,
		Blocks:       []config.BlockSpec{spec},
		BlockOffsets: [][]config.BlockOffset{offs},
	}
	field := gradient.NewField(128, 128, false)
	e := NewEngine(window)
	e.Reset(field)

	d, err := e.WindowDescriptor(0, 0)
	if err != nil {
		t.Fatalf("WindowDescriptor() error = %v", err)
	}
	if len(d) != window.Length() {
		t.Errorf("len(d) = %d, want %d", len(d), window.Length())
	}
}
