package rawdesc

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/hogdetect/config"
)

type seekBuf struct {
	*bytes.Reader
	buf []byte
	pos int64
}

func newSeekBuf() *seekBuf { return &seekBuf{} }

func (s *seekBuf) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *seekBuf) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.buf)) + offset
	}
	return s.pos, nil
}

func testWindow() config.WindowSpec {
	b := config.BlockSpec{
		CellX: 8, CellY: 8, CellsX: 2, CellsY: 2, StrideX: 8, StrideY: 8,
		Bins: 9, Normalizer: config.NormL2Hys, Preprocessor: config.RGBGrad,
	}
	return config.WindowSpec{
		Width: 16, Height: 16, StrideX: 8, StrideY: 8,
		Blocks:        []config.BlockSpec{b},
		BlockOffsets:  [][]config.BlockOffset{config.NewRegularBlockGrid(b, 16, 16)},
		CacheBudgetMB: 1,
	}
}

// TestRoundTripVersion100 writes two records at version 100 (no geometry
// or filename fields) and reads them back identically, per §8's
// "Round-trips" testable property: dump, load, re-dump produces a
// byte-identical file.
func TestRoundTripVersion100(t *testing.T) {
	window := testWindow()
	buf := newSeekBuf()

	w, err := NewWriter(buf, Version100, window)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	// Values chosen to be exactly representable as float32, so the
	// float64 -> float32 -> float64 round trip through the dump format
	// is lossless for this test.
	descs := [][]float64{
		{0.125, 0.25, 0.375, 0.5},
		{0.5, 0.625, 0.75, 0.875},
	}
	for _, d := range descs {
		if err := w.WriteRecord(d, RecordMeta{}); err != nil {
			t.Fatalf("WriteRecord() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	first := make([]byte, len(buf.buf))
	copy(first, buf.buf)

	r, err := Open(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if r.Version != Version100 {
		t.Errorf("Version = %d, want %d", r.Version, Version100)
	}
	if r.Count != int64(len(descs)) {
		t.Errorf("Count = %d, want %d", r.Count, len(descs))
	}
	if diff := cmp.Diff(window, r.Window); diff != "" {
		t.Errorf("Window mismatch (-want +got):\n%s", diff)
	}

	var got [][]float64
	for {
		d, meta, err := r.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadRecord() error = %v", err)
		}
		if meta != (RecordMeta{}) {
			t.Errorf("ReadRecord() meta = %+v, want zero value at version 100", meta)
		}
		got = append(got, d)
	}
	if diff := cmp.Diff(descs, got); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}

	// Re-dump: writing the same records through a fresh Writer must
	// produce a byte-identical file.
	buf2 := newSeekBuf()
	w2, err := NewWriter(buf2, Version100, window)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for _, d := range got {
		if err := w2.WriteRecord(d, RecordMeta{}); err != nil {
			t.Fatalf("WriteRecord() error = %v", err)
		}
	}
	if err := w2.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !bytes.Equal(first, buf2.buf) {
		t.Error("re-dump is not byte-identical to the original dump")
	}
}

func TestRoundTripVersion120(t *testing.T) {
	window := testWindow()
	buf := newSeekBuf()

	w, err := NewWriter(buf, Version120, window)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	meta := RecordMeta{X: 4, Y: 8, Width: 16, Height: 16, Scale: 1.25, Filename: "frame0001.png"}
	if err := w.WriteRecord([]float64{1, 2, 3}, meta); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := Open(bytes.NewReader(buf.buf))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	d, gotMeta, err := r.ReadRecord()
	if err != nil {
		t.Fatalf("ReadRecord() error = %v", err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, d); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(meta, gotMeta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	if _, _, err := r.ReadRecord(); err != io.EOF {
		t.Errorf("ReadRecord() after last record error = %v, want io.EOF", err)
	}
}

func TestOpenRejectsBadTag(t *testing.T) {
	if _, err := Open(bytes.NewReader([]byte("NotRawDesc extra bytes here"))); err == nil {
		t.Error("expected error for bad tag")
	}
}
