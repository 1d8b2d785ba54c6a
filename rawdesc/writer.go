/*
NAME
  writer.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rawdesc

import (
	"io"

	"github.com/ausocean/hogdetect/config"
	"github.com/pkg/errors"
)

// Writer writes a RawDesc dump file. The destination must support Seek,
// so Close can rewrite the record count once every record has been
// written.
type Writer struct {
	w           io.WriteSeeker
	version     int32
	countOffset int64
	count       int64
}

// NewWriter writes the RawDesc header and serialized window for window,
// and returns a Writer ready to accept records.
func NewWriter(w io.WriteSeeker, version int32, window config.WindowSpec) (*Writer, error) {
	if !validVersion(version) {
		return nil, errors.Errorf("rawdesc: unsupported version %d", version)
	}

	header := make([]byte, tagBytes)
	copy(header, tag)
	if _, err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "rawdesc: writing tag")
	}
	if err := binaryWrite(w, version); err != nil {
		return nil, errors.Wrap(err, "rawdesc: writing version")
	}
	if err := writeWindowSpec(w, window); err != nil {
		return nil, errors.Wrap(err, "rawdesc: writing window spec")
	}

	countOffset, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "rawdesc: locating count offset")
	}
	if err := binaryWrite(w, int64(0)); err != nil { // placeholder, rewritten at Close
		return nil, errors.Wrap(err, "rawdesc: writing placeholder record count")
	}

	return &Writer{w: w, version: version, countOffset: countOffset}, nil
}

// WriteRecord appends one WindowDescriptor and, at version >= 110, its
// window geometry and scale, and at version >= 120 its source image
// filename.
func (rw *Writer) WriteRecord(desc []float64, meta RecordMeta) error {
	f32 := make([]float32, len(desc))
	for i, v := range desc {
		f32[i] = float32(v)
	}
	if err := binaryWrite(rw.w, int32(len(f32))); err != nil {
		return errors.Wrap(err, "rawdesc: writing record descriptor length")
	}
	if err := binaryWrite(rw.w, f32); err != nil {
		return errors.Wrap(err, "rawdesc: writing record descriptor")
	}

	if rw.version >= Version110 {
		for _, v := range []int32{int32(meta.X), int32(meta.Y), int32(meta.Width), int32(meta.Height)} {
			if err := binaryWrite(rw.w, v); err != nil {
				return errors.Wrap(err, "rawdesc: writing record geometry")
			}
		}
		if err := binaryWrite(rw.w, meta.Scale); err != nil {
			return errors.Wrap(err, "rawdesc: writing record scale")
		}
	}
	if rw.version >= Version120 {
		if err := writeString(rw.w, meta.Filename); err != nil {
			return errors.Wrap(err, "rawdesc: writing record filename")
		}
	}

	rw.count++
	return nil
}

// Close rewrites the record count now that every record is known, per
// §6's "rewritten at close" rule.
func (rw *Writer) Close() error {
	if _, err := rw.w.Seek(rw.countOffset, io.SeekStart); err != nil {
		return errors.Wrap(err, "rawdesc: seeking to count offset")
	}
	if err := binaryWrite(rw.w, rw.count); err != nil {
		return errors.Wrap(err, "rawdesc: rewriting record count")
	}
	return nil
}
