/*
NAME
  reader.go

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

// Reader reads a RawDesc dump file written by Writer.
type Reader struct {
	r       io.Reader
	Version int32
	Window  config.WindowSpec
	Count   int64

	read int64
}

// Open reads the RawDesc header, version, serialized WindowSpec and
// record count from r, and returns a Reader ready for ReadRecord.
func Open(r io.Reader) (*Reader, error) {
	got := make([]byte, tagBytes)
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, errors.Wrap(err, "rawdesc: reading tag")
	}
	want := make([]byte, tagBytes)
	copy(want, tag)
	for i := range want {
		if got[i] != want[i] {
			return nil, errors.New("rawdesc: bad tag, not a RawDesc file")
		}
	}

	var version int32
	if err := binaryRead(r, &version); err != nil {
		return nil, errors.Wrap(err, "rawdesc: reading version")
	}
	if !validVersion(version) {
		return nil, errors.Errorf("rawdesc: unsupported version %d", version)
	}

	window, err := readWindowSpec(r)
	if err != nil {
		return nil, errors.Wrap(err, "rawdesc: reading window spec")
	}

	var count int64
	if err := binaryRead(r, &count); err != nil {
		return nil, errors.Wrap(err, "rawdesc: reading record count")
	}

	return &Reader{r: r, Version: version, Window: window, Count: count}, nil
}

// ReadRecord reads the next descriptor and its RecordMeta (version-gated
// fields left zero where the format doesn't carry them). It returns
// io.EOF once Count records have been read.
func (rr *Reader) ReadRecord() ([]float64, RecordMeta, error) {
	if rr.read >= rr.Count {
		return nil, RecordMeta{}, io.EOF
	}

	var length int32
	if err := binaryRead(rr.r, &length); err != nil {
		return nil, RecordMeta{}, errors.Wrap(err, "rawdesc: reading record descriptor length")
	}
	f32 := make([]float32, length)
	if err := binaryRead(rr.r, f32); err != nil {
		return nil, RecordMeta{}, errors.Wrap(err, "rawdesc: reading record descriptor")
	}
	desc := make([]float64, length)
	for i, v := range f32 {
		desc[i] = float64(v)
	}

	var meta RecordMeta
	if rr.Version >= Version110 {
		var x, y, width, height int32
		for _, v := range []*int32{&x, &y, &width, &height} {
			if err := binaryRead(rr.r, v); err != nil {
				return nil, RecordMeta{}, errors.Wrap(err, "rawdesc: reading record geometry")
			}
		}
		meta.X, meta.Y, meta.Width, meta.Height = int(x), int(y), int(width), int(height)
		if err := binaryRead(rr.r, &meta.Scale); err != nil {
			return nil, RecordMeta{}, errors.Wrap(err, "rawdesc: reading record scale")
		}
	}
	if rr.Version >= Version120 {
		name, err := readString(rr.r)
		if err != nil {
			return nil, RecordMeta{}, errors.Wrap(err, "rawdesc: reading record filename")
		}
		meta.Filename = name
	}

	rr.read++
	return desc, meta, nil
}
