/*
NAME
  serialize.go

DESCRIPTION
  serialize.go holds the WindowSpec (de)serialization shared by Writer and
  Reader, and the small binary.Write/Read wrappers that enforce order.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rawdesc

import (
	"encoding/binary"
	"io"

	"github.com/ausocean/hogdetect/config"
	"github.com/pkg/errors"
)

func binaryWrite(w io.Writer, v interface{}) error {
	return binary.Write(w, order, v)
}

func binaryRead(r io.Reader, v interface{}) error {
	return binary.Read(r, order, v)
}

// writeString writes a length-prefixed (int32) ASCII string.
func writeString(w io.Writer, s string) error {
	if err := binaryWrite(w, int32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// readString reads a length-prefixed (int32) ASCII string.
func readString(r io.Reader) (string, error) {
	var n int32
	if err := binaryRead(r, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// writeWindowSpec serializes the window's extent, stride and every
// BlockSpec together with its precomputed block-offset grid, in the
// order a Reader can reconstruct a usable config.WindowSpec from.
func writeWindowSpec(w io.Writer, window config.WindowSpec) error {
	for _, v := range []int32{int32(window.Width), int32(window.Height), int32(window.StrideX), int32(window.StrideY)} {
		if err := binaryWrite(w, v); err != nil {
			return err
		}
	}
	if err := binaryWrite(w, int32(len(window.Blocks))); err != nil {
		return err
	}
	for i, b := range window.Blocks {
		if err := writeBlockSpec(w, b); err != nil {
			return errors.Wrapf(err, "rawdesc: block %d", i)
		}
		offs := window.BlockOffsets[i]
		if err := binaryWrite(w, int32(len(offs))); err != nil {
			return err
		}
		for _, off := range offs {
			if err := binaryWrite(w, int32(off.X)); err != nil {
				return err
			}
			if err := binaryWrite(w, int32(off.Y)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBlockSpec(w io.Writer, b config.BlockSpec) error {
	ints := []int32{int32(b.CellX), int32(b.CellY), int32(b.CellsX), int32(b.CellsY), int32(b.StrideX), int32(b.StrideY), int32(b.Bins)}
	for _, v := range ints {
		if err := binaryWrite(w, v); err != nil {
			return err
		}
	}
	var semi byte
	if b.SemiCircular {
		semi = 1
	}
	if err := binaryWrite(w, semi); err != nil {
		return err
	}
	floats := []float64{b.WeightSigma, b.SmoothSigma}
	for _, v := range floats {
		if err := binaryWrite(w, v); err != nil {
			return err
		}
	}
	if err := binaryWrite(w, int32(b.Normalizer)); err != nil {
		return err
	}
	return binaryWrite(w, int32(b.Preprocessor))
}

// readWindowSpec is the Reader-side counterpart of writeWindowSpec.
func readWindowSpec(r io.Reader) (config.WindowSpec, error) {
	var width, height, strideX, strideY int32
	for _, v := range []*int32{&width, &height, &strideX, &strideY} {
		if err := binaryRead(r, v); err != nil {
			return config.WindowSpec{}, err
		}
	}
	var numBlocks int32
	if err := binaryRead(r, &numBlocks); err != nil {
		return config.WindowSpec{}, err
	}

	window := config.WindowSpec{
		Width: int(width), Height: int(height), StrideX: int(strideX), StrideY: int(strideY),
		Blocks:       make([]config.BlockSpec, numBlocks),
		BlockOffsets: make([][]config.BlockOffset, numBlocks),
	}
	for i := range window.Blocks {
		b, err := readBlockSpec(r)
		if err != nil {
			return config.WindowSpec{}, errors.Wrapf(err, "rawdesc: block %d", i)
		}
		window.Blocks[i] = b

		var numOffs int32
		if err := binaryRead(r, &numOffs); err != nil {
			return config.WindowSpec{}, err
		}
		offs := make([]config.BlockOffset, numOffs)
		for j := range offs {
			var x, y int32
			if err := binaryRead(r, &x); err != nil {
				return config.WindowSpec{}, err
			}
			if err := binaryRead(r, &y); err != nil {
				return config.WindowSpec{}, err
			}
			offs[j] = config.BlockOffset{X: int(x), Y: int(y)}
		}
		window.BlockOffsets[i] = offs
	}
	return window, nil
}

func readBlockSpec(r io.Reader) (config.BlockSpec, error) {
	var ints [7]int32
	for i := range ints {
		if err := binaryRead(r, &ints[i]); err != nil {
			return config.BlockSpec{}, err
		}
	}
	var semi byte
	if err := binaryRead(r, &semi); err != nil {
		return config.BlockSpec{}, err
	}
	var weightSigma, smoothSigma float64
	if err := binaryRead(r, &weightSigma); err != nil {
		return config.BlockSpec{}, err
	}
	if err := binaryRead(r, &smoothSigma); err != nil {
		return config.BlockSpec{}, err
	}
	var normalizer, preprocessor int32
	if err := binaryRead(r, &normalizer); err != nil {
		return config.BlockSpec{}, err
	}
	if err := binaryRead(r, &preprocessor); err != nil {
		return config.BlockSpec{}, err
	}
	return config.BlockSpec{
		CellX: int(ints[0]), CellY: int(ints[1]), CellsX: int(ints[2]), CellsY: int(ints[3]),
		StrideX: int(ints[4]), StrideY: int(ints[5]), Bins: int(ints[6]),
		SemiCircular: semi != 0,
		WeightSigma:  weightSigma, SmoothSigma: smoothSigma,
		Normalizer:   config.Normalizer(normalizer),
		Preprocessor: config.Preprocessor(preprocessor),
	}, nil
}
