/*
NAME
  format.go

DESCRIPTION
  format.go defines the "RawDesc" binary dump format of spec.md §6, used
  for training external linear SVMs and hard-example mining: an 8-byte
  ASCII tag, a 4-byte version in {100, 110, 120}, a serialized WindowSpec,
  a record count (rewritten at Close once all records are known), and a
  per-record layout that grows with version. Recovered from
  original_source's app/rawdescio.{h,cpp}, app/dump_rhog.cpp and
  app/dump4svmlearn.cpp, which this package's reader/writer pair replace;
  training itself remains out of scope (SPEC_FULL.md §5).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rawdesc reads and writes the RawDesc WindowDescriptor dump
// format.
package rawdesc

import "encoding/binary"

const (
	tag       = "RawDesc"
	tagBytes  = 8 // 8-byte ASCII tag, null-padded
	Version100 = 100
	Version110 = 110
	Version120 = 120
)

// order is the byte order used throughout the RawDesc format.
var order = binary.LittleEndian

// RecordMeta carries the per-record fields added at version >= 110 (and
// >= 120). Fields unused at a given version are simply not written/read.
type RecordMeta struct {
	X, Y, Width, Height int
	Scale               float64
	Filename            string // version >= 120 only
}

func validVersion(v int32) bool {
	return v == Version100 || v == Version110 || v == Version120
}
