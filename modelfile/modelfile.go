/*
NAME
  modelfile.go

DESCRIPTION
  modelfile.go loads the linear-model file format described in spec.md
  §6: a required version string ("V6.01"), an integer version (>=200), a
  kernel type (0 = linear; anything else is rejected), a feature length
  L, a bias, and a weight vector of length L+1 (the file format carries
  one trailing element beyond the L classifier weights; it is read and
  discarded, not folded into the model).

  This is one of the "external collaborators" spec.md scopes the core
  out of (§1) but whose loader SPEC_FULL.md still wires up so the module
  is runnable end to end.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package modelfile loads LinearModel files for the scorer package.
package modelfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ausocean/hogdetect/scorer"
	"github.com/pkg/errors"
)

const (
	wantVersionString = "V6.01"
	minVersion        = 200
	linearKernel      = 0
)

// Load reads a LinearModel file from r.
func Load(r io.Reader) (scorer.Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	fields := []string{"version string", "version", "kernel type", "feature length", "bias", "weights"}
	vals := make(map[string]string, len(fields))
	for _, name := range fields {
		if !sc.Scan() {
			return scorer.Model{}, errors.Errorf("modelfile: unexpected EOF reading %s", name)
		}
		vals[name] = strings.TrimSpace(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return scorer.Model{}, errors.Wrap(err, "modelfile: reading file")
	}

	if vals["version string"] != wantVersionString {
		return scorer.Model{}, errors.Errorf("modelfile: version string mismatch: want %q, got %q", wantVersionString, vals["version string"])
	}

	version, err := strconv.Atoi(vals["version"])
	if err != nil {
		return scorer.Model{}, errors.Wrap(err, "modelfile: parsing integer version")
	}
	if version < minVersion {
		return scorer.Model{}, errors.Errorf("modelfile: version %d below minimum %d", version, minVersion)
	}

	kernel, err := strconv.Atoi(vals["kernel type"])
	if err != nil {
		return scorer.Model{}, errors.Wrap(err, "modelfile: parsing kernel type")
	}
	if kernel != linearKernel {
		return scorer.Model{}, errors.Errorf("modelfile: unsupported kernel type: want %d (linear), got %d", linearKernel, kernel)
	}

	length, err := strconv.Atoi(vals["feature length"])
	if err != nil {
		return scorer.Model{}, errors.Wrap(err, "modelfile: parsing feature length")
	}
	bias, err := strconv.ParseFloat(vals["bias"], 64)
	if err != nil {
		return scorer.Model{}, errors.Wrap(err, "modelfile: parsing bias")
	}

	fieldsW := strings.Fields(vals["weights"])
	if len(fieldsW) != length+1 {
		return scorer.Model{}, errors.Errorf("modelfile: expected %d weight values (L+1), got %d", length+1, len(fieldsW))
	}
	weights := make([]float64, length)
	for i := 0; i < length; i++ {
		w, err := strconv.ParseFloat(fieldsW[i], 64)
		if err != nil {
			return scorer.Model{}, errors.Wrapf(err, "modelfile: parsing weight %d", i)
		}
		weights[i] = w
	}
	// fieldsW[length] is the file format's trailing L+1'th element; it is
	// not part of the classifier weight vector and is intentionally
	// discarded.

	return scorer.Model{Weights: weights, Bias: bias}, nil
}
