/*
NAME
  annotation.go

DESCRIPTION
  Package annotation parses the human-written per-image ground-truth
  annotation format described in spec.md §6: an "Image filename" line, an
  "Image size (X x Y x C)" line, and one "Bounding box for object N ..."
  line per labelled object. Recovered from original_source's
  app/segobj.h (readPascalAnnotations), which this package's Parse
  replaces; bounding boxes are stored 0-based and inclusive internally,
  converted from the file's 1-based inclusive convention on read.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/
package annotation

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Box is a 0-based, inclusive bounding box: pixel (Xmax, Ymax) is part of
// the box, matching the rest of this module's pixel-coordinate convention.
type Box struct {
	Label                  string
	Xmin, Ymin, Xmax, Ymax int
}

// Width and Height return the box's pixel extent.
func (b Box) Width() int  { return b.Xmax - b.Xmin + 1 }
func (b Box) Height() int { return b.Ymax - b.Ymin + 1 }

// Annotation is the parsed content of one ground-truth file.
type Annotation struct {
	ImageFile     string
	Width, Height int
	Boxes         []Box
}

var (
	sizeRe = regexp.MustCompile(`Image size \(X x Y x C\)\s*:\s*(\d+)\s*x\s*(\d+)\s*x\s*(\d+)`)
	boxRe  = regexp.MustCompile(`Bounding box for object\s+\d+\s+"([^"]*)"\s*:?\s*\(?\s*(\d+)\s*,\s*(\d+)\s*\)\s*-\s*\(?\s*(\d+)\s*,\s*(\d+)\s*\)?`)
)

const filenameHeader = "Image filename"

// Parse reads one annotation file from r.
func Parse(r io.Reader) (Annotation, error) {
	var a Annotation
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if i := strings.Index(line, filenameHeader); i >= 0 {
			rest := line[i+len(filenameHeader):]
			rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
			a.ImageFile = rest
			continue
		}

		if m := sizeRe.FindStringSubmatch(line); m != nil {
			w, err := strconv.Atoi(m[1])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing image width")
			}
			h, err := strconv.Atoi(m[2])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing image height")
			}
			a.Width, a.Height = w, h
			continue
		}

		if m := boxRe.FindStringSubmatch(line); m != nil {
			if a.Width == 0 || a.Height == 0 {
				return Annotation{}, errors.New("annotation: bounding box line precedes image size")
			}
			xmin, err := strconv.Atoi(m[2])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing Xmin")
			}
			ymin, err := strconv.Atoi(m[3])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing Ymin")
			}
			xmax, err := strconv.Atoi(m[4])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing Xmax")
			}
			ymax, err := strconv.Atoi(m[5])
			if err != nil {
				return Annotation{}, errors.Wrap(err, "annotation: parsing Ymax")
			}
			if xmin > xmax {
				xmin, xmax = xmax, xmin
			}
			if ymin > ymax {
				ymin, ymax = ymax, ymin
			}
			// File coordinates are 1-based inclusive; convert to this
			// module's 0-based inclusive convention.
			xmin--
			ymin--
			xmax--
			ymax--

			if xmin < 0 {
				xmin = 0
			}
			if ymin < 0 {
				ymin = 0
			}
			if xmax >= a.Width {
				xmax = a.Width - 1
			}
			if ymax >= a.Height {
				ymax = a.Height - 1
			}

			a.Boxes = append(a.Boxes, Box{
				Label: strings.ToLower(m[1]),
				Xmin:  xmin, Ymin: ymin, Xmax: xmax, Ymax: ymax,
			})
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return Annotation{}, errors.Wrap(err, "annotation: reading file")
	}
	return a, nil
}
