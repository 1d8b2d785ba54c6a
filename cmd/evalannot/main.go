/*
NAME
  evalannot

DESCRIPTION
  evalannot runs a detection pass over an image and scores the resulting
  FinalDetections against a human-written ground-truth annotation file,
  matching each detection to its best-IoU ground-truth box and reporting
  precision/recall at a configurable IoU threshold.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package evalannot scores detect.Engine output against annotation
// ground truth.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ausocean/hogdetect/annotation"
	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/detect"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/ausocean/hogdetect/modelfile"
	"github.com/ausocean/hogdetect/nms"
	"github.com/ausocean/utils/logging"
)

const pkg = "evalannot: "

func main() {
	imgPath := flag.String("image", "", "path to the image to scan")
	annotPath := flag.String("annotation", "", "path to the ground-truth annotation file")
	modelPath := flag.String("model", "", "path to the LinearModel file")
	iouThreshold := flag.Float64("iou-threshold", 0.5, "minimum IoU to count a detection as a match")
	flag.Parse()

	log := logging.New(logging.Info, os.Stderr, true)

	if *imgPath == "" || *annotPath == "" || *modelPath == "" {
		log.Fatal(pkg + "-image, -annotation and -model are required")
	}

	img, err := loadImage(*imgPath)
	if err != nil {
		log.Fatal(pkg+"could not load image", "error", err.Error())
	}

	af, err := os.Open(*annotPath)
	if err != nil {
		log.Fatal(pkg+"could not open annotation file", "error", err.Error())
	}
	truth, err := annotation.Parse(af)
	af.Close()
	if err != nil {
		log.Fatal(pkg+"could not parse annotation file", "error", err.Error())
	}

	mf, err := os.Open(*modelPath)
	if err != nil {
		log.Fatal(pkg+"could not open model file", "error", err.Error())
	}
	model, err := modelfile.Load(mf)
	mf.Close()
	if err != nil {
		log.Fatal(pkg+"could not load model", "error", err.Error())
	}

	b := config.BlockSpec{
		CellX: 8, CellY: 8, CellsX: 2, CellsY: 2, StrideX: 8, StrideY: 8,
		Bins: 9, Normalizer: config.NormL2Hys, Preprocessor: config.RGBGrad,
	}
	windowW, windowH := 64, 128
	window := config.WindowSpec{
		Width: windowW, Height: windowH, StrideX: 8, StrideY: 8,
		Blocks:        []config.BlockSpec{b},
		BlockOffsets:  [][]config.BlockOffset{config.NewRegularBlockGrid(b, windowW, windowH)},
		CacheBudgetMB: 16,
	}
	cfg := &config.DetectorConfig{
		Window: window, StartScale: 1, Ratio: 1.05,
		SigmaX: 8, SigmaY: 16, SigmaScale: 0.3, DensityThreshold: 0.01,
		Logger: log,
	}

	e, err := detect.NewEngine(cfg, model)
	if err != nil {
		log.Fatal(pkg+"could not build detection engine", "error", err.Error())
	}

	found, err := e.Detect(img)
	if err != nil {
		log.Fatal(pkg+"detection pass failed", "error", err.Error())
	}

	tp, fp, fn := score(found, truth.Boxes, *iouThreshold)
	var precision, recall float64
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}

	fmt.Printf("detections=%d ground-truth=%d tp=%d fp=%d fn=%d precision=%.4f recall=%.4f\n",
		len(found), len(truth.Boxes), tp, fp, fn, precision, recall)
}

// score greedily matches each detection to its best-IoU unmatched
// ground-truth box, counting a match above threshold as a true positive.
func score(found []nms.FinalDetection, truth []annotation.Box, threshold float64) (tp, fp, fn int) {
	matched := make([]bool, len(truth))
	for _, d := range found {
		db := annotation.Box{Xmin: d.X, Ymin: d.Y, Xmax: d.X + d.Width - 1, Ymax: d.Y + d.Height - 1}

		best := -1
		bestIoU := 0.0
		for i, t := range truth {
			if matched[i] {
				continue
			}
			if iou := annotation.IoU(db, t); iou > bestIoU {
				bestIoU = iou
				best = i
			}
		}
		if best >= 0 && bestIoU >= threshold {
			matched[best] = true
			tp++
		} else {
			fp++
		}
	}
	for _, m := range matched {
		if !m {
			fn++
		}
	}
	return tp, fp, fn
}

func loadImage(path string) (gradient.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return gradient.Image{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return gradient.Image{}, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			i += 3
		}
	}
	return gradient.Image{Pix: pix, Width: w, Height: h}, nil
}
