/*
NAME
  windetect

DESCRIPTION
  windetect runs one end-to-end HOG detection pass over a single image
  file and prints the fused detections to stdout.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package windetect is a CLI wrapper around the detect package for
// running a single detection pass offline.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/detect"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/ausocean/hogdetect/modelfile"
	"github.com/ausocean/utils/logging"
)

const pkg = "windetect: "

func main() {
	imgPath := flag.String("image", "", "path to the image to scan")
	modelPath := flag.String("model", "", "path to the LinearModel file")
	startScale := flag.Float64("start-scale", 1, "pyramid start scale")
	ratio := flag.Float64("ratio", 1.05, "pyramid scale ratio")
	scoreThreshold := flag.Float64("score-threshold", 0, "raw classifier score threshold")
	densityThreshold := flag.Float64("density-threshold", 0.01, "mean-shift mode density threshold")
	sigmaX := flag.Float64("sigma-x", 8, "mean-shift spatial bandwidth, x")
	sigmaY := flag.Float64("sigma-y", 16, "mean-shift spatial bandwidth, y")
	sigmaScale := flag.Float64("sigma-scale", 0.3, "mean-shift scale bandwidth")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := logging.Info
	if *verbose {
		level = logging.Debug
	}
	log := logging.New(level, os.Stderr, true)

	if *imgPath == "" || *modelPath == "" {
		log.Fatal(pkg + "-image and -model are required")
	}

	img, err := loadImage(*imgPath)
	if err != nil {
		log.Fatal(pkg+"could not load image", "error", err.Error())
	}

	mf, err := os.Open(*modelPath)
	if err != nil {
		log.Fatal(pkg+"could not open model file", "error", err.Error())
	}
	defer mf.Close()
	model, err := modelfile.Load(mf)
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
		Window:           window,
		StartScale:       *startScale,
		Ratio:            *ratio,
		ScoreThreshold:   *scoreThreshold,
		DensityThreshold: *densityThreshold,
		SigmaX:           *sigmaX,
		SigmaY:           *sigmaY,
		SigmaScale:       *sigmaScale,
		Logger:           log,
	}

	log.Debug("building detection engine")
	e, err := detect.NewEngine(cfg, model)
	if err != nil {
		log.Fatal(pkg+"could not build detection engine", "error", err.Error())
	}

	log.Info("running detection pass", "image", *imgPath)
	found, err := e.Detect(img)
	if err != nil {
		log.Fatal(pkg+"detection pass failed", "error", err.Error())
	}

	log.Info("detection pass complete", "count", len(found))
	for _, d := range found {
		fmt.Printf("score=%.4f scale=%.4f x=%d y=%d w=%d h=%d\n", d.Score, d.Scale, d.X, d.Y, d.Width, d.Height)
	}
}

// loadImage decodes an image file with the stdlib image package and
// converts it to a gradient.Image (row-major, 3-channel RGB, tightly
// packed). Image decoding itself is out of this module's scope (§5
// Non-goals); this is a thin adaptor so windetect can run end to end.
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
