/*
NAME
  watchdetect

DESCRIPTION
  watchdetect is an always-on daemon that watches a directory for newly
  written image files and runs a detection pass over each one as it
  arrives, logging the results to a rotated file. It signals readiness
  to systemd once its detection engine is built.

AUTHORS
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package watchdetect is a directory-watching daemon wrapper around the
// detect package, in the always-on shape of cmd/looper.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/go-systemd/daemon"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/detect"
	"github.com/ausocean/hogdetect/gradient"
	"github.com/ausocean/hogdetect/modelfile"
	"github.com/ausocean/hogdetect/scorer"
	"github.com/ausocean/utils/logging"
)

const pkg = "watchdetect: "

// Logging related constants, matching the cmd/rv and cmd/looper rotation
// policy.
const (
	logPath      = "/var/log/watchdetect/watchdetect.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

var imageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

func main() {
	watchDir := flag.String("watch-dir", "", "directory to watch for new images")
	modelPath := flag.String("model", "", "path to the LinearModel file")
	scoreThreshold := flag.Float64("score-threshold", 0, "raw classifier score threshold")
	densityThreshold := flag.Float64("density-threshold", 0.01, "mean-shift mode density threshold")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *watchDir == "" || *modelPath == "" {
		log.Fatal(pkg + "-watch-dir and -model are required")
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

	e, err := buildEngine(model, *scoreThreshold, *densityThreshold, log)
	if err != nil {
		log.Fatal(pkg+"could not build detection engine", "error", err.Error())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(pkg+"could not create watcher", "error", err.Error())
	}
	defer watcher.Close()
	if err := watcher.Add(*watchDir); err != nil {
		log.Fatal(pkg+"could not watch directory", "error", err.Error(), "dir", *watchDir)
	}

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warning(pkg+"could not notify systemd of readiness", "error", err.Error())
	} else if ok {
		log.Debug("systemd notified of readiness")
	}

	log.Info("watching for new images", "dir", *watchDir)
	run(watcher, e, log)
}

// buildEngine constructs the DetectorConfig/Engine pair watchdetect runs
// against every incoming image, using the same window recipe as
// cmd/windetect.
func buildEngine(model scorer.Model, scoreThreshold, densityThreshold float64, log logging.Logger) (*detect.Engine, error) {
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
		StartScale:       1,
		Ratio:            1.05,
		ScoreThreshold:   scoreThreshold,
		DensityThreshold: densityThreshold,
		SigmaX:           8,
		SigmaY:           16,
		SigmaScale:       0.3,
		Logger:           log,
	}
	return detect.NewEngine(cfg, model)
}

// run drains watcher events until the process is killed, running a
// detection pass over each newly written image file.
func run(watcher *fsnotify.Watcher, e *detect.Engine, log logging.Logger) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !imageExt[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			handle(e, ev.Name, log)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error(pkg+"watcher error", "error", err.Error())
		}
	}
}

func handle(e *detect.Engine, path string, log logging.Logger) {
	img, err := loadImage(path)
	if err != nil {
		log.Warning(pkg+"could not load image, skipping", "path", path, "error", err.Error())
		return
	}
	found, err := e.Detect(img)
	if err != nil {
		log.Error(pkg+"detection pass failed", "path", path, "error", err.Error())
		return
	}
	log.Info("detection pass complete", "path", path, "count", len(found))
	for _, d := range found {
		log.Info("detection", "path", path, "score", d.Score, "scale", d.Scale, "x", d.X, "y", d.Y, "w", d.Width, "h", d.Height)
	}
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
