// What it does:
//
// densityplot reads RawDetections from a CSV file (x, y, scale, score
// columns), runs mean-shift mode-finding over them, and renders the raw
// detections' top-lefts alongside the discovered FinalDetections'
// top-lefts as a scatter plot; the kernel-density surface itself is not
// drawn. It's a diagnostic for tuning the SigmaX/SigmaY/SigmaScale
// bandwidths of §4.4, not part of the detection pipeline itself.

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/nms"
)

func main() {
	csvPath := flag.String("csv", "", "path to a CSV of x,y,scale,score raw detections")
	outPath := flag.String("out", "densityplot.png", "output PNG path")
	sigmaX := flag.Float64("sigma-x", 8, "mean-shift spatial bandwidth, x")
	sigmaY := flag.Float64("sigma-y", 16, "mean-shift spatial bandwidth, y")
	sigmaScale := flag.Float64("sigma-scale", 0.3, "mean-shift scale bandwidth")
	densityThreshold := flag.Float64("density-threshold", 0.01, "final density threshold")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "densityplot: -csv is required")
		os.Exit(1)
	}

	raw, err := readRaw(*csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "densityplot:", err)
		os.Exit(1)
	}

	cfg := &config.DetectorConfig{
		SigmaX: *sigmaX, SigmaY: *sigmaY, SigmaScale: *sigmaScale,
		DensityThreshold: *densityThreshold,
		Transfer:         config.TransferNone,
		ModeEpsilon:      1e-5,
		MaxModeIters:     100,
	}
	final := nms.Find(raw, cfg)

	if err := render(raw, final, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "densityplot:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d raw points, %d modes\n", *outPath, len(raw), len(final))
}

func readRaw(path string) ([]nms.RawDetection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var raw []nms.RawDetection
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		x, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		y, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		scale, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			continue
		}
		raw = append(raw, nms.RawDetection{X: x, Y: y, Scale: scale, Score: score})
	}
	return raw, nil
}

func render(raw []nms.RawDetection, final []nms.FinalDetection, outPath string) error {
	p := plot.New()
	p.Title.Text = "mean-shift mode-finding"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	rawPts := make(plotter.XYs, len(raw))
	for i, r := range raw {
		rawPts[i].X = float64(r.X)
		rawPts[i].Y = float64(r.Y)
	}
	rawScatter, err := plotter.NewScatter(rawPts)
	if err != nil {
		return err
	}
	rawScatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(rawScatter)

	modePts := make(plotter.XYs, len(final))
	for i, d := range final {
		modePts[i].X = float64(d.X)
		modePts[i].Y = float64(d.Y)
	}
	modeScatter, err := plotter.NewScatter(modePts)
	if err != nil {
		return err
	}
	modeScatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(modeScatter)

	p.Legend.Add("raw detections", rawScatter)
	p.Legend.Add("fused modes", modeScatter)

	return p.Save(8*vg.Inch, 6*vg.Inch, outPath)
}
