package main

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
)

// Count how many records cover each run length.
func RunHistogram(results []FileResult) map[int]int {
	hist := make(map[int]int)
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		for _, run := range results[i].Stats.Runs {
			hist[run]++
		}
	}
	return hist
}

// Scatter plot for X, Y ints, written as SVG.
func scatterIntMap(path string, title string, xname string, yname string, results map[int]int) error {
	if len(results) < 2 {
		return errors.Errorf("chart needs at least 2 points, have %d", len(results))
	}
	// Create sorted list
	keys := make([]int, 0, len(results))
	for i := range results {
		keys = append(keys, i)
	}
	sort.Ints(keys)

	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	for _, k := range keys {
		xvals = append(xvals, float64(k))
		yvals = append(yvals, float64(results[k]))
	}
	graph := chart.Chart{
		Title: title,
		XAxis: chart.XAxis{Name: xname},
		YAxis: chart.YAxis{Name: yname},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					DotWidth: 3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	fh, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := graph.Render(chart.SVG, fh); err != nil {
		fh.Close()
		return errors.Wrap(err, "render chart")
	}
	return errors.WithStack(fh.Close())
}

func WriteRunChart(path string, results []FileResult) error {
	return scatterIntMap(path, "Tile runs", "tiles per record", "records", RunHistogram(results))
}
