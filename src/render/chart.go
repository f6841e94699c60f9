// Package render is the chart-rendering collaborator: it turns the
// declarative trend and distribution scenes into PNG images using go-chart,
// with text annotations overlaid on the raster. The core never inspects the
// produced pixels.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/awalczyk/SimSeriesCompare/src/analysis"
	"github.com/awalczyk/SimSeriesCompare/src/logging"
)

// Default artifact size (pixels).
const (
	DefaultWidth  = 1280
	DefaultHeight = 960
)

const violinHalfWidth = 0.4

// Trend renders the trend-overlay scene to an image.
func Trend(scene analysis.TrendScene, width, height int) (image.Image, error) {
	if len(scene.Lines) == 0 {
		return nil, fmt.Errorf("trend scene has no lines")
	}
	series := make([]chart.Series, 0, len(scene.Lines))
	for _, line := range scene.Lines {
		series = append(series, chart.ContinuousSeries{
			Name:    line.Name,
			XValues: line.X,
			YValues: line.Y,
			Style: chart.Style{
				StrokeColor: groupColor(line.ColorIndex),
				StrokeWidth: 1.5,
			},
		})
	}
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		XAxis:      chart.XAxis{Name: scene.XTitle},
		YAxis:      chart.YAxis{Name: scene.YTitle},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode trend chart: %w", err)
	}
	rgba := toDrawable(img)
	drawStatsBlock(rgba, scene.Annotation, statsTextColor)
	return rgba, nil
}

// Distribution renders the violin-comparison scene to an image: one mirrored
// KDE outline plus a mean bar per trace, per-trace stats in the trace color,
// and the adjacent-pair significance row below the plotting area.
func Distribution(scene analysis.DistributionScene, width, height int) (image.Image, error) {
	if len(scene.Traces) == 0 {
		return nil, fmt.Errorf("distribution scene has no traces")
	}
	n := len(scene.Traces)
	series := make([]chart.Series, 0, 3*n)
	for _, tr := range scene.Traces {
		col := groupColor(tr.ColorIndex)
		center := float64(tr.Position)
		xs, ys := violinOutline(tr.Samples, center, violinHalfWidth)
		if xs == nil {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 1.5,
			},
		})
		// Mean bar across the violin body.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{center - violinHalfWidth*0.6, center + violinHalfWidth*0.6},
			YValues: []float64{tr.Mean, tr.Mean},
			Style: chart.Style{
				StrokeColor:     col,
				StrokeWidth:     1.2,
				StrokeDashArray: []float64{4, 3},
			},
		})
		series = append(series, chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: center + 0.3,
				YValue: maxOf(tr.Samples),
				Label:  fmt.Sprintf("μ=%.2f σ=%.2f", tr.Mean, tr.Std),
			}},
			Style: chart.Style{
				StrokeColor: col,
				FontColor:   col,
			},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("distribution scene has no drawable traces")
	}

	ticks := make([]chart.Tick, 0, n)
	for i, label := range scene.TickLabels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	// go-chart needs ticks covering the full range bounds.
	ticks = append([]chart.Tick{{Value: -0.5, Label: ""}}, append(ticks, chart.Tick{Value: float64(n) - 0.5, Label: ""})...)

	yAxis := chart.YAxis{Name: scene.YTitle}
	if scene.HasYRange {
		yAxis.Range = &chart.ContinuousRange{Min: scene.YMin, Max: scene.YMax}
	}
	padBottom := 48
	if len(scene.Comparisons) > 0 {
		padBottom = 84
	}
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis: chart.XAxis{
			Name:  scene.XTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis:  yAxis,
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render distribution chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode distribution chart: %w", err)
	}
	rgba := toDrawable(img)
	drawStatsBlock(rgba, scene.Annotation, statsTextColor)
	drawComparisonRow(rgba, scene, n)
	return rgba, nil
}

// drawComparisonRow places the adjacent-pair test results under the plot
// area, centered between the two violins each compares. Red marks p < 0.05.
func drawComparisonRow(dst *image.RGBA, scene analysis.DistributionScene, n int) {
	if len(scene.Comparisons) == 0 {
		return
	}
	b := dst.Bounds()
	// Approximate plot box: go-chart reserves room for the y-axis on the left
	// and a small right margin; exact bounds are not exposed after render.
	plotLeft := b.Min.X + 60
	plotRight := b.Max.X - 20
	plotW := plotRight - plotLeft
	y := b.Max.Y - 16
	for _, c := range scene.Comparisons {
		// Boundary between violins c.LeftIndex and c.RightIndex sits at
		// x = leftIndex + 0.5 within the [-0.5, n-0.5] data range.
		frac := (float64(c.LeftIndex) + 1.0) / float64(n)
		cx := plotLeft + int(frac*float64(plotW))
		col := neutralColor
		text := fmt.Sprintf("%d-%d: p=%.3g", c.LeftIndex+1, c.RightIndex+1, c.PValue)
		if c.Significant {
			col = significantColor
			text += " *"
		}
		drawCenteredString(dst, cx, y, text, col)
	}
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// WritePNG encodes the image to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	logging.Infof("[render] wrote %s", path)
	return nil
}
