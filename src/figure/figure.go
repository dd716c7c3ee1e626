package figure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"io"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gharib85/cmistark/src/plot"
)

// Figure turns plot instructions into panel charts and stacks them
// vertically into one image. It implements plot.Composer.
type Figure struct {
	title  string
	width  int
	footer string
	out    io.Writer

	panels map[plot.Panel]*panel

	img image.Image
}

type panel struct {
	series     []chart.Series
	xlabel     string
	ylabel     string
	legend     bool
	minX, maxX float64
	minY, maxY float64
	haveRange  bool
}

// New creates a figure of the given pixel width. When out is non-nil,
// Render encodes the composed figure into it as PNG.
func New(title string, width int, out io.Writer) *Figure {
	if width < 400 {
		width = 400
	}
	return &Figure{
		title:  title,
		width:  width,
		out:    out,
		panels: make(map[plot.Panel]*panel),
	}
}

// SetFooter stamps a small annotation, e.g. the source file names, onto the
// bottom-left corner of the composed figure.
func (f *Figure) SetFooter(text string) { f.footer = text }

func (f *Figure) ensurePanel(p plot.Panel) *panel {
	pn, ok := f.panels[p]
	if !ok {
		pn = &panel{
			minX: math.MaxFloat64, maxX: -math.MaxFloat64,
			minY: math.MaxFloat64, maxY: -math.MaxFloat64,
		}
		f.panels[p] = pn
	}
	return pn
}

// AddCurve appends one curve to a panel. Empty series are dropped and
// single-sample series are padded to two points, since the chart library
// needs a non-degenerate x range.
func (f *Figure) AddCurve(p plot.Panel, x, y []float64, col drawing.Color, label string) {
	if len(x) == 0 || len(x) != len(y) {
		log.Warn().Int("x", len(x)).Int("y", len(y)).Str("label", label).Msg("dropping malformed series")
		return
	}
	if len(x) == 1 {
		x = append([]float64{x[0]}, x[0]+1)
		y = append([]float64{y[0]}, y[0])
	}
	pn := f.ensurePanel(p)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		pn.minX = math.Min(pn.minX, x[i])
		pn.maxX = math.Max(pn.maxX, x[i])
		pn.minY = math.Min(pn.minY, y[i])
		pn.maxY = math.Max(pn.maxY, y[i])
		pn.haveRange = true
	}
	pn.series = append(pn.series, chart.ContinuousSeries{
		Name:    label,
		XValues: x,
		YValues: y,
		Style:   lineStyle(col),
	})
}

// SetAxisLabels captions a panel's axes.
func (f *Figure) SetAxisLabels(p plot.Panel, xlabel, ylabel string) {
	pn := f.ensurePanel(p)
	pn.xlabel, pn.ylabel = xlabel, ylabel
}

// ShowLegend attaches a legend to the panel.
func (f *Figure) ShowLegend(p plot.Panel) { f.ensurePanel(p).legend = true }

// Render draws every panel that received curves in panel order, stacks them
// vertically and, when a writer was supplied at construction, encodes the
// result as PNG. The composed image stays available through Image.
func (f *Figure) Render() error {
	order := make([]plot.Panel, 0, len(f.panels))
	for p, pn := range f.panels {
		if len(pn.series) > 0 {
			order = append(order, p)
		}
	}
	if len(order) == 0 {
		return fmt.Errorf("figure: no curves to draw")
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	height := panelHeight(f.width)
	images := make([]image.Image, 0, len(order))
	for i, p := range order {
		title := ""
		if i == 0 {
			title = f.title
		}
		img, err := renderPanel(f.panels[p], title, f.width, height)
		if err != nil {
			return fmt.Errorf("figure: render panel %d: %w", int(p), err)
		}
		images = append(images, img)
	}

	total := image.NewRGBA(image.Rect(0, 0, f.width, height*len(images)))
	draw.Draw(total, total.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i, img := range images {
		r := image.Rect(0, i*height, f.width, (i+1)*height)
		draw.Draw(total, r, img, img.Bounds().Min, draw.Src)
	}
	if f.footer != "" {
		stampFooter(total, f.footer)
	}
	f.img = total

	if f.out != nil {
		if err := png.Encode(f.out, total); err != nil {
			return fmt.Errorf("figure: encode png: %w", err)
		}
	}
	return nil
}

// Image returns the composed figure, nil before Render.
func (f *Figure) Image() image.Image { return f.img }

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1.75,
		StrokeColor: col,
	}
}

// panelHeight keeps a roughly 3:1 aspect per panel, with sane bounds.
func panelHeight(width int) int {
	h := int(float32(width) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return h
}

func renderPanel(pn *panel, title string, width, height int) (image.Image, error) {
	var xAxis chart.XAxis
	var yAxis chart.YAxis
	xAxis.Name = pn.xlabel
	yAxis.Name = pn.ylabel
	if pn.haveRange {
		nMin, nMax := niceAxisBounds(pn.minX, pn.maxX)
		xAxis.Range = &chart.ContinuousRange{Min: nMin, Max: nMax}
		xAxis.Ticks = niceTicks(nMin, nMax, 8)
		nMin, nMax = niceAxisBounds(pn.minY, pn.maxY)
		yAxis.Range = &chart.ContinuousRange{Min: nMin, Max: nMax}
		yAxis.Ticks = niceTicks(nMin, nMax, 6)
	}
	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     pn.series,
		Width:      width,
		Height:     height,
	}
	if pn.legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// stampFooter draws a small annotation badge near the bottom-left corner.
func stampFooter(rgba *image.RGBA, text string) {
	b := rgba.Bounds()
	face := basicfont.Face7x13
	pad := 6
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
