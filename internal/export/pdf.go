package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	// DefaultStep is the sampling interval used when step <= 0.
	DefaultStep = 1.0
	maxSamples  = 240

	margin      = 10.0
	sketchWidth = 120.0
	pageBottom  = 277.0
)

// Options sizes the storyboard.
type Options struct {
	// Step is the interval between sampled frames, in seconds.
	Step float64
	// BoardWidth and BoardHeight are the board extents in board units.
	BoardWidth  float64
	BoardHeight float64
}

// WriteStoryboard renders a as a PDF: a keyframe summary, a schematic of
// each keyframe and a table of sampled player positions.
func WriteStoryboard(w io.Writer, a anim.Animation, opts Options) error {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.BoardWidth <= 0 {
		opts.BoardWidth = state.BoardWidth
	}
	if opts.BoardHeight <= 0 {
		opts.BoardHeight = state.BoardHeight
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(a.Name, true)
	p.SetMargins(margin, margin, margin)
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.AddPage()

	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(0, 10, tr(titleOf(a)), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, fmt.Sprintf("duration %.2fs, loop %t, %d keyframes", a.Duration, a.Loop, len(a.Keyframes)), "", 1, "L", false, 0, "")
	p.Ln(4)

	sorted := a.Sorted()
	keyframeTable(p, sorted)
	for i, k := range sorted {
		sketch(p, tr, fmt.Sprintf("Keyframe %d at %.2fs", i+1, k.Time), anim.Frame{Players: k.Players, Shapes: k.Shapes}, opts)
	}

	p.AddPage()
	sampleTable(p, tr, a, opts.Step)

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write storyboard %q: %w", a.ID, err)
	}
	return nil
}

// SampleTimes returns 0, step, 2*step, ... up to the effective duration,
// always ending on the duration itself.
func SampleTimes(a anim.Animation, step float64) []float64 {
	if step <= 0 {
		step = DefaultStep
	}
	d := a.EffectiveDuration()
	var out []float64
	for i := 0; i < maxSamples; i++ {
		t := float64(i) * step
		if t >= d {
			break
		}
		out = append(out, t)
	}
	return append(out, d)
}

func titleOf(a anim.Animation) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func keyframeTable(p *gofpdf.Fpdf, kfs []anim.Keyframe) {
	header(p, []string{"#", "Time (s)", "Players", "Shapes"}, []float64{15, 35, 35, 35})
	for i, k := range kfs {
		row(p, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.2f", k.Time),
			strconv.Itoa(len(k.Players)),
			strconv.Itoa(len(k.Shapes)),
		}, []float64{15, 35, 35, 35})
	}
	p.Ln(6)
}

func sampleTable(p *gofpdf.Fpdf, tr func(string) string, a anim.Animation, step float64) {
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, "Sampled frames", "", 1, "L", false, 0, "")

	widths := []float64{25, 15, 50, 30, 30, 30}
	header(p, []string{"Time (s)", "No.", "Name", "X", "Y", "Rotation"}, widths)
	for _, t := range SampleTimes(a, step) {
		frame := anim.FrameAt(a, t)
		for _, pl := range frame.Players {
			row(p, []string{
				fmt.Sprintf("%.2f", t),
				strconv.Itoa(pl.Number),
				tr(pl.Name),
				fmt.Sprintf("%.1f", pl.X),
				fmt.Sprintf("%.1f", pl.Y),
				fmt.Sprintf("%.1f", pl.RotationOrZero()),
			}, widths)
		}
	}
}

func header(p *gofpdf.Fpdf, cols []string, widths []float64) {
	p.SetFont("Helvetica", "B", 10)
	p.SetFillColor(230, 230, 230)
	for i, c := range cols {
		p.CellFormat(widths[i], 7, c, "1", 0, "C", true, 0, "")
	}
	p.Ln(-1)
	p.SetFont("Helvetica", "", 9)
}

func row(p *gofpdf.Fpdf, cols []string, widths []float64) {
	for i, c := range cols {
		p.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
	}
	p.Ln(-1)
}

// sketch draws a scaled pitch outline with shapes as polylines and players
// as filled dots.
func sketch(p *gofpdf.Fpdf, tr func(string) string, title string, f anim.Frame, opts Options) {
	scale := sketchWidth / opts.BoardWidth
	height := opts.BoardHeight * scale

	if p.GetY()+height+10 > pageBottom {
		p.AddPage()
	}
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")

	x0, y0 := margin, p.GetY()
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.3)
	p.Rect(x0, y0, sketchWidth, height, "D")
	p.Line(x0+sketchWidth/2, y0, x0+sketchWidth/2, y0+height)

	for _, s := range f.Shapes {
		r, g, b := hexColor(s.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(math.Max(0.2, s.StrokeWidth*scale))
		drawShape(p, tr, s, x0, y0, scale)
	}

	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.2)
	p.SetFont("Helvetica", "", 6)
	for _, pl := range f.Players {
		r, g, b := hexColor(pl.Color)
		p.SetFillColor(r, g, b)
		cx, cy := x0+pl.X*scale, y0+pl.Y*scale
		p.Circle(cx, cy, 1.8, "FD")
		p.Text(cx+2.2, cy+1, strconv.Itoa(pl.Number))
	}

	p.SetY(y0 + height + 6)
}

func drawShape(p *gofpdf.Fpdf, tr func(string) string, s state.Shape, x0, y0, scale float64) {
	pts := s.Points
	switch {
	case s.Type == state.ShapeRect && len(pts) == 4:
		p.Rect(x0+pts[0]*scale, y0+pts[1]*scale, pts[2]*scale, pts[3]*scale, "D")
	case s.Type == state.ShapeCircle && len(pts) == 3:
		p.Circle(x0+pts[0]*scale, y0+pts[1]*scale, pts[2]*scale, "D")
	case s.Type == state.ShapeText && len(pts) >= 2 && s.Text != nil:
		p.Text(x0+pts[0]*scale, y0+pts[1]*scale, tr(*s.Text))
	default:
		for i := 3; i < len(pts); i += 2 {
			p.Line(
				x0+pts[i-3]*scale, y0+pts[i-2]*scale,
				x0+pts[i-1]*scale, y0+pts[i]*scale,
			)
		}
	}
}

// hexColor parses "#rrggbb" or "#rgb"; anything else is grey.
func hexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 128, 128, 128
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 128, 128, 128
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
