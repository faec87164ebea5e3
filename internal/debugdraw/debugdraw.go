// Package debugdraw renders laid out paragraphs to PDF for inspection: line
// boxes, text extents, baselines, glyph pen positions and cursor stops.
package debugdraw

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/gogpu/paragraph/layout"
	"github.com/gogpu/paragraph/metric"
)

// mmPerPixel converts layout pixels at 96 dpi to canvas millimeters.
const mmPerPixel = 25.4 / 96

const (
	margin     = 4.0 // mm
	hairline   = 0.1
	tickLength = 1.0
)

var (
	lineColor     = canvas.Hex("#9e9e9e")
	textFillColor = canvas.Hex("#e3f2fd")
	baselineColor = canvas.Hex("#e53935")
	penColor      = canvas.Hex("#1e88e5")
	cursorColor   = canvas.Hex("#43a047")
	decoColor     = canvas.Hex("#6d4c41")
	transparent   = color.RGBA{}
)

// ErrNoLayouts is returned by Render without layouts.
var ErrNoLayouts = errors.New("debugdraw: no layouts to render")

// Render writes a PDF with one page per layout to w. The layouts must have
// been laid out.
func Render(w io.Writer, layouts ...*layout.TextLayout) error {
	if len(layouts) == 0 {
		return ErrNoLayouts
	}

	var writer *pdf.PDF
	for i, l := range layouts {
		width, height := pageSize(l)
		if i == 0 {
			writer = pdf.New(w, width, height, nil)
			writer.SetInfo("paragraph layout", "", "", "", "paralayout")
		} else {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)
		drawLayout(ctx, l)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("debugdraw: write pdf: %w", err)
	}
	return nil
}

func mm(f metric.Fixed) float64 { return f.Float() * mmPerPixel }

func pageSize(l *layout.TextLayout) (float64, float64) {
	r := l.BoundingRect()
	return mm(r.Right()) + 2*margin, mm(r.Bottom()) + 2*margin
}

func drawLayout(ctx *canvas.Context, l *layout.TextLayout) {
	for i := range l.LineCount() {
		ln := l.LineAt(i)
		drawRect(ctx, ln.NaturalTextRect(), textFillColor, transparent)
		drawRect(ctx, ln.Rect(), transparent, lineColor)

		base := ln.Y().Add(ln.Ascent())
		drawSegment(ctx, baselineColor, mm(ln.X()), mm(base), mm(ln.X().Add(ln.Width())), mm(base))

		for _, run := range ln.GlyphRuns(-1, -1) {
			drawRun(ctx, run)
		}
		drawCursorStops(ctx, l, ln)
	}
}

func drawRun(ctx *canvas.Context, run layout.GlyphRun) {
	for _, p := range run.Positions {
		x, y := mm(p.X)+margin, mm(p.Y)+margin
		drawAbsolute(ctx, penColor, x, y-tickLength, x, y)
	}
	b := run.Bounds
	left, right := mm(b.X), mm(b.Right())
	if run.Flags&layout.RunUnderline != 0 {
		drawSegment(ctx, decoColor, left, mm(b.Bottom()), right, mm(b.Bottom()))
	}
	if run.Flags&layout.RunOverline != 0 {
		drawSegment(ctx, decoColor, left, mm(b.Y), right, mm(b.Y))
	}
	if run.Flags&layout.RunStrikeOut != 0 {
		mid := b.Y.Add(b.Height.DivInt(2))
		drawSegment(ctx, decoColor, left, mm(mid), right, mm(mid))
	}
}

func drawCursorStops(ctx *canvas.Context, l *layout.TextLayout, ln layout.Line) {
	end := ln.From() + ln.Length() + ln.TrailingSpaces()
	top, bottom := mm(ln.Y()), mm(ln.Y().Add(ln.Height()))
	for pos := ln.From(); pos <= end; pos++ {
		if !l.IsValidCursorPosition(pos) {
			continue
		}
		x, _ := ln.OffsetToX(pos, layout.Leading)
		drawSegment(ctx, cursorColor, mm(x), top, mm(x), top+(bottom-top)/4)
	}
}

func drawRect(ctx *canvas.Context, r metric.Rect, fill, stroke color.Color) {
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(hairline)
	ctx.DrawPath(mm(r.X)+margin, mm(r.Y)+margin, canvas.Rectangle(mm(r.Width), mm(r.Height)))
}

// drawSegment draws a line between two points in layout millimeters.
func drawSegment(ctx *canvas.Context, c color.Color, x1, y1, x2, y2 float64) {
	drawAbsolute(ctx, c, x1+margin, y1+margin, x2+margin, y2+margin)
}

func drawAbsolute(ctx *canvas.Context, c color.Color, x1, y1, x2, y2 float64) {
	ctx.SetFillColor(transparent)
	ctx.SetStrokeColor(c)
	ctx.SetStrokeWidth(hairline)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	ctx.DrawPath(x1, y1, p)
}
