// Package render draws a top down view of a swerve fleet: each tire tread, a marker on the front
// of each tire, a velocity arrow per moving wheel and the net velocity of the base.
package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"go.viam.com/swerve/spatialmath"
	"go.viam.com/swerve/swerve"
	"go.viam.com/swerve/utils"
)

// Options controls the look of a rendering. Colors are hex strings such as "#1e90ff".
type Options struct {
	Background  string
	Tire        string
	Outline     string
	Front       string
	WheelVector string
	NetVector   string
	Text        string

	// Margin is the empty border, in pixels, around the drawing.
	Margin     int
	LineWidth  float64
	FontPoints float64
	ArrowHead  float64
}

// DefaultOptions returns a white background with blue tires, matching the classic viewer.
func DefaultOptions() Options {
	return Options{
		Background:  "#ffffff",
		Tire:        "#0000ff",
		Outline:     "#404040",
		Front:       "#ffff00",
		WheelVector: "#ff0000",
		NetVector:   "#000000",
		Text:        "#000000",
		Margin:      10,
		LineWidth:   3,
		FontPoints:  12,
		ArrowHead:   10,
	}
}

type palette struct {
	background, tire, outline, front, wheelVector, netVector, text colorful.Color
}

func (opts Options) palette() (palette, error) {
	var p palette
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", opts.Background, &p.background},
		{"tire", opts.Tire, &p.tire},
		{"outline", opts.Outline, &p.outline},
		{"front", opts.Front, &p.front},
		{"wheel vector", opts.WheelVector, &p.wheelVector},
		{"net vector", opts.NetVector, &p.netVector},
		{"text", opts.Text, &p.text},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return palette{}, errors.Wrapf(err, "invalid %s color %q", c.name, c.hex)
		}
		*c.dst = parsed
	}
	return p, nil
}

// view maps robot space onto pixels. Robot +y is up, so pixel y is inverted.
type view struct {
	x0, y0    float64
	cx, cy    float64
	pxPerUnit float64
}

func (v view) px(x float64) float64 {
	return (x-v.cx)*v.pxPerUnit + v.x0
}

func (v view) py(y float64) float64 {
	return v.y0 - (y-v.cy)*v.pxPerUnit
}

func newView(fleet *swerve.Fleet, width, height, margin int) view {
	wi := float64(width - 2*margin)
	hi := float64(height - 2*margin)
	v := view{x0: wi/2 + float64(margin), y0: hi/2 + float64(margin), pxPerUnit: 1}
	bounds := fleet.Bounds()
	if bounds.IsEmpty() {
		return v
	}
	center := bounds.Center()
	size := bounds.Size()
	v.cx, v.cy = center.X, center.Y
	if size.X > 0 && size.Y > 0 {
		v.pxPerUnit = math.Min(wi/size.X, hi/size.Y)
	}
	return v
}

// Render draws fleet onto a new width x height image.
func Render(fleet *swerve.Fleet, width, height int, opts Options) (image.Image, error) {
	dc, err := draw(fleet, width, height, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders fleet and encodes it as a PNG to w.
func WritePNG(w io.Writer, fleet *swerve.Fleet, width, height int, opts Options) error {
	dc, err := draw(fleet, width, height, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders fleet and saves it as a PNG file at path.
func SavePNG(path string, fleet *swerve.Fleet, width, height int, opts Options) error {
	dc, err := draw(fleet, width, height, opts)
	if err != nil {
		return err
	}
	return errors.Wrapf(dc.SavePNG(path), "error saving %q", path)
}

func draw(fleet *swerve.Fleet, width, height int, opts Options) (*gg.Context, error) {
	if width <= 2*opts.Margin || height <= 2*opts.Margin {
		return nil, errors.Errorf("image size %dx%d leaves no room inside a %d pixel margin", width, height, opts.Margin)
	}
	pal, err := opts.palette()
	if err != nil {
		return nil, err
	}
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "error loading font")
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: opts.FontPoints}))
	dc.SetColor(pal.background)
	dc.Clear()

	wheels := fleet.Wheels()
	if len(wheels) == 0 {
		return dc, nil
	}
	v := newView(fleet, width, height, opts.Margin)

	// velocity arrows are scaled off the smallest wheel
	minDiam := 1.0
	for _, w := range wheels {
		minDiam = math.Min(minDiam, w.Diameter())
	}
	velocityScale := minDiam * 2

	for _, w := range wheels {
		drawWheel(dc, v, w, pal, opts, velocityScale)
	}

	net := fleet.NetVelocity()
	dc.SetColor(pal.netVector)
	dc.SetLineWidth(opts.LineWidth)
	drawArrow(dc, v.px(0), v.py(0), v.px(net.X*velocityScale), v.py(net.Y*velocityScale), opts.ArrowHead)

	polar := net.ToPolar()
	anchor := 1.0
	if net.X < 0 {
		anchor = 0
	}
	dc.SetColor(pal.text)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", polar.R), v.px(0), v.py(0)-2, anchor, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", utils.ModAngDeg(polar.BearingDegrees())), v.px(0), v.py(0)+2, anchor, 1)
	return dc, nil
}

func drawWheel(dc *gg.Context, v view, w *swerve.Wheel, pal palette, opts Options, velocityScale float64) {
	corners := w.Corners()
	dc.NewSubPath()
	for _, c := range corners {
		dc.LineTo(v.px(c.X), v.py(c.Y))
	}
	dc.ClosePath()
	dc.SetColor(pal.tire)
	dc.FillPreserve()
	dc.SetColor(pal.outline)
	dc.SetLineWidth(opts.LineWidth)
	dc.Stroke()

	// marker on the front end of the tire
	indicator := math.Min(w.Width(), w.Diameter()) / 2
	front := w.Transform(spatialmath.Point{Y: w.Diameter()/2 - indicator*0.75}, nil)
	dc.SetColor(pal.front)
	dc.DrawCircle(v.px(front.X), v.py(front.Y), indicator*v.pxPerUnit/2)
	dc.Fill()

	velocity := w.Velocity()
	if velocity == 0 {
		return
	}
	start := w.Transform(spatialmath.Point{}, nil)
	end := w.Transform(spatialmath.Point{Y: velocity * velocityScale}, nil)
	dc.SetColor(pal.wheelVector)
	dc.SetLineWidth(opts.LineWidth)
	drawArrow(dc, v.px(start.X), v.py(start.Y), v.px(end.X), v.py(end.Y), opts.ArrowHead)

	// labels sit on the inboard side of the wheel
	labelX := v.px(w.X() - w.Diameter()*0.75)
	anchor := 1.0
	if w.X() <= 0 {
		labelX = v.px(w.X() + w.Diameter()*0.75)
		anchor = 0
	}
	dc.SetColor(pal.text)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", velocity), labelX, v.py(w.Y())-2, anchor, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", utils.ModAngDeg(utils.RadToDeg(w.WheelBearing()))), labelX, v.py(w.Y())+2, anchor, 1)
}

// drawArrow strokes a line from (sx, sy) to (ex, ey) with a single barb at the end.
func drawArrow(dc *gg.Context, sx, sy, ex, ey, head float64) {
	slope := math.Atan2(ey-sy, ex-sx)
	barb := slope + math.Pi*0.875
	dc.MoveTo(sx, sy)
	dc.LineTo(ex, ey)
	dc.LineTo(ex+head*math.Cos(barb), ey+head*math.Sin(barb))
	dc.Stroke()
}
