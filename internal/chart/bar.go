package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrNoData = errors.New("no data available")

type Bar struct {
	Label string
	Value int64
}

type Options struct {
	Width  int
	Height int
	Title  string
	XLabel string
	YLabel string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1000
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	return o
}

var (
	barColor  = color.NRGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}
	gridColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	textColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

const (
	marginLeft   = 80.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 130.0
	yTicks       = 5
	labelAngle   = -45.0
)

var (
	fontOnce sync.Once
	fontErr  error
	fontTTF  *truetype.Font
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", fontErr)
	}
	return truetype.NewFace(fontTTF, &truetype.Options{Size: size}), nil
}

// RenderBarChart draws one bar per entry, in the given order, and writes the
// chart to w as PNG. Category labels along the x-axis are rotated so long
// names stay legible. It returns ErrNoData when bars is empty.
func RenderBarChart(w io.Writer, bars []Bar, opts Options) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	labelFace, err := face(13)
	if err != nil {
		return err
	}
	titleFace, err := face(18)
	if err != nil {
		return err
	}

	width, height := float64(opts.Width), float64(opts.Height)
	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return fmt.Errorf("chart size %dx%d is too small", opts.Width, opts.Height)
	}

	var maxValue int64
	for _, b := range bars {
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}
	axisMax, step := niceScale(float64(maxValue), yTicks)
	baseY := marginTop + plotH

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(color.White)
	dc.Clear()

	if opts.Title != "" {
		dc.SetFontFace(titleFace)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(opts.Title, width/2, marginTop/2, 0.5, 0.5)
	}

	// y grid and tick labels
	dc.SetFontFace(labelFace)
	dc.SetLineWidth(1)
	for v := 0.0; v <= axisMax+step/2; v += step {
		y := baseY - v/axisMax*plotH
		dc.SetColor(gridColor)
		dc.DrawLine(marginLeft, y, marginLeft+plotW, y)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(strconv.FormatFloat(v, 'f', -1, 64), marginLeft-8, y, 1, 0.5)
	}

	slot := plotW / float64(len(bars))
	barW := slot * 0.6
	for i, b := range bars {
		x := marginLeft + float64(i)*slot + (slot-barW)/2
		h := float64(b.Value) / axisMax * plotH
		if h < 0 {
			h = 0
		}

		dc.SetColor(barColor)
		dc.DrawRectangle(x, baseY-h, barW, h)
		dc.Fill()

		cx := x + barW/2
		dc.SetColor(textColor)
		dc.DrawStringAnchored(strconv.FormatInt(b.Value, 10), cx, baseY-h-6, 0.5, 0)

		dc.Push()
		dc.RotateAbout(gg.Radians(labelAngle), cx, baseY+10)
		dc.DrawStringAnchored(b.Label, cx, baseY+10, 1, 0.5)
		dc.Pop()
	}

	// axes
	dc.SetColor(textColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(marginLeft, marginTop, marginLeft, baseY)
	dc.DrawLine(marginLeft, baseY, marginLeft+plotW, baseY)
	dc.Stroke()

	if opts.XLabel != "" {
		dc.DrawStringAnchored(opts.XLabel, marginLeft+plotW/2, height-16, 0.5, 0)
	}
	if opts.YLabel != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), 20, marginTop+plotH/2)
		dc.DrawStringAnchored(opts.YLabel, 20, marginTop+plotH/2, 0.5, 0.5)
		dc.Pop()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	return nil
}

// niceScale picks an axis maximum >= maxValue made of ticks round steps.
func niceScale(maxValue float64, ticks int) (axisMax, step float64) {
	if maxValue <= 0 {
		return 1, 1.0 / float64(ticks)
	}

	raw := maxValue / float64(ticks)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))

	step = 10 * magnitude
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*magnitude {
			step = m * magnitude
			break
		}
	}

	return math.Ceil(maxValue/step) * step, step
}
