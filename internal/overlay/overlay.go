// Package overlay renders tracked-element frames into an image so a human
// can inspect what the registry believes the screen looks like. It is a
// diagnostic surface only; nothing in the tracking core depends on it.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/uitrack/uitrack/internal/track"
)

// Options controls overlay rendering.
type Options struct {
	Width  int     // Canvas width in pixels (0 = derived from frames)
	Height int     // Canvas height in pixels (0 = derived from frames)
	Scale  float64 // Points-to-pixels scale (0 = 1.0)
	Labels bool    // Draw identifier labels at frame centers
}

const canvasMargin = 16

// Render draws each element's frame as an outlined rectangle, optionally
// labelled with its identifier, on a dark canvas.
func Render(elements []track.Element, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1.0
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		dw, dh := canvasExtent(elements, scale)
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas: no frames and no explicit size")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	background := color.RGBA{R: 24, G: 24, B: 28, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, background)
		}
	}

	boxColor := color.RGBA{R: 255, G: 80, B: 80, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for _, el := range elements {
		x := int(el.Frame.X * scale)
		y := int(el.Frame.Y * scale)
		fw := int(el.Frame.Width * scale)
		fh := int(el.Frame.Height * scale)

		drawRectangle(img, x, y, x+fw, y+fh, boxColor)
		if opts.Labels {
			center := el.Frame.Center()
			drawTextWithOutline(img, el.Identifier,
				int(center.X*scale), int(center.Y*scale),
				textColor, outlineColor)
		}
	}
	return img, nil
}

// WritePNG renders elements and encodes the result as PNG.
func WritePNG(w io.Writer, elements []track.Element, opts Options) error {
	img, err := Render(elements, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode overlay png: %w", err)
	}
	return nil
}

// canvasExtent derives a canvas size that contains every frame plus a
// margin.
func canvasExtent(elements []track.Element, scale float64) (int, int) {
	var maxX, maxY float64
	for _, el := range elements {
		maxX = math.Max(maxX, el.Frame.X+el.Frame.Width)
		maxY = math.Max(maxY, el.Frame.Y+el.Frame.Height)
	}
	if maxX == 0 && maxY == 0 {
		return 0, 0
	}
	return int(maxX*scale) + canvasMargin, int(maxY*scale) + canvasMargin
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline, clamped to the image bounds.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text centered at (x, y) with a 1px outline for
// visibility against the boxes.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: ~7px advance, 13px height
	textWidth := len(text) * 7
	textHeight := 13
	offsetX := x - textWidth/2
	offsetY := y - textHeight/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	if !isWithinBounds(img.Bounds(), x, y) {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
