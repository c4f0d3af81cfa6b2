package overlay

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/emsquid/pdf2latex/internal/segment"
)

// Zone levels that can be drawn.
const (
	ModeLines   = "lines"
	ModeWords   = "words"
	ModeLetters = "letters"
)

// Result contains an annotated page encoded as base64 PNG.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Mode        string `json:"mode"`
}

var (
	markerTop    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	markerBottom = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// RenderImage draws the page's segmentation tree onto an RGB copy of
// the grid. Line bands get a green marker row above and a red marker
// row below; in word mode the markers shrink to each word's span; in
// letter mode every letter's pixel set is tinted with a rotating
// palette color, so adjacent letters are visually distinct.
//
// Missing stages are computed sequentially on demand.
func RenderImage(p *segment.Page, mode string) (*image.RGBA, error) {
	switch mode {
	case ModeLines, ModeWords, ModeLetters:
	default:
		return nil, fmt.Errorf("unknown overlay mode: %s", mode)
	}

	grid := p.Grid()
	width := grid.Width()
	height := grid.Height()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(grid.At(y, x))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	palette := colorful.FastHappyPalette(6)

	for _, line := range p.Lines() {
		if mode == ModeLines {
			drawRowMarker(img, line.Top-1, 0, width, markerTop)
			drawRowMarker(img, line.Bottom, 0, width, markerBottom)
			continue
		}

		for _, word := range line.Words(grid, p.Config()) {
			drawRowMarker(img, line.Top-1, word.Left, word.Right, markerTop)
			drawRowMarker(img, line.Bottom, word.Left, word.Right, markerBottom)

			if mode != ModeLetters {
				continue
			}
			for i, letter := range word.Letters(grid, line, p.Config()) {
				r, g, b := palette[i%len(palette)].RGB255()
				for _, px := range letter.Pixels {
					v := uint8(px.Intensity)
					img.SetRGBA(px.Col, px.Row, color.RGBA{
						R: uint8((int(r) + int(v)) / 2),
						G: uint8((int(g) + int(v)) / 2),
						B: uint8((int(b) + int(v)) / 2),
						A: 255,
					})
				}
			}
		}
	}

	return img, nil
}

// Render annotates the page like RenderImage and returns the PNG bytes
// base64-encoded, ready to embed in a JSON payload.
func Render(p *segment.Page, mode string) (*Result, error) {
	img, err := RenderImage(p, mode)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	return &Result{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Mode:        mode,
	}, nil
}

// drawRowMarker paints row y from column x1 to x2 (exclusive), clipped
// to the image bounds. Marker rows sit just outside the zone they
// describe, so clipping at the page edges is expected.
func drawRowMarker(img *image.RGBA, y, x1, x2 int, c color.RGBA) {
	bounds := img.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	for x := x1; x < x2; x++ {
		img.SetRGBA(x, y, c)
	}
}
