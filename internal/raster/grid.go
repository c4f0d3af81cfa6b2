package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Grid is an immutable grayscale intensity grid in row-major order.
//
// Row 0 is the top of the page and column 0 the left edge. Intensities
// range from 0 (black ink) to 255 (white paper). A Grid is never
// mutated after construction, so it may be shared freely across
// goroutines; Band views share the underlying rows with their parent.
type Grid struct {
	rows   [][]uint8
	width  int
	height int
}

// NewGrid builds a Grid from a 2D scalar intensity array.
//
// The array must be non-empty and rectangular, and every value must lie
// in the 0-255 range. Anything else is a fatal input error: the grid is
// rejected, never coerced.
func NewGrid(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid must have at least one row and one column")
	}

	width := len(rows[0])
	out := make([][]uint8, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid is not rectangular: row %d has %d columns, want %d", y, len(row), width)
		}
		out[y] = make([]uint8, width)
		for x, v := range row {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("intensity %d at (%d,%d) outside 0-255 range", v, y, x)
			}
			out[y][x] = uint8(v)
		}
	}

	return &Grid{rows: out, width: width, height: len(out)}, nil
}

// NewGridRGB builds a Grid from a 3-channel array, converting each
// pixel to luminance with ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B).
//
// Every pixel must have exactly three channels; a grid that is neither
// scalar (use NewGrid) nor 3-channel is a fatal input error.
func NewGridRGB(rows [][][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid must have at least one row and one column")
	}

	width := len(rows[0])
	out := make([][]uint8, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid is not rectangular: row %d has %d columns, want %d", y, len(row), width)
		}
		out[y] = make([]uint8, width)
		for x, px := range row {
			if len(px) != 3 {
				return nil, fmt.Errorf("pixel (%d,%d) has %d channels, grid must be 2D or 3-channel", y, x, len(px))
			}
			for _, v := range px {
				if v < 0 || v > 255 {
					return nil, fmt.Errorf("channel value %d at (%d,%d) outside 0-255 range", v, y, x)
				}
			}
			lum := 0.299*float64(px[0]) + 0.587*float64(px[1]) + 0.114*float64(px[2])
			out[y][x] = uint8(lum)
		}
	}

	return &Grid{rows: out, width: width, height: len(out)}, nil
}

// FromImage converts a decoded image into an intensity Grid.
//
// The image is grayscaled first, so color pages and already-gray pages
// produce the same kind of grid.
func FromImage(img image.Image) *Grid {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rows := make([][]uint8, height)
	for y := 0; y < height; y++ {
		rows[y] = make([]uint8, width)
		for x := 0; x < width; x++ {
			// Grayscale output has R == G == B; the red channel is the luminance.
			rows[y][x] = gray.Pix[y*gray.Stride+x*4]
		}
	}

	return &Grid{rows: rows, width: width, height: height}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the intensity at row y, column x.
func (g *Grid) At(y, x int) int { return int(g.rows[y][x]) }

// Band returns a view of the rows [top, bottom) at full page width.
// The view shares pixel storage with the parent grid.
func (g *Grid) Band(top, bottom int) *Grid {
	return &Grid{rows: g.rows[top:bottom], width: g.width, height: bottom - top}
}

// Gray renders the grid as a standard grayscale image.
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.width], g.rows[y])
	}
	return img
}
