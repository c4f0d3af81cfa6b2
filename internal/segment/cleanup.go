package segment

import "github.com/emsquid/pdf2latex/internal/raster"

// cleanup removes pixels that bled into the letter across a kerning
// collision. An 8-connected flood fill can bridge a narrow foreground
// gap between two visually distinct glyphs, and the column-span pixel
// recomputation below would otherwise pick up an overhanging neighbor.
//
// The pass seeds a second flood fill from foreground pixels in two
// probe columns just outside the letter's bounds (Left-2 and Right+3,
// clipped to the page), expands it within the horizontal band
// [Left-2, Right+2], and then rebuilds the letter's pixel set as every
// foreground pixel with column in [Left, Right] and row in the line
// band that the outside fill did not reach.
func (l *Letter) cleanup(band *raster.Grid, top, threshold int) {
	width := band.Width()
	height := band.Height()

	outside := make([][]bool, height)
	for y := range outside {
		outside[y] = make([]bool, width)
	}

	frontier := make([]point, 0)
	for _, px := range [2]int{l.Left - 2, l.Right + 3} {
		if px < 0 || px >= width {
			continue
		}
		for y := 0; y < height; y++ {
			if band.At(y, px) <= threshold {
				outside[y][px] = true
				frontier = append(frontier, point{y: y, x: px})
			}
		}
	}

	for i := 0; i < len(frontier); i++ {
		p := frontier[i]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				ny, nx := p.y+dy, p.x+dx
				if nx < l.Left-2 || nx > l.Right+2 || ny < 0 || ny >= height {
					continue
				}
				if nx < 0 || nx >= width {
					continue
				}
				if outside[ny][nx] || band.At(ny, nx) > threshold {
					continue
				}
				outside[ny][nx] = true
				frontier = append(frontier, point{y: ny, x: nx})
			}
		}
	}

	pixels := make([]Pixel, 0, len(l.Pixels))
	for x := l.Left; x <= l.Right && x < width; x++ {
		for y := 0; y < height; y++ {
			if band.At(y, x) <= threshold && !outside[y][x] {
				pixels = append(pixels, Pixel{Row: top + y, Col: x, Intensity: band.At(y, x)})
			}
		}
	}
	l.Pixels = pixels
}
