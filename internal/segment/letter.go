package segment

import "github.com/emsquid/pdf2latex/internal/raster"

// Pixel is one foreground pixel of a letter's connected component. Row
// and Col are absolute page coordinates; Intensity is the original
// grid value, not a binarized one.
type Pixel struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	Intensity int `json:"intensity"`
}

// Letter is a connected foreground component covering the half-open
// column range [Left, Right). Its pixel set is final only after the
// boundary cleanup pass has run.
type Letter struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	Pixels []Pixel `json:"pixels"`
}

// point is a band-relative coordinate used by the flood fills.
type point struct {
	y, x int
}

// detectLetters scans the word's column span left to right,
// column-major, flood filling a letter from the first foreground pixel
// found and cleaning its boundary before moving on. The scan resumes
// just past each letter's right bound, so columns a component already
// consumed are skipped.
func detectLetters(g *raster.Grid, line *Line, w *Word, cfg Config) []*Letter {
	band := g.Band(line.Top, line.Bottom)
	letters := make([]*Letter, 0)

	x := w.Left
	for x < w.Right {
		seeded := false
		for y := 0; y < band.Height(); y++ {
			if band.At(y, x) <= cfg.Threshold {
				letter := floodFill(band, x, y, line.Top, cfg.Threshold)
				letter.cleanup(band, line.Top, cfg.Threshold)
				letters = append(letters, letter)
				x = letter.Right
				seeded = true
				break
			}
		}
		if !seeded {
			x++
		}
	}

	return letters
}

// floodFill collects the 8-connected foreground component reachable
// from the seed pixel. The seed is given in band coordinates; top is
// the band's first page row, used to emit absolute pixel rows.
//
// Membership tests go through a per-pixel visited grid, so each check
// is O(1) and the whole fill is linear in the component size.
func floodFill(band *raster.Grid, seedX, seedY, top, threshold int) *Letter {
	width := band.Width()
	height := band.Height()

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	frontier := []point{{y: seedY, x: seedX}}
	visited[seedY][seedX] = true
	pixels := []Pixel{{Row: top + seedY, Col: seedX, Intensity: band.At(seedY, seedX)}}
	left, right := seedX, seedX

	for i := 0; i < len(frontier); i++ {
		p := frontier[i]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				ny, nx := p.y+dy, p.x+dx
				// Neighbors outside the grid are expected near edges; skip them.
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if visited[ny][nx] || band.At(ny, nx) > threshold {
					continue
				}
				visited[ny][nx] = true
				frontier = append(frontier, point{y: ny, x: nx})
				pixels = append(pixels, Pixel{Row: top + ny, Col: nx, Intensity: band.At(ny, nx)})
				if nx < left {
					left = nx
				}
				if nx > right {
					right = nx
				}
			}
		}
	}

	return &Letter{Left: left, Right: right + 1, Pixels: pixels}
}
