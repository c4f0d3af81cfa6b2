package segment

import "github.com/emsquid/pdf2latex/internal/raster"

// Line is a horizontal text band of the page covering the half-open row
// range [Top, Bottom). Lines on a page are ordered top to bottom and
// never overlap.
type Line struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`

	words    []*Word
	wordsSet bool
}

// blankRow reports whether row y contains no foreground pixel.
func blankRow(g *raster.Grid, y, threshold int) bool {
	for x := 0; x < g.Width(); x++ {
		if g.At(y, x) <= threshold {
			return false
		}
	}
	return true
}

// detectLines scans rows top to bottom and opens a line on the first
// non-blank row, closing it on the next blank row. A band still open
// when the page runs out is closed at the page bottom.
func detectLines(g *raster.Grid, cfg Config) []*Line {
	lines := make([]*Line, 0)

	start := 0
	inLine := false
	for y := 0; y < g.Height(); y++ {
		blank := blankRow(g, y, cfg.Threshold)
		switch {
		case inLine && blank:
			lines = append(lines, &Line{Top: start, Bottom: y})
			inLine = false
		case !inLine && !blank:
			start = y
			inLine = true
		}
	}
	if inLine {
		lines = append(lines, &Line{Top: start, Bottom: g.Height()})
	}

	return lines
}

// Words returns the line's words in left-to-right order, segmenting the
// line's row band on first call and memoizing the result. The grid must
// be the full page grid the line was detected on.
func (l *Line) Words(g *raster.Grid, cfg Config) []*Word {
	if !l.wordsSet {
		l.setWords(detectWords(g.Band(l.Top, l.Bottom), cfg))
	}
	return l.words
}

// setWords installs a word list exactly once; later calls are no-ops,
// so recomputing a populated line cannot change it.
func (l *Line) setWords(words []*Word) {
	if l.wordsSet {
		return
	}
	l.words = words
	l.wordsSet = true
}
