package segment

import "github.com/emsquid/pdf2latex/internal/raster"

// Word is a span of columns [Left, Right) inside its line's row band.
// Columns are absolute page coordinates; words within a line are
// ordered left to right and never overlap.
type Word struct {
	Left  int `json:"left"`
	Right int `json:"right"`

	letters    []*Letter
	lettersSet bool
}

// blankColumn reports whether column x of the band contains no
// foreground pixel.
func blankColumn(band *raster.Grid, x, threshold int) bool {
	for y := 0; y < band.Height(); y++ {
		if band.At(y, x) <= threshold {
			return false
		}
	}
	return true
}

// detectWords scans the band's columns left to right. A non-blank
// column opens a word; a blank column starts a candidate gap, and once
// the gap grows to cfg.Spacing consecutive blank columns the word is
// closed at the gap's first column. Narrower gaps are merged into the
// word, which keeps intra-glyph column gaps from splitting it.
//
// A word still open at the right edge is closed at the pending gap if
// one exists, otherwise at the page width.
func detectWords(band *raster.Grid, cfg Config) []*Word {
	words := make([]*Word, 0)

	const unset = -1
	start := 0
	candidateEnd := unset
	inWord := false
	for x := 0; x < band.Width(); x++ {
		if blankColumn(band, x, cfg.Threshold) {
			if !inWord {
				continue
			}
			if candidateEnd == unset {
				candidateEnd = x
			}
			// Blank run length counts the gap's first column, so a run
			// of exactly cfg.Spacing columns splits the word.
			if x-candidateEnd+1 >= cfg.Spacing {
				words = append(words, &Word{Left: start, Right: candidateEnd})
				inWord = false
			}
		} else {
			candidateEnd = unset
			if !inWord {
				start = x
				inWord = true
			}
		}
	}
	if inWord {
		end := band.Width()
		if candidateEnd != unset {
			end = candidateEnd
		}
		words = append(words, &Word{Left: start, Right: end})
	}

	return words
}

// Letters returns the word's letters in left-to-right order, flood
// filling the word's span on first call and memoizing the result. The
// grid must be the full page grid and line the word's owning line.
func (w *Word) Letters(g *raster.Grid, line *Line, cfg Config) []*Letter {
	if !w.lettersSet {
		w.setLetters(detectLetters(g, line, w, cfg))
	}
	return w.letters
}

// setLetters installs a letter list exactly once; later calls are
// no-ops, so recomputing a populated word cannot change it.
func (w *Word) setLetters(letters []*Letter) {
	if w.lettersSet {
		return
	}
	w.letters = letters
	w.lettersSet = true
}
