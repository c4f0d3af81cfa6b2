package segment

import (
	"fmt"

	"github.com/emsquid/pdf2latex/internal/raster"
)

// Page drives segmentation over one immutable intensity grid. Lines
// are computed once and memoized; words and letters are computed
// lazily per line and per word on first access.
//
// A Page is not safe for concurrent use by callers; the parallel
// segmentation passes coordinate their own workers internally.
type Page struct {
	grid *raster.Grid
	cfg  Config

	lines    []*Line
	linesSet bool
}

// NewPage binds a grid to a segmentation configuration. The
// configuration is validated here once so every later stage can rely
// on it.
func NewPage(grid *raster.Grid, cfg Config) (*Page, error) {
	if grid == nil {
		return nil, fmt.Errorf("page grid must not be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid segmentation config: %w", err)
	}
	return &Page{grid: grid, cfg: cfg}, nil
}

// Grid returns the page's intensity grid.
func (p *Page) Grid() *raster.Grid { return p.grid }

// Config returns the segmentation parameters bound at construction.
func (p *Page) Config() Config { return p.cfg }

// Lines returns the page's text lines in top-to-bottom order, scanning
// the row projection on first call and memoizing the result.
func (p *Page) Lines() []*Line {
	if !p.linesSet {
		p.lines = detectLines(p.grid, p.cfg)
		p.linesSet = true
	}
	return p.lines
}

// SegmentWords eagerly segments every line into words, sequentially.
func (p *Page) SegmentWords() {
	for _, line := range p.Lines() {
		line.Words(p.grid, p.cfg)
	}
}

// SegmentLetters eagerly segments every word of every line into
// letters, sequentially. Word segmentation runs first if it has not
// already.
func (p *Page) SegmentLetters() {
	p.SegmentWords()
	for _, line := range p.Lines() {
		for _, word := range line.words {
			word.Letters(p.grid, line, p.cfg)
		}
	}
}

// PageResult is the JSON-facing snapshot of a segmented page tree.
type PageResult struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Lines  []LineResult `json:"lines"`
	Count  int          `json:"count"`
}

// LineResult is one text line and its words.
type LineResult struct {
	Top    int          `json:"top"`
	Bottom int          `json:"bottom"`
	Words  []WordResult `json:"words"`
}

// WordResult is one word span and its letters.
type WordResult struct {
	Left    int            `json:"left"`
	Right   int            `json:"right"`
	Letters []LetterResult `json:"letters"`
}

// LetterResult is one letter with its final post-cleanup pixel set.
type LetterResult struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	Pixels []Pixel `json:"pixels"`
}

// Result snapshots the full line/word/letter tree, computing any stage
// that has not run yet. The snapshot owns no grid data and is safe to
// serialize or retain after the page is gone.
func (p *Page) Result() *PageResult {
	lines := p.Lines()
	out := &PageResult{
		Width:  p.grid.Width(),
		Height: p.grid.Height(),
		Lines:  make([]LineResult, 0, len(lines)),
	}

	for _, line := range lines {
		lr := LineResult{Top: line.Top, Bottom: line.Bottom}
		for _, word := range line.Words(p.grid, p.cfg) {
			wr := WordResult{Left: word.Left, Right: word.Right}
			for _, letter := range word.Letters(p.grid, line, p.cfg) {
				wr.Letters = append(wr.Letters, LetterResult{
					Left:   letter.Left,
					Right:  letter.Right,
					Pixels: letter.Pixels,
				})
			}
			lr.Words = append(lr.Words, wr)
		}
		out.Lines = append(out.Lines, lr)
	}
	out.Count = len(out.Lines)

	return out
}
