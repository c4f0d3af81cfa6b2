package segment

import (
	"testing"

	"github.com/emsquid/pdf2latex/internal/raster"
)

// blankRows returns a height x width intensity array filled with
// background (255).
func blankRows(height, width int) [][]int {
	rows := make([][]int, height)
	for y := range rows {
		rows[y] = make([]int, width)
		for x := range rows[y] {
			rows[y][x] = 255
		}
	}
	return rows
}

// inkRect paints intensity v over rows [y1,y2) and columns [x1,x2).
func inkRect(rows [][]int, y1, y2, x1, x2, v int) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			rows[y][x] = v
		}
	}
}

// mustGrid builds a grid from intensity rows, failing the test on error.
func mustGrid(t *testing.T, rows [][]int) *raster.Grid {
	t.Helper()
	g, err := raster.NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

// testConfig is the configuration both concrete spec scenarios use.
func testConfig() Config {
	return Config{Threshold: 180, Spacing: 5, Workers: 2}
}

// scenarioA is a 10x30 page with two 3x3 ink squares two blank columns
// apart: one line, one word, two letters.
func scenarioA(t *testing.T) *raster.Grid {
	t.Helper()
	rows := blankRows(10, 30)
	inkRect(rows, 2, 5, 2, 5, 0)
	inkRect(rows, 2, 5, 7, 10, 0)
	return mustGrid(t, rows)
}

// scenarioB moves the second square six blank columns away: one line,
// two words, one letter each.
func scenarioB(t *testing.T) *raster.Grid {
	t.Helper()
	rows := blankRows(10, 30)
	inkRect(rows, 2, 5, 2, 5, 0)
	inkRect(rows, 2, 5, 11, 14, 0)
	return mustGrid(t, rows)
}

func TestPage_ScenarioA(t *testing.T) {
	page, err := NewPage(scenarioA(t), testConfig())
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	lines := page.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Top != 2 || lines[0].Bottom != 5 {
		t.Errorf("line bounds [%d,%d), want [2,5)", lines[0].Top, lines[0].Bottom)
	}

	words := lines[0].Words(page.Grid(), page.Config())
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0].Left != 2 || words[0].Right != 10 {
		t.Errorf("word bounds [%d,%d), want [2,10)", words[0].Left, words[0].Right)
	}

	letters := words[0].Letters(page.Grid(), lines[0], page.Config())
	if len(letters) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(letters))
	}
	if letters[0].Left != 2 || letters[0].Right != 5 {
		t.Errorf("first letter bounds [%d,%d), want [2,5)", letters[0].Left, letters[0].Right)
	}
	if letters[1].Left != 7 || letters[1].Right != 10 {
		t.Errorf("second letter bounds [%d,%d), want [7,10)", letters[1].Left, letters[1].Right)
	}
	for i, letter := range letters {
		if len(letter.Pixels) != 9 {
			t.Errorf("letter %d has %d pixels, want 9", i, len(letter.Pixels))
		}
		for _, px := range letter.Pixels {
			if px.Intensity != 0 {
				t.Errorf("letter %d pixel (%d,%d) intensity %d, want 0", i, px.Row, px.Col, px.Intensity)
			}
			if px.Row < 2 || px.Row >= 5 {
				t.Errorf("letter %d pixel row %d outside line band [2,5)", i, px.Row)
			}
		}
	}
}

func TestPage_ScenarioB(t *testing.T) {
	page, err := NewPage(scenarioB(t), testConfig())
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	lines := page.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	words := lines[0].Words(page.Grid(), page.Config())
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Left != 2 || words[0].Right != 5 {
		t.Errorf("first word bounds [%d,%d), want [2,5)", words[0].Left, words[0].Right)
	}
	if words[1].Left != 11 || words[1].Right != 14 {
		t.Errorf("second word bounds [%d,%d), want [11,14)", words[1].Left, words[1].Right)
	}

	for i, word := range words {
		letters := word.Letters(page.Grid(), lines[0], page.Config())
		if len(letters) != 1 {
			t.Errorf("word %d has %d letters, want 1", i, len(letters))
		}
	}
}

func TestNewPage_Invalid(t *testing.T) {
	if _, err := NewPage(nil, testConfig()); err == nil {
		t.Error("NewPage should reject a nil grid")
	}

	grid := scenarioA(t)
	if _, err := NewPage(grid, Config{Threshold: 300, Spacing: 5}); err == nil {
		t.Error("NewPage should reject an out-of-range threshold")
	}
	if _, err := NewPage(grid, Config{Threshold: 180, Spacing: 0}); err == nil {
		t.Error("NewPage should reject a non-positive spacing")
	}
}

func TestPage_Result(t *testing.T) {
	page, err := NewPage(scenarioA(t), testConfig())
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	// Result computes any missing stage on demand.
	result := page.Result()
	if result.Width != 30 || result.Height != 10 {
		t.Errorf("result dimensions %dx%d, want 30x10", result.Width, result.Height)
	}
	if result.Count != 1 || len(result.Lines) != 1 {
		t.Fatalf("expected 1 line in result, got %d", len(result.Lines))
	}
	if len(result.Lines[0].Words) != 1 {
		t.Fatalf("expected 1 word in result, got %d", len(result.Lines[0].Words))
	}
	if len(result.Lines[0].Words[0].Letters) != 2 {
		t.Errorf("expected 2 letters in result, got %d", len(result.Lines[0].Words[0].Letters))
	}
}

func TestPage_LinesMemoized(t *testing.T) {
	page, err := NewPage(scenarioA(t), testConfig())
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	first := page.Lines()
	second := page.Lines()
	if len(first) != len(second) {
		t.Fatalf("line count changed between calls: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d recomputed instead of memoized", i)
		}
	}
}
