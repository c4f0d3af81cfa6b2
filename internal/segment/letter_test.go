package segment

import (
	"reflect"
	"testing"
)

func TestDetectLetters_TwoSquares(t *testing.T) {
	grid := scenarioA(t)
	cfg := testConfig()
	line := &Line{Top: 2, Bottom: 5}
	word := &Word{Left: 2, Right: 10}

	letters := detectLetters(grid, line, word, cfg)
	if len(letters) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(letters))
	}
	if letters[0].Left != 2 || letters[0].Right != 5 {
		t.Errorf("first letter bounds [%d,%d), want [2,5)", letters[0].Left, letters[0].Right)
	}
	if letters[1].Left != 7 || letters[1].Right != 10 {
		t.Errorf("second letter bounds [%d,%d), want [7,10)", letters[1].Left, letters[1].Right)
	}
}

func TestDetectLetters_DiagonalChainIsOneLetter(t *testing.T) {
	// Diagonal neighbors are connected under 8-connectivity.
	rows := blankRows(4, 8)
	rows[0][2] = 0
	rows[1][3] = 0
	rows[2][4] = 0
	grid := mustGrid(t, rows)

	letters := detectLetters(grid, &Line{Top: 0, Bottom: 4}, &Word{Left: 0, Right: 8}, testConfig())
	if len(letters) != 1 {
		t.Fatalf("expected 1 letter, got %d", len(letters))
	}
	if letters[0].Left != 2 || letters[0].Right != 5 {
		t.Errorf("letter bounds [%d,%d), want [2,5)", letters[0].Left, letters[0].Right)
	}
	if len(letters[0].Pixels) != 3 {
		t.Errorf("letter has %d pixels, want 3", len(letters[0].Pixels))
	}
}

func TestDetectLetters_ConnectivityLaw(t *testing.T) {
	cfg := testConfig()
	line := &Line{Top: 0, Bottom: 3}
	word := &Word{Left: 0, Right: 8}

	// Two vertical strokes one blank column apart: no foreground chain,
	// so two letters.
	rows := blankRows(3, 8)
	inkRect(rows, 0, 3, 2, 3, 0)
	inkRect(rows, 0, 3, 4, 5, 0)
	letters := detectLetters(mustGrid(t, rows), line, word, cfg)
	if len(letters) != 2 {
		t.Fatalf("disconnected strokes: expected 2 letters, got %d", len(letters))
	}

	// Adding one bridging pixel joins the strokes into one component.
	rows[1][3] = 0
	letters = detectLetters(mustGrid(t, rows), line, word, cfg)
	if len(letters) != 1 {
		t.Fatalf("bridged strokes: expected 1 letter, got %d", len(letters))
	}
	if letters[0].Left != 2 || letters[0].Right != 5 {
		t.Errorf("letter bounds [%d,%d), want [2,5)", letters[0].Left, letters[0].Right)
	}
}

func TestDetectLetters_Deterministic(t *testing.T) {
	grid := scenarioA(t)
	cfg := testConfig()
	line := &Line{Top: 2, Bottom: 5}

	first := detectLetters(grid, line, &Word{Left: 2, Right: 10}, cfg)
	second := detectLetters(grid, line, &Word{Left: 2, Right: 10}, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Error("letter segmentation of an unchanged grid should be identical across runs")
	}
}

func TestDetectLetters_PreservesIntensity(t *testing.T) {
	rows := blankRows(3, 6)
	rows[1][2] = 40
	rows[1][3] = 170
	grid := mustGrid(t, rows)

	letters := detectLetters(grid, &Line{Top: 0, Bottom: 3}, &Word{Left: 0, Right: 6}, testConfig())
	if len(letters) != 1 {
		t.Fatalf("expected 1 letter, got %d", len(letters))
	}

	got := map[[2]int]int{}
	for _, px := range letters[0].Pixels {
		got[[2]int{px.Row, px.Col}] = px.Intensity
	}
	if got[[2]int{1, 2}] != 40 || got[[2]int{1, 3}] != 170 {
		t.Errorf("pixel intensities not preserved: %v", got)
	}
}

func TestDetectLetters_PixelOwnership(t *testing.T) {
	grid := scenarioA(t)
	cfg := testConfig()
	line := &Line{Top: 2, Bottom: 5}

	letters := detectLetters(grid, line, &Word{Left: 2, Right: 10}, cfg)

	seen := map[[2]int]int{}
	for i, letter := range letters {
		for _, px := range letter.Pixels {
			key := [2]int{px.Row, px.Col}
			if owner, ok := seen[key]; ok {
				t.Errorf("pixel (%d,%d) owned by letters %d and %d", px.Row, px.Col, owner, i)
			}
			seen[key] = i
		}
	}
}

func TestWord_LettersMemoized(t *testing.T) {
	grid := scenarioA(t)
	cfg := testConfig()
	line := &Line{Top: 2, Bottom: 5}
	word := &Word{Left: 2, Right: 10}

	first := word.Letters(grid, line, cfg)
	second := word.Letters(grid, line, cfg)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 letters, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("letter %d recomputed instead of memoized", i)
		}
	}

	// A populated word ignores later installs.
	word.setLetters(nil)
	if got := word.Letters(grid, line, cfg); len(got) != 2 {
		t.Error("setLetters should be a no-op on a populated word")
	}
}
