// Package segment converts a page intensity grid into a hierarchy of
// text zones: lines, words and letters.
//
// # Pipeline
//
// Segmentation runs in three projection/fill stages over one immutable
// grid:
//
//  1. Lines: rows are scanned top to bottom; a maximal run of rows
//     containing foreground opens a line band [top, bottom).
//  2. Words: within a line band, columns are scanned left to right; a
//     run of blank columns at least Spacing wide splits two words,
//     while narrower gaps (intra-glyph strokes) are merged.
//  3. Letters: within a word span, an 8-connected flood fill collects
//     each connected foreground component, followed immediately by a
//     boundary-cleanup fill that removes pixels bleeding in from a
//     touching neighbor glyph.
//
// A pixel is foreground when its intensity is at or below the
// configured threshold; the same threshold applies to every stage of
// one page.
//
// # Memoization
//
// Lines are computed once per page; words per line and letters per word
// are computed lazily on first access and set exactly once, so repeated
// calls are no-ops and recomputation cannot change a populated tree.
//
// # Parallel Execution
//
// The word and letter stages are data parallel: each unit reads a
// cropped view of the shared immutable grid and produces an
// index-tagged result. SegmentWordsParallel and SegmentLettersParallel
// fan units out over a fixed worker pool and reassemble by index, so
// their output is byte-for-byte identical to the sequential methods. A
// single unit failure fails the whole job with no partial tree and no
// retry.
package segment
