// Package raster is the pixel input boundary for page segmentation.
//
// It loads page images from disk, converts them into immutable
// grayscale intensity grids, and offers binarization helpers for
// inspection. All coordinates are 0-based with the origin at the
// top-left corner: row (y) increases downward, column (x) increases
// rightward.
//
// # Intensity Model
//
// Grids hold integer intensities from 0 (black) to 255 (white). The
// segmentation engine treats a pixel as foreground (ink) when its
// intensity is at or below a configured threshold; this package never
// applies a threshold on its own except in the explicit Binarize and
// OtsuThreshold helpers.
//
// # Thread Safety
//
// PageCache is safe for concurrent use. Grid values are immutable
// after construction and may be shared across goroutines without
// locking; Band views alias their parent's storage.
package raster
