package raster

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// Binarize renders the grid as a black-and-white image: foreground
// pixels (intensity <= threshold) become black, everything else white.
//
// This is a debug/inspection aid; the segmentation engine itself works
// on the raw intensity grid and applies the threshold per lookup.
func Binarize(g *Grid, threshold int) *image.Gray {
	if threshold >= 255 {
		// Every pixel is foreground; NewGray zero value is already black.
		return image.NewGray(image.Rect(0, 0, g.width, g.height))
	}
	// bild turns pixels at or above the level white, so the foreground
	// cutoff shifts by one.
	return segment.Threshold(g.Gray(), uint8(threshold+1))
}

// OtsuThreshold estimates a foreground cutoff for the grid using Otsu's
// method, maximizing the inter-class variance of the intensity
// histogram. It suits pages whose contrast does not match the default
// cutoff; callers opt in explicitly, the engine never auto-thresholds.
func OtsuThreshold(g *Grid) int {
	var histogram [256]int
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			histogram[g.rows[y][x]]++
		}
	}

	total := g.width * g.height
	var totalSum float64
	for i := 0; i < 256; i++ {
		totalSum += float64(i) * float64(histogram[i])
	}

	var sumBackground float64
	var weightBackground int
	var maxVariance float64
	best := 0

	for t := 0; t < 256; t++ {
		weightBackground += histogram[t]
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}

		sumBackground += float64(t) * float64(histogram[t])
		meanBackground := sumBackground / float64(weightBackground)
		meanForeground := (totalSum - sumBackground) / float64(weightForeground)

		variance := float64(weightBackground) * float64(weightForeground) *
			(meanBackground - meanForeground) * (meanBackground - meanForeground)
		if variance > maxVariance {
			maxVariance = variance
			best = t
		}
	}

	return best
}
