package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// PageCache provides thread-safe caching of decoded page images so the
// same page can feed several segmentation passes without re-reading the
// file.
//
// Cached images remain in memory until Evict or Clear is called. All
// methods are safe for concurrent use.
type PageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewPageCache creates an empty page cache ready for use.
func NewPageCache() *PageCache {
	return &PageCache{images: make(map[string]image.Image)}
}

// Load retrieves a page image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, TIFF and BMP. The image is
// cached under the exact path string provided, so relative and absolute
// paths to the same file occupy separate entries.
func (c *PageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadGrid loads a page image and converts it to an intensity Grid.
// The decoded image stays cached; the grid is built fresh on each call.
func (c *PageCache) LoadGrid(path string) (*Grid, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Evict removes a single page from the cache. Unknown paths are ignored.
func (c *PageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all cached pages, freeing the associated memory.
func (c *PageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
