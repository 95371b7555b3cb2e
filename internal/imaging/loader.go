package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of decoded calibration images.
//
// The calibration run reads the first image once to learn the frame size and
// again when it searches that image for corners. The cache turns the second
// read into a map lookup. Entries are evicted once an image has been through
// corner detection so memory stays bounded by a single image.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	size, err := cache.Size("/data/calib/view01.jpg")
//	img, err := cache.Load("/data/calib/view01.jpg") // served from memory
//	cache.Evict("/data/calib/view01.jpg")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Decoding goes through disintegration/imaging, which applies the EXIF
// orientation tag so that phone photos are searched the way they were shot.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable JPEG, PNG, GIF, TIFF or BMP
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Size returns the pixel dimensions of the image at path as (width, height).
// The decoded image stays cached for the following Load.
func (c *ImageCache) Size(path string) (image.Point, error) {
	img, err := c.Load(path)
	if err != nil {
		return image.Point{}, err
	}
	b := img.Bounds()
	return image.Pt(b.Dx(), b.Dy()), nil
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Save encodes img to path. The format follows the file extension; JPEG
// output uses the given quality. The parent directory must already exist.
func Save(img image.Image, path string, jpegQuality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
