package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// DefaultImageFileTypes returns the file extensions, without the leading dot,
// that ListImages accepts by default: dng, png, tif and tiff.
//
// A new slice is returned on every call so callers may modify it.
func DefaultImageFileTypes() []string {
	return []string{"dng", "png", "tif", "tiff"}
}

// ListImages returns the paths of the image files directly inside dir.
//
// Parameters:
//   - dir: Directory to scan. Subdirectories are not descended into.
//   - fileTypes: Accepted extensions without the leading dot, lowercase.
//     A nil or empty slice selects DefaultImageFileTypes.
//
// Returns:
//   - []string: filepath.Join(dir, name) for every regular entry whose
//     lowercased extension is in fileTypes, in directory listing order.
//   - error: Non-nil if dir does not exist or cannot be read.
//
// Extension matching is case-insensitive, so "c.DNG" matches "dng". Entries
// without an extension and directory entries are never returned.
func ListImages(dir string, fileTypes []string) ([]string, error) {
	if len(fileTypes) == 0 {
		fileTypes = DefaultImageFileTypes()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(entry.Name()), ".")
		if ext == "" {
			continue
		}
		if slices.Contains(fileTypes, strings.ToLower(ext)) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads.
//
// Images are keyed by the exact path string passed to Load. Different paths to
// the same file (relative vs absolute) produce separate entries.
//
// Cached images remain in memory until Evict or Clear removes them.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Decoding goes through imaging.Open, which understands PNG, JPEG, GIF, TIFF
// and BMP. EXIF orientation is applied for JPEG sources.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a single image from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// LoadArray loads an image through the cache and converts it with
// ArrayFromImage. The second result is the source byte depth.
func LoadArray(cache *ImageCache, path string) (*Array, int, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, 0, err
	}
	arr, depth := ArrayFromImage(img)
	return arr, depth, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "tiff", "dng",
	// "jpeg", "gif", "bmp" or "unknown".
	Format string `json:"format"`

	// ByteDepth is the number of bits per channel, 8 or 16.
	ByteDepth int `json:"byte_depth"`

	// Channels is 1 for grayscale sources and 3 otherwise.
	Channels int `json:"channels"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".tif", ".tiff":
		format = "tiff"
	case ".dng":
		format = "dng"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	}

	info := &ImageInfo{
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Format:        format,
		ByteDepth:     8,
		Channels:      3,
		FileSizeBytes: stat.Size(),
	}
	switch img.(type) {
	case *image.Gray:
		info.Channels = 1
	case *image.Gray16:
		info.Channels = 1
		info.ByteDepth = 16
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ByteDepth = 16
	}
	return info, nil
}
