package service

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const (
	imageCacheDir = "cache/images"
	// Quality settings
	qualityThumb = 60
	qualityTag   = 80
	// Size settings (max dimension)
	maxSizeThumb = 300
	maxSizeTag   = 1000
)

// ImageOptimizer fetches vehicle photos, resizes and re-encodes them for tag
// and display surfaces, and keeps the results in an on-disk cache so repeated
// tag prints don't refetch the feed CDN.
type ImageOptimizer struct {
	httpClient *http.Client
}

// NewImageOptimizer creates a new ImageOptimizer.
func NewImageOptimizer() *ImageOptimizer {
	return &ImageOptimizer{
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// EnsureCacheDir ensures the image cache directory exists.
func EnsureCacheDir() error {
	if err := os.MkdirAll(imageCacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create image cache directory: %w", err)
	}
	return nil
}

// cachePath derives the cache file path for a source URL and size variant.
func cachePath(sourceURL, size string) string {
	sum := sha1.Sum([]byte(sourceURL))
	filename := fmt.Sprintf("vehicle_%s_%s.jpg", hex.EncodeToString(sum[:8]), size)
	return filepath.Join(imageCacheDir, filename)
}

// GetOptimized returns the optimized JPEG for a source image URL, serving
// from the on-disk cache when possible. size is "thumb" or "tag".
func (o *ImageOptimizer) GetOptimized(sourceURL, size string) ([]byte, error) {
	path := cachePath(sourceURL, size)
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	resp, err := o.httpClient.Get(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	optimized, err := optimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		if err := os.WriteFile(path, optimized, 0644); err != nil {
			log.Printf("⚠️ ImageOptimizer: failed to cache %s: %v", path, err)
		}
	}

	return optimized, nil
}

// optimizeImage converts to JPEG and resizes to the variant's max dimension.
func optimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "tag":
		maxDim = maxSizeTag
		quality = qualityTag
	default:
		maxDim = maxSizeTag
		quality = qualityTag
		log.Printf("⚠️ Unknown image size '%s', defaulting to tag", size)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
