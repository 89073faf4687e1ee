package controller

import (
	"log"
	"net/http"
	"net/url"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
)

// MediaController serves optimized vehicle photos for tag and display
// surfaces through the on-disk image cache.
type MediaController struct {
	optimizer *service.ImageOptimizer
}

// NewMediaController creates a new MediaController.
func NewMediaController(optimizer *service.ImageOptimizer) *MediaController {
	return &MediaController{optimizer: optimizer}
}

// GetVehicleImage handles GET /vehicle/image?url=...&size=thumb|tag
func (c *MediaController) GetVehicleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		http.Error(w, "url must be an http(s) URL", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "tag"
	}

	data, err := c.optimizer.GetOptimized(rawURL, size)
	if err != nil {
		log.Printf("❌ GetVehicleImage: %v", err)
		http.Error(w, "failed to load image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
