package controller

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
)

// DisplayController serves the showroom TV surfaces: the per-vehicle slide
// render, the rotation playlist, and the websocket that nudges displays when
// the feed refreshes.
type DisplayController struct {
	feed     service.FeedServiceInterface
	quotes   *service.QuoteService
	render   *service.RenderService
	hub      *service.DisplayHub
	settings service.DisplaySettings
}

// NewDisplayController creates a new DisplayController.
func NewDisplayController(feed service.FeedServiceInterface, quotes *service.QuoteService, render *service.RenderService, hub *service.DisplayHub, settings service.DisplaySettings) *DisplayController {
	return &DisplayController{feed: feed, quotes: quotes, render: render, hub: hub, settings: settings}
}

// RenderSlide handles GET /display/render: one vehicle slide, built in tag
// mode so a portal outage degrades to baseline-only slides instead of a
// black screen.
func (c *DisplayController) RenderSlide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := models.DecodeQuoteState(r.URL.RawQuery)
	if err != nil || strings.TrimSpace(state.StockNumber) == "" {
		http.Error(w, "search parameter (stock number) is required", http.StatusBadRequest)
		return
	}

	view, err := c.quotes.BuildView(r.Context(), state, service.ViewModeTag)
	if err != nil {
		log.Printf("⚠️ RenderSlide: portal unavailable for %s: %v", state.StockNumber, err)
	}

	html, err := c.render.Render(service.SurfaceDisplay, view)
	if err != nil {
		log.Printf("❌ RenderSlide: render failed: %v", err)
		http.Error(w, "failed to render slide", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

type playlistResponse struct {
	RotationSeconds int      `json:"rotationSeconds"`
	SlideURLs       []string `json:"slideUrls"`
}

// Playlist handles GET /display/playlist: the rotation the TV client cycles
// through, derived from the current snapshot and the display settings.
func (c *DisplayController) Playlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.feed.GetSnapshot(r.Context())
	if err != nil {
		log.Printf("❌ Playlist: snapshot unavailable: %v", err)
		writeJSONError(w, "inventory feed unavailable, retry shortly", http.StatusBadGateway)
		return
	}

	playlist := playlistResponse{RotationSeconds: c.settings.RotationSeconds}
	for _, item := range snap.Items {
		if c.settings.ShowNewOnly && !strings.EqualFold(item.Usage, "New") {
			continue
		}
		if !c.manufacturerAllowed(item.Manufacturer) {
			continue
		}
		playlist.SlideURLs = append(playlist.SlideURLs, "/display/render?search="+url.QueryEscape(item.StockNumber))
		if len(playlist.SlideURLs) >= c.settings.MaxSlides {
			break
		}
	}

	writeJSON(w, playlist)
}

func (c *DisplayController) manufacturerAllowed(manufacturer string) bool {
	if len(c.settings.Manufacturers) == 0 {
		return true
	}
	for _, m := range c.settings.Manufacturers {
		if strings.EqualFold(m, manufacturer) {
			return true
		}
	}
	return false
}

// HandleWebSocket handles GET /ws/display
func (c *DisplayController) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	c.hub.HandleWebSocket(w, r)
}
