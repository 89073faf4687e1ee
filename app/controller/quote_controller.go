package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/repository"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/utils"
)

const quoteStateCacheKey = "quote_state"

// QuoteController renders and exports customer quotes. The render endpoint
// is the deterministic surface the headless capture path replays, so the
// resolved QuoteState comes entirely from the URL when any contract
// parameter is present and entirely from storage otherwise, never a
// field-by-field mix of the two.
type QuoteController struct {
	quotes *service.QuoteService
	render *service.RenderService
	export *service.ExportService
	cache  repository.CacheStoreInterface
}

// NewQuoteController creates a new QuoteController.
func NewQuoteController(quotes *service.QuoteService, render *service.RenderService, export *service.ExportService, cache repository.CacheStoreInterface) *QuoteController {
	return &QuoteController{quotes: quotes, render: render, export: export, cache: cache}
}

// resolveState picks the QuoteState for a request: URL parameters win
// wholesale over the persisted state. An interactive request that carries
// parameters also refreshes the persisted copy.
func (c *QuoteController) resolveState(r *http.Request) models.QuoteState {
	if hasStateParams(r) {
		state, err := models.DecodeQuoteState(r.URL.RawQuery)
		if err != nil {
			log.Printf("⚠️ resolveState: bad state params, using empty state: %v", err)
			return models.QuoteState{}
		}
		c.persistState(r.Context(), state)
		return state
	}

	if raw, ok := c.cache.Get(r.Context(), quoteStateCacheKey); ok {
		var state models.QuoteState
		if err := json.Unmarshal([]byte(raw), &state); err == nil {
			return state
		}
	}
	return models.QuoteState{}
}

func (c *QuoteController) persistState(ctx context.Context, state models.QuoteState) {
	if encoded, err := json.Marshal(state); err == nil {
		c.cache.Set(ctx, quoteStateCacheKey, string(encoded))
	}
}

func hasStateParams(r *http.Request) bool {
	q := r.URL.Query()
	for _, key := range []string{"search", "name", "info", "hide", "acc", "img"} {
		if q.Has(key) {
			return true
		}
	}
	return false
}

// RenderQuote handles GET /quote/render
func (c *QuoteController) RenderQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := c.resolveState(r)
	view, err := c.quotes.BuildView(r.Context(), state, service.ViewModeQuote)
	if err != nil {
		if errors.Is(err, service.ErrMissingStockNumber) {
			http.Error(w, "search parameter (stock number) is required", http.StatusBadRequest)
			return
		}
		log.Printf("❌ RenderQuote: %v", err)
		http.Error(w, "failed to load pricing, please retry", http.StatusBadGateway)
		return
	}

	html, err := c.render.Render(service.SurfaceQuote, view)
	if err != nil {
		log.Printf("❌ RenderQuote: render failed: %v", err)
		http.Error(w, "failed to render quote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// BuildQuote handles GET /quote: the merged view as JSON for the
// interactive UI.
func (c *QuoteController) BuildQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := c.resolveState(r)
	view, err := c.quotes.BuildView(r.Context(), state, service.ViewModeQuote)
	if err != nil {
		if errors.Is(err, service.ErrMissingStockNumber) {
			writeJSONError(w, "search parameter (stock number) is required", http.StatusBadRequest)
			return
		}
		log.Printf("❌ BuildQuote: %v", err)
		writeJSONError(w, "failed to load pricing, please retry", http.StatusBadGateway)
		return
	}

	writeJSON(w, view)
}

// ExportQuote handles GET /quote/export: captures the quote render through
// the headless browser and returns it as a PNG or PDF download.
func (c *QuoteController) ExportQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := c.resolveState(r)
	if state.StockNumber == "" {
		http.Error(w, "search parameter (stock number) is required", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "png"
	}

	surfacePath := "/quote/render?" + state.EncodeQuery()

	switch format {
	case "pdf":
		pdf, err := c.export.CapturePDF(r.Context(), surfacePath)
		if err != nil {
			log.Printf("❌ ExportQuote: %v", err)
			http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
			return
		}
		filename := utils.ExportFilename(state.CustomerName, state.StockNumber, "pdf")
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(pdf)

	case "png":
		width := atoiDefault(q.Get("width"), 850)
		quality := atoiDefault(q.Get("quality"), 90)
		png, err := c.export.CapturePNG(r.Context(), surfacePath, width, quality)
		if err != nil {
			log.Printf("❌ ExportQuote: %v", err)
			http.Error(w, "failed to generate image", http.StatusInternalServerError)
			return
		}
		filename := utils.ExportFilename(state.CustomerName, state.StockNumber, "png")
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(png)

	default:
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
	}
}

func atoiDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n := 0
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n <= 0 {
		return fallback
	}
	return n
}
