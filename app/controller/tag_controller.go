package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/utils"
)

// TagController renders hang tags and key tags. Tags tolerate a portal miss:
// a unit the portal doesn't know still gets a baseline-only tag with a
// "not found in portal" indicator instead of an error page.
type TagController struct {
	quotes *service.QuoteService
	render *service.RenderService
	export *service.ExportService
}

// NewTagController creates a new TagController.
func NewTagController(quotes *service.QuoteService, render *service.RenderService, export *service.ExportService) *TagController {
	return &TagController{quotes: quotes, render: render, export: export}
}

// RenderHangTag handles GET /hangtag/render
func (c *TagController) RenderHangTag(w http.ResponseWriter, r *http.Request) {
	c.renderTag(w, r, service.SurfaceHangTag)
}

// RenderKeyTag handles GET /keytag/render
func (c *TagController) RenderKeyTag(w http.ResponseWriter, r *http.Request) {
	c.renderTag(w, r, service.SurfaceKeyTag)
}

func (c *TagController) renderTag(w http.ResponseWriter, r *http.Request, surface string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := models.DecodeQuoteState(r.URL.RawQuery)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid parameters: %v", err), http.StatusBadRequest)
		return
	}

	view, err := c.quotes.BuildView(r.Context(), state, service.ViewModeTag)
	if err != nil {
		if errors.Is(err, service.ErrMissingStockNumber) {
			http.Error(w, "search parameter (stock number) is required", http.StatusBadRequest)
			return
		}
		// Portal transport failure: the tag still renders from baseline
		// data with an error/placeholder status.
		log.Printf("⚠️ renderTag(%s): portal unavailable for %s: %v", surface, state.StockNumber, err)
	}

	html, err := c.render.Render(surface, view)
	if err != nil {
		log.Printf("❌ renderTag(%s): render failed: %v", surface, err)
		http.Error(w, "failed to render tag", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// ExportHangTag handles GET /hangtag/export: a PNG capture of the tag for
// in-store printing.
func (c *TagController) ExportHangTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := models.DecodeQuoteState(r.URL.RawQuery)
	if err != nil || state.StockNumber == "" {
		http.Error(w, "search parameter (stock number) is required", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	width := atoiDefault(q.Get("width"), 540)
	quality := atoiDefault(q.Get("quality"), 90)

	surfacePath := "/hangtag/render?" + state.EncodeQuery()
	png, err := c.export.CapturePNG(r.Context(), surfacePath, width, quality)
	if err != nil {
		log.Printf("❌ ExportHangTag: %v", err)
		http.Error(w, "failed to generate image", http.StatusInternalServerError)
		return
	}

	filename := utils.ExportFilename(state.StockNumber+"-hangtag", "", "png")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(png)
}
