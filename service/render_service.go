package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/pricing"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/utils"
)

// Render surface names, each backed by a template under templatesDir.
const (
	SurfaceQuote   = "quote"
	SurfaceHangTag = "hangtag"
	SurfaceKeyTag  = "keytag"
	SurfaceDisplay = "display"
)

// RenderService turns a MergedVehicleView into the HTML for one surface.
// Rendering is deterministic: the same view and state always produce the
// same bytes, which is what lets the headless capture path reproduce the
// interactive view exactly.
type RenderService struct {
	templatesDir string
	funcs        template.FuncMap
}

// NewRenderService creates a RenderService reading templates from dir.
func NewRenderService(dir string) *RenderService {
	return &RenderService{
		templatesDir: dir,
		funcs: template.FuncMap{
			"currency": func(v float64) string {
				return utils.FormatCurrency(v, 2)
			},
			"currencyWhole": func(v float64) string {
				return utils.FormatCurrency(v, 0)
			},
			"monthlyPayment": func(principal float64) string {
				// Standard financing terms shown on quotes: 10% down,
				// 6.99% APR, 60 months.
				return utils.FormatCurrency(pricing.CalculateMonthlyPayment(principal, 10, 6.99, 60), 0)
			},
		},
	}
}

// Render executes the named surface template against the view.
func (s *RenderService) Render(surface string, view *models.MergedVehicleView) (string, error) {
	switch surface {
	case SurfaceQuote, SurfaceHangTag, SurfaceKeyTag, SurfaceDisplay:
	default:
		return "", fmt.Errorf("unknown render surface %q", surface)
	}

	path := filepath.Join(s.templatesDir, surface+".html")
	tmpl, err := template.New(surface + ".html").Funcs(s.funcs).ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", surface, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute %s template: %w", surface, err)
	}
	return buf.String(), nil
}
