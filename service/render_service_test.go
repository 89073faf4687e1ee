package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

func TestRender_ExecutesSurfaceTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := `<h1>{{.ModelYear}} {{.Manufacturer}} {{.ModelName}}</h1>
<p>{{currency .Breakdown.TotalPrice}} / {{currencyWhole .Breakdown.MSRP}} / {{monthlyPayment .Breakdown.TotalPrice}}</p>
{{if .State.IsSectionHidden "fees"}}<p>no fees shown</p>{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "quote.html"), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	svc := NewRenderService(dir)
	view := &models.MergedVehicleView{
		ModelYear:    "2023",
		Manufacturer: "Kawasaki",
		ModelName:    "Ninja 650",
		Breakdown: models.PriceBreakdown{
			MSRP:       8299,
			TotalPrice: 8798.50,
		},
		State: models.QuoteState{HiddenSectionIDs: []string{"fees"}},
	}

	html, err := svc.Render(SurfaceQuote, view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "2023 Kawasaki Ninja 650") {
		t.Fatalf("descriptive line missing: %s", html)
	}
	if !strings.Contains(html, "$8,798.50") || !strings.Contains(html, "$8,299") {
		t.Fatalf("currency formatting missing: %s", html)
	}
	if !strings.Contains(html, "no fees shown") {
		t.Fatalf("hidden-section branch not taken: %s", html)
	}
}

func TestRender_UnknownSurface(t *testing.T) {
	svc := NewRenderService(t.TempDir())
	if _, err := svc.Render("poster", &models.MergedVehicleView{}); err == nil {
		t.Fatal("expected error for unknown surface")
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	svc := NewRenderService(t.TempDir())
	if _, err := svc.Render(SurfaceKeyTag, &models.MergedVehicleView{}); err == nil {
		t.Fatal("expected error when the template file is absent")
	}
}
