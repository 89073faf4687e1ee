package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/pricing"
)

// ViewMode selects how strictly BuildView treats a portal failure. A quote
// cannot render without price data, so a transport failure is fatal there;
// a tag can fall back to baseline-only data and show a not-found indicator.
type ViewMode int

const (
	ViewModeQuote ViewMode = iota
	ViewModeTag
)

// ErrMissingStockNumber is returned when a view is requested without the
// required identifying parameter. This is a blocking condition; no partial
// render is attempted.
var ErrMissingStockNumber = errors.New("stock number is required")

// QuoteService is the assembly engine: it reconciles the cached baseline
// feed with the live portal pricing into one MergedVehicleView, applies the
// staff overrides, and derives the price breakdown.
type QuoteService struct {
	feed   FeedServiceInterface
	portal PortalClientInterface
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(feed FeedServiceInterface, portal PortalClientInterface) *QuoteService {
	return &QuoteService{feed: feed, portal: portal}
}

// BuildView produces the merged, override-applied view of one vehicle.
//
// The baseline and portal fetches run concurrently; the merge happens only
// after both settle, and its precedence is fixed (baseline wins descriptive
// fields, portal wins price fields) regardless of which fetch finished
// first. The baseline fetch is best-effort in both modes. On portal
// transport failure BuildView returns an error; in tag mode it additionally
// returns a baseline-only placeholder view with Status "error" so the tag
// surface can still render.
func (s *QuoteService) BuildView(ctx context.Context, state models.QuoteState, mode ViewMode) (*models.MergedVehicleView, error) {
	stockNumber := strings.TrimSpace(state.StockNumber)
	if stockNumber == "" {
		return nil, ErrMissingStockNumber
	}

	type baselineResult struct {
		item *models.InventoryItem
		err  error
	}
	type portalResult struct {
		snap *models.PricingSnapshot
		err  error
	}

	baselineCh := make(chan baselineResult, 1)
	portalCh := make(chan portalResult, 1)

	go func() {
		item, err := s.feed.GetVehicle(ctx, stockNumber)
		baselineCh <- baselineResult{item: item, err: err}
	}()
	go func() {
		snap, err := s.portal.GetPricing(ctx, stockNumber)
		portalCh <- portalResult{snap: snap, err: err}
	}()

	baseline := <-baselineCh
	live := <-portalCh

	if baseline.err != nil {
		// Baseline enrichment is best-effort; the portal is the price
		// authority either way.
		log.Printf("⚠️ QuoteService: baseline lookup failed for %s: %v", stockNumber, baseline.err)
		baseline.item = nil
	}

	if live.err != nil && !errors.Is(live.err, ErrVehicleNotFound) {
		if mode == ViewModeQuote {
			return nil, fmt.Errorf("fetch portal pricing for %s: %w", stockNumber, live.err)
		}
		view := s.merge(stockNumber, baseline.item, nil, state)
		view.Status = models.ViewStatusError
		return view, fmt.Errorf("fetch portal pricing for %s: %w", stockNumber, live.err)
	}

	view := s.merge(stockNumber, baseline.item, live.snap, state)
	if errors.Is(live.err, ErrVehicleNotFound) {
		view.Status = models.ViewStatusNotFound
	}
	return view, nil
}

// merge applies the single precedence table all surfaces share: baseline
// wins for year, manufacturer, model, color, VIN, usage, description and the
// first image when it has a non-empty value; the portal wins everything
// price-related.
func (s *QuoteService) merge(stockNumber string, baseline *models.InventoryItem, live *models.PricingSnapshot, state models.QuoteState) *models.MergedVehicleView {
	view := &models.MergedVehicleView{
		Status:      models.ViewStatusOK,
		StockNumber: stockNumber,
		State:       state,
	}

	if live != nil {
		view.StockNumber = live.StockNumber
		view.ModelYear = live.ModelYear
		view.Manufacturer = live.Manufacturer
		view.ModelName = live.ModelName
		view.Color = live.Color
		view.VIN = live.VIN
		view.Usage = live.Usage
		view.Description = live.Description
		view.ImageURLs = live.ImageURLs
		if len(live.ImageURLs) > 0 {
			view.HeroImageURL = live.ImageURLs[0]
		}
		view.QuoteLevel = live.QuoteLevel
		view.YellowTag = live.YellowTag
		view.EstimatedArrival = live.EstimatedArrival
		view.SalePriceExpireDate = live.SalePriceExpireDate
		view.Pricing = live
	}

	if baseline != nil {
		overrideNonEmpty(&view.ModelYear, baseline.Year)
		overrideNonEmpty(&view.Manufacturer, baseline.Manufacturer)
		overrideNonEmpty(&view.ModelName, baseline.ModelName)
		overrideNonEmpty(&view.Color, baseline.Color)
		overrideNonEmpty(&view.VIN, baseline.VIN)
		overrideNonEmpty(&view.Usage, baseline.Usage)
		overrideNonEmpty(&view.HeroImageURL, baseline.ImageURL)
		overrideNonEmpty(&view.Description, baselineDescription(baseline))
		view.ModelType = baseline.ModelType
		view.WebURL = baseline.WebURL
	}

	if state.OverrideImageURL != "" {
		view.HeroImageURL = state.OverrideImageURL
	}

	if live != nil {
		var tradeIn float64
		for _, item := range live.TradeInItems {
			tradeIn += item.Amount
		}
		view.Breakdown = pricing.Calculate(
			live.MSRP,
			live.AccessoryItems,
			state.CustomAccessories,
			live.DiscountItems,
			live.RebateItems,
			live.OTDItems,
			tradeIn,
		)
	}

	return view
}

func overrideNonEmpty(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = strings.TrimSpace(value)
	}
}

// baselineDescription composes the descriptive line the feed implies when it
// carries no explicit description field.
func baselineDescription(item *models.InventoryItem) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{item.Year, item.Manufacturer, item.ModelName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}
