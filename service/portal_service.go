package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

// ErrVehicleNotFound marks a portal response that carried no recognizable
// vehicle identity. It is deliberately distinct from transport errors:
// retrying will not make the portal learn about the unit.
var ErrVehicleNotFound = errors.New("vehicle not found in portal")

// PortalClientInterface defines the contract for the live pricing API.
type PortalClientInterface interface {
	GetPricing(ctx context.Context, stockNumber string) (*models.PricingSnapshot, error)
}

// PortalService is the HTTP client for the dealer portal's per-vehicle
// pricing endpoint. Pricing is fetched fresh per quote/tag build and never
// cached; the portal is authoritative for every price field.
type PortalService struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure PortalService implements PortalClientInterface
var _ PortalClientInterface = (*PortalService)(nil)

// NewPortalService creates a PortalService for the given API base URL.
func NewPortalService(baseURL string) *PortalService {
	return &PortalService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Portal API response types.
type portalLineItem struct {
	Description string  `json:"Description"`
	Amount      float64 `json:"Amount"`
	Included    bool    `json:"Included"`
	ImageURL    string  `json:"ImageUrl"`
}

type portalImage struct {
	ImageURL string `json:"ImageUrl"`
}

type portalResponse struct {
	StockNumber         string           `json:"StockNumber"`
	ModelYear           string           `json:"ModelYear"`
	Manufacturer        string           `json:"Manufacturer"`
	ModelName           string           `json:"ModelName"`
	Color               string           `json:"Color"`
	VIN                 string           `json:"VIN"`
	Usage               string           `json:"Usage"`
	Description         string           `json:"Description"`
	MSRP                float64          `json:"MSRP"`
	MSRPUnit            float64          `json:"MSRPUnit"`
	AccessoryItems      []portalLineItem `json:"AccessoryItems"`
	DiscountItems       []portalLineItem `json:"DiscountItems"`
	MatItems            []portalLineItem `json:"MatItems"`
	OTDItems            []portalLineItem `json:"OTDItems"`
	TradeInItems        []portalLineItem `json:"TradeInItems"`
	FreeItems           []portalLineItem `json:"FreeItems"`
	Images              []portalImage    `json:"Images"`
	QuoteLevel          string           `json:"QuoteLevel"`
	YellowTag           bool             `json:"YellowTag"`
	EstimatedArrival    string           `json:"EstimatedArrival"`
	SalePriceExpireDate string           `json:"SalePriceExpireDate"`
}

// GetPricing fetches the live pricing snapshot for one stock number.
func (s *PortalService) GetPricing(ctx context.Context, stockNumber string) (*models.PricingSnapshot, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(strings.TrimSpace(stockNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build portal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVehicleNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("portal returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload portalResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode portal response: %w", err)
	}

	// A well-formed body without an identity field means the portal does
	// not know this unit, not that the request failed.
	if strings.TrimSpace(payload.StockNumber) == "" {
		return nil, ErrVehicleNotFound
	}

	return payload.toSnapshot(), nil
}

func (p portalResponse) toSnapshot() *models.PricingSnapshot {
	snap := &models.PricingSnapshot{
		StockNumber:         strings.TrimSpace(p.StockNumber),
		ModelYear:           strings.TrimSpace(p.ModelYear),
		Manufacturer:        strings.TrimSpace(p.Manufacturer),
		ModelName:           strings.TrimSpace(p.ModelName),
		Color:               strings.TrimSpace(p.Color),
		VIN:                 strings.TrimSpace(p.VIN),
		Usage:               strings.TrimSpace(p.Usage),
		Description:         strings.TrimSpace(p.Description),
		MSRP:                p.MSRP,
		MSRPUnit:            p.MSRPUnit,
		AccessoryItems:      convertLineItems(p.AccessoryItems, false),
		DiscountItems:       convertLineItems(p.DiscountItems, true),
		RebateItems:         convertLineItems(p.MatItems, true),
		OTDItems:            convertLineItems(p.OTDItems, false),
		TradeInItems:        convertLineItems(p.TradeInItems, false),
		FreeItems:           convertLineItems(p.FreeItems, false),
		QuoteLevel:          strings.TrimSpace(p.QuoteLevel),
		YellowTag:           p.YellowTag,
		EstimatedArrival:    strings.TrimSpace(p.EstimatedArrival),
		SalePriceExpireDate: strings.TrimSpace(p.SalePriceExpireDate),
	}
	for _, img := range p.Images {
		if u := strings.TrimSpace(img.ImageURL); u != "" {
			snap.ImageURLs = append(snap.ImageURLs, u)
		}
	}
	return snap
}

// convertLineItems maps portal items to the internal shape. Discounts and
// rebates are normalized to negative amounts regardless of how the portal
// signed them, so the calculator's sign convention holds everywhere.
func convertLineItems(items []portalLineItem, negative bool) []models.PriceLineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.PriceLineItem, 0, len(items))
	for _, it := range items {
		amount := it.Amount
		if negative {
			amount = -math.Abs(amount)
		}
		out = append(out, models.PriceLineItem{
			Description: strings.TrimSpace(it.Description),
			Amount:      amount,
			Included:    it.Included,
			ImageURL:    strings.TrimSpace(it.ImageURL),
		})
	}
	return out
}
