package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ViewStatus classifies the outcome of building a vehicle view. NotFound is a
// distinct state from Error: a retry will not help a vehicle that the portal
// does not know about, so the two must never be conflated.
type ViewStatus string

const (
	ViewStatusOK       ViewStatus = "ok"
	ViewStatusNotFound ViewStatus = "not_found"
	ViewStatusError    ViewStatus = "error"
)

// QuoteState holds the staff-entered overrides applied on top of a merged
// vehicle view: customer identity, hidden render sections, custom accessories
// and an optional hero image substitute. It round-trips losslessly through
// the render URL query string, which is what makes headless capture
// reproduce the exact interactive view.
type QuoteState struct {
	StockNumber       string            `json:"stockNumber"`
	CustomerName      string            `json:"customerName"`
	CustomerInfo      string            `json:"customerInfo"`
	HiddenSectionIDs  []string          `json:"hiddenSectionIds"`
	CustomAccessories []CustomAccessory `json:"customAccessories"`
	OverrideImageURL  string            `json:"overrideImageUrl"`
}

// IsSectionHidden reports whether the given toggle id is excluded from render.
func (s QuoteState) IsSectionHidden(id string) bool {
	for _, hidden := range s.HiddenSectionIDs {
		if hidden == id {
			return true
		}
	}
	return false
}

// EncodeQuery serializes the state to the render URL contract:
//
//	?search=<stock>&name=&info=&hide=<comma-list>&acc=<name:price,...>&img=<url>
//
// Accessory names are percent-encoded individually so a name containing ":"
// or "," survives the pair and list separators. The result is assembled by
// hand; running it back through url.Values.Encode would re-escape the
// separators and break the contract.
func (s QuoteState) EncodeQuery() string {
	var parts []string
	parts = append(parts, "search="+url.QueryEscape(s.StockNumber))
	parts = append(parts, "name="+url.QueryEscape(s.CustomerName))
	parts = append(parts, "info="+url.QueryEscape(s.CustomerInfo))

	hidden := make([]string, 0, len(s.HiddenSectionIDs))
	for _, id := range s.HiddenSectionIDs {
		hidden = append(hidden, url.QueryEscape(id))
	}
	parts = append(parts, "hide="+strings.Join(hidden, ","))

	pairs := make([]string, 0, len(s.CustomAccessories))
	for _, acc := range s.CustomAccessories {
		pairs = append(pairs, url.QueryEscape(acc.Name)+":"+strconv.FormatFloat(acc.Price, 'f', -1, 64))
	}
	parts = append(parts, "acc="+strings.Join(pairs, ","))
	parts = append(parts, "img="+url.QueryEscape(s.OverrideImageURL))

	return strings.Join(parts, "&")
}

// DecodeQuoteState parses a raw query string produced by EncodeQuery (or typed
// by hand into a render URL). It works on the undecoded string because the
// hide and acc parameters use "," and ":" as structural separators; a generic
// url.ParseQuery pass would collapse escaped separators inside accessory
// names into structural ones.
func DecodeQuoteState(rawQuery string) (QuoteState, error) {
	state := QuoteState{}
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return state, nil
	}

	for _, kv := range strings.Split(rawQuery, "&") {
		key, rawValue, _ := strings.Cut(kv, "=")
		switch key {
		case "search":
			v, err := url.QueryUnescape(rawValue)
			if err != nil {
				return state, fmt.Errorf("bad search parameter: %w", err)
			}
			state.StockNumber = v
		case "name":
			v, err := url.QueryUnescape(rawValue)
			if err != nil {
				return state, fmt.Errorf("bad name parameter: %w", err)
			}
			state.CustomerName = v
		case "info":
			v, err := url.QueryUnescape(rawValue)
			if err != nil {
				return state, fmt.Errorf("bad info parameter: %w", err)
			}
			state.CustomerInfo = v
		case "hide":
			if rawValue == "" {
				continue
			}
			for _, id := range strings.Split(rawValue, ",") {
				decoded, err := url.QueryUnescape(id)
				if err != nil {
					return state, fmt.Errorf("bad hide parameter: %w", err)
				}
				if decoded != "" {
					state.HiddenSectionIDs = append(state.HiddenSectionIDs, decoded)
				}
			}
		case "acc":
			if rawValue == "" {
				continue
			}
			for _, pair := range strings.Split(rawValue, ",") {
				name, price, ok := strings.Cut(pair, ":")
				if !ok {
					return state, fmt.Errorf("bad accessory pair %q", pair)
				}
				decodedName, err := url.QueryUnescape(name)
				if err != nil {
					return state, fmt.Errorf("bad accessory name %q: %w", name, err)
				}
				amount, err := strconv.ParseFloat(price, 64)
				if err != nil {
					return state, fmt.Errorf("bad accessory price %q: %w", price, err)
				}
				state.CustomAccessories = append(state.CustomAccessories, CustomAccessory{
					Name:  decodedName,
					Price: amount,
				})
			}
		case "img":
			v, err := url.QueryUnescape(rawValue)
			if err != nil {
				return state, fmt.Errorf("bad img parameter: %w", err)
			}
			state.OverrideImageURL = v
		}
	}
	return state, nil
}

// MergedVehicleView is the reconciled single-vehicle object every quote, tag
// and display renderer consumes: portal pricing fields with the fresher
// baseline descriptive fields layered on top, plus the applied QuoteState
// and the derived price breakdown.
type MergedVehicleView struct {
	Status       ViewStatus      `json:"status"`
	StockNumber  string          `json:"stockNumber"`
	VIN          string          `json:"vin"`
	ModelYear    string          `json:"modelYear"`
	Manufacturer string          `json:"manufacturer"`
	ModelName    string          `json:"modelName"`
	ModelType    string          `json:"modelType"`
	Color        string          `json:"color"`
	Usage        string          `json:"usage"`
	Description  string          `json:"description"`
	HeroImageURL string          `json:"heroImageUrl"`
	ImageURLs    []string        `json:"imageUrls"`
	WebURL       string          `json:"webUrl"`

	Pricing   *PricingSnapshot `json:"pricing,omitempty"`
	Breakdown PriceBreakdown   `json:"breakdown"`
	State     QuoteState       `json:"state"`

	QuoteLevel          string `json:"quoteLevel"`
	YellowTag           bool   `json:"yellowTag"`
	EstimatedArrival    string `json:"estimatedArrival"`
	SalePriceExpireDate string `json:"salePriceExpireDate"`
}

// VisibleSections returns the standard render section ids minus the ones the
// quote state hides, in stable display order.
func (v MergedVehicleView) VisibleSections() []string {
	all := []string{"msrp", "accessories", "discounts", "rebates", "fees", "tradein", "payment", "arrival"}
	visible := make([]string, 0, len(all))
	for _, id := range all {
		if !v.State.IsSectionHidden(id) {
			visible = append(visible, id)
		}
	}
	return visible
}
