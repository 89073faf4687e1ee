package models

// PriceLineItem is a single itemized price component from the portal:
// an accessory, discount, rebate, fee, trade-in or free item.
// Discounts and rebates carry negative amounts, fees positive.
type PriceLineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Included    bool    `json:"included"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// CustomAccessory is a staff-entered line item added on top of the portal
// accessory list. It round-trips through the quote URL as "name:price".
type CustomAccessory struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PricingSnapshot is the live per-vehicle pricing pulled from the portal at
// quote/tag build time. It is fetched fresh per build and never persisted.
type PricingSnapshot struct {
	StockNumber         string          `json:"stockNumber"`
	ModelYear           string          `json:"modelYear"`
	Manufacturer        string          `json:"manufacturer"`
	ModelName           string          `json:"modelName"`
	Color               string          `json:"color"`
	VIN                 string          `json:"vin"`
	Usage               string          `json:"usage"`
	Description         string          `json:"description"`
	MSRP                float64         `json:"msrp"`
	MSRPUnit            float64         `json:"msrpUnit"`
	AccessoryItems      []PriceLineItem `json:"accessoryItems"`
	DiscountItems       []PriceLineItem `json:"discountItems"`
	RebateItems         []PriceLineItem `json:"rebateItems"`
	OTDItems            []PriceLineItem `json:"otdItems"`
	TradeInItems        []PriceLineItem `json:"tradeInItems"`
	FreeItems           []PriceLineItem `json:"freeItems"`
	ImageURLs           []string        `json:"imageUrls"`
	QuoteLevel          string          `json:"quoteLevel"`
	YellowTag           bool            `json:"yellowTag"`
	EstimatedArrival    string          `json:"estimatedArrival"`
	SalePriceExpireDate string          `json:"salePriceExpireDate"`
}

// PriceBreakdown is the output of the price calculator. Every display surface
// (quote, hang tag, key tag, TV slide) agrees with these numbers, so the
// calculator is the only place they are derived.
type PriceBreakdown struct {
	MSRP                 float64 `json:"msrp"`
	AccessoriesTotal     float64 `json:"accessoriesTotal"`
	CustomAccessoryTotal float64 `json:"customAccessoriesTotal"`
	DiscountsTotal       float64 `json:"discountsTotal"`
	RebatesTotal         float64 `json:"rebatesTotal"`
	FeesTotal            float64 `json:"feesTotal"`
	SalesPrice           float64 `json:"salesPrice"`
	TotalPrice           float64 `json:"totalPrice"`
	TotalWithTradeIn     float64 `json:"totalWithTradeIn"`
	Savings              float64 `json:"savings"`
}
