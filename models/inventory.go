package models

import (
	"encoding/xml"
	"strings"
	"time"
)

// InventoryItem represents one vehicle row from the baseline feed.
// Rows are replaced wholesale on each feed refresh, never mutated in place.
type InventoryItem struct {
	StockNumber  string `json:"stockNumber"`
	VIN          string `json:"vin"`
	Manufacturer string `json:"manufacturer"`
	ModelName    string `json:"modelName"`
	ModelType    string `json:"modelType"`
	ModelCode    string `json:"modelCode"`
	Color        string `json:"color"`
	Year         string `json:"year"`
	Usage        string `json:"usage"`
	Price        string `json:"price"`
	ImageURL     string `json:"imageUrl"`
	WebURL       string `json:"webUrl"`
	UpdatedAt    string `json:"updatedAt"`
	ImageCount   int    `json:"imageCount"`
}

// HasInHousePhotos reports whether the unit has a full in-house photo set,
// as opposed to stock manufacturer images.
func (it InventoryItem) HasInHousePhotos() bool {
	return it.ImageCount > 10
}

// MatchesStockNumber compares stock numbers case-insensitively.
// The stock number is the join key across the baseline feed and the portal.
func (it InventoryItem) MatchesStockNumber(stockNumber string) bool {
	return strings.EqualFold(strings.TrimSpace(it.StockNumber), strings.TrimSpace(stockNumber))
}

// UpdatedDay returns the calendar day of the row's update timestamp, with
// time-of-day dropped. Returns the zero time when the timestamp is unparsable.
func (it InventoryItem) UpdatedDay() time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"1/2/2006 3:04:05 PM",
		"2006-01-02",
	}
	raw := strings.TrimSpace(it.UpdatedAt)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// FeedDocument is the bulk inventory feed as served upstream.
type FeedDocument struct {
	XMLName xml.Name   `xml:"feed"`
	Items   []FeedItem `xml:"item"`
}

// FeedItem is one raw record of the bulk feed document.
type FeedItem struct {
	StockNumber  string   `xml:"stocknumber"`
	VIN          string   `xml:"vin"`
	Manufacturer string   `xml:"manufacturer"`
	ModelName    string   `xml:"model_name"`
	ModelType    string   `xml:"model_type"`
	ModelCode    string   `xml:"model_code"`
	Color        string   `xml:"color"`
	Year         string   `xml:"year"`
	Usage        string   `xml:"usage"`
	Price        string   `xml:"price"`
	WebURL       string   `xml:"link"`
	UpdatedAt    string   `xml:"updated"`
	ImageURLs    []string `xml:"images>imageurl"`
}

// ToInventoryItem normalizes a raw feed record into an InventoryItem.
func (f FeedItem) ToInventoryItem() InventoryItem {
	item := InventoryItem{
		StockNumber:  strings.TrimSpace(f.StockNumber),
		VIN:          strings.TrimSpace(f.VIN),
		Manufacturer: strings.TrimSpace(f.Manufacturer),
		ModelName:    strings.TrimSpace(f.ModelName),
		ModelType:    strings.TrimSpace(f.ModelType),
		ModelCode:    strings.TrimSpace(f.ModelCode),
		Color:        strings.TrimSpace(f.Color),
		Year:         strings.TrimSpace(f.Year),
		Usage:        strings.TrimSpace(f.Usage),
		Price:        strings.TrimSpace(f.Price),
		WebURL:       strings.TrimSpace(f.WebURL),
		UpdatedAt:    strings.TrimSpace(f.UpdatedAt),
		ImageCount:   len(f.ImageURLs),
	}
	if len(f.ImageURLs) > 0 {
		item.ImageURL = strings.TrimSpace(f.ImageURLs[0])
	}
	return item
}

// InventorySnapshot is the cached form of the parsed feed: the rows plus the
// moment they were fetched. Data and timestamp are written together so a
// partially-updated cache entry can never be observed.
type InventorySnapshot struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Items     []InventoryItem `json:"items"`
}
