// Package inventory holds the in-memory browsing state for the vehicle table:
// the full snapshot, the filtered subset, and the current page slice, with the
// operations that derive one from another.
package inventory

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

// PageSizeAll disables pagination: a single page containing every filtered item.
const PageSizeAll = 0

// PaginationState tracks the current page window over the filtered items.
// CurrentPage is 1-based and always clamped into [1, TotalPages].
type PaginationState struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// FilterCriteria is the structured filter set applied to the snapshot.
// All provided criteria are ANDed; empty fields are ignored.
type FilterCriteria struct {
	Search       string
	Manufacturer string
	Model        string
	Type         string
	Usage        string
	Year         string
	UpdatedDate  string // calendar day, "2006-01-02"; time-of-day is ignored
	PhotoStatus  string // "inhouse" or "stock"
}

// PhotoStatus values.
const (
	PhotoStatusInHouse = "inhouse"
	PhotoStatusStock   = "stock"
)

// State owns the three item sets and the pagination window. It is an explicit
// struct passed into handlers rather than package-level shared variables, and
// all of its operations are synchronous pure transformations of loaded data.
type State struct {
	All      []models.InventoryItem
	Filtered []models.InventoryItem
	Page     []models.InventoryItem

	Pagination PaginationState

	sortColumn string
	sortAsc    bool
}

// NewState returns a State with the default page window.
func NewState(pageSize int) *State {
	return &State{
		Pagination: PaginationState{CurrentPage: 1, PageSize: pageSize, TotalPages: 1},
	}
}

// SetItems replaces the full snapshot wholesale and re-derives the filtered
// and paged sets. Filters are not persisted across snapshots.
func (s *State) SetItems(items []models.InventoryItem) {
	s.All = items
	s.Filtered = items
	s.ApplyPagination()
}

// ApplyFilters recomputes the filtered set from the full snapshot.
// Filtering always resets the window to the first page.
func (s *State) ApplyFilters(criteria FilterCriteria) {
	terms := strings.Fields(strings.ToLower(criteria.Search))

	filtered := make([]models.InventoryItem, 0, len(s.All))
	for _, item := range s.All {
		if !matchesSearchTerms(item, terms) {
			continue
		}
		if !equalsFoldOrEmpty(criteria.Manufacturer, item.Manufacturer) {
			continue
		}
		if !equalsFoldOrEmpty(criteria.Model, item.ModelName) {
			continue
		}
		if !equalsFoldOrEmpty(criteria.Type, item.ModelType) {
			continue
		}
		if !equalsFoldOrEmpty(criteria.Usage, item.Usage) {
			continue
		}
		if !equalsFoldOrEmpty(criteria.Year, item.Year) {
			continue
		}
		if !matchesUpdatedDate(item, criteria.UpdatedDate) {
			continue
		}
		if !matchesPhotoStatus(item, criteria.PhotoStatus) {
			continue
		}
		filtered = append(filtered, item)
	}

	s.Filtered = filtered
	s.Pagination.CurrentPage = 1
	s.ApplyPagination()
}

// ApplyPagination recomputes TotalPages, clamps CurrentPage and slices the
// filtered items into the current page. Calling it twice with unchanged
// inputs yields the identical page.
func (s *State) ApplyPagination() {
	size := s.Pagination.PageSize
	if size <= PageSizeAll {
		s.Pagination.TotalPages = 1
		s.Pagination.CurrentPage = 1
		s.Page = s.Filtered
		return
	}

	total := (len(s.Filtered) + size - 1) / size
	if total < 1 {
		total = 1
	}
	s.Pagination.TotalPages = total

	if s.Pagination.CurrentPage < 1 {
		s.Pagination.CurrentPage = 1
	}
	if s.Pagination.CurrentPage > total {
		s.Pagination.CurrentPage = total
	}

	start := (s.Pagination.CurrentPage - 1) * size
	end := start + size
	if start > len(s.Filtered) {
		start = len(s.Filtered)
	}
	if end > len(s.Filtered) {
		end = len(s.Filtered)
	}
	s.Page = s.Filtered[start:end]
}

// SetPage moves the window to the requested page (clamped) and re-slices.
func (s *State) SetPage(page int) {
	s.Pagination.CurrentPage = page
	s.ApplyPagination()
}

// SetPageSize changes the page size and re-derives the window.
func (s *State) SetPageSize(size int) {
	s.Pagination.PageSize = size
	s.ApplyPagination()
}

// SortBy stable-sorts the filtered items on the given column. Repeating the
// same column toggles direction; a newly selected column resets to ascending.
func (s *State) SortBy(column string) {
	if s.sortColumn == column {
		s.sortAsc = !s.sortAsc
	} else {
		s.sortColumn = column
		s.sortAsc = true
	}
	s.resort()
}

// SortByDirection sorts on column with an explicit direction, for callers
// that carry the direction in the request instead of toggling.
func (s *State) SortByDirection(column string, asc bool) {
	s.sortColumn = column
	s.sortAsc = asc
	s.resort()
}

func (s *State) resort() {
	column, asc := s.sortColumn, s.sortAsc
	sort.SliceStable(s.Filtered, func(i, j int) bool {
		a := columnValue(s.Filtered[i], column)
		b := columnValue(s.Filtered[j], column)
		if asc {
			return compareValues(a, b) < 0
		}
		return compareValues(a, b) > 0
	})
	s.ApplyPagination()
}

// SortColumn reports the active sort column and direction.
func (s *State) SortColumn() (string, bool) {
	return s.sortColumn, s.sortAsc
}

func matchesSearchTerms(item models.InventoryItem, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		item.StockNumber, item.VIN, item.Manufacturer, item.ModelName,
		item.ModelType, item.ModelCode, item.Color, item.Year, item.Usage,
	}, " "))
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func equalsFoldOrEmpty(want, have string) bool {
	if strings.TrimSpace(want) == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have))
}

func matchesUpdatedDate(item models.InventoryItem, wantDay string) bool {
	if strings.TrimSpace(wantDay) == "" {
		return true
	}
	want, err := time.Parse("2006-01-02", strings.TrimSpace(wantDay))
	if err != nil {
		return false
	}
	day := item.UpdatedDay()
	if day.IsZero() {
		return false
	}
	return day.Equal(want)
}

func matchesPhotoStatus(item models.InventoryItem, status string) bool {
	switch status {
	case PhotoStatusInHouse:
		return item.HasInHousePhotos()
	case PhotoStatusStock:
		return !item.HasInHousePhotos()
	default:
		return true
	}
}

func columnValue(item models.InventoryItem, column string) string {
	switch column {
	case "stockNumber":
		return item.StockNumber
	case "vin":
		return item.VIN
	case "manufacturer":
		return item.Manufacturer
	case "modelName":
		return item.ModelName
	case "modelType":
		return item.ModelType
	case "modelCode":
		return item.ModelCode
	case "color":
		return item.Color
	case "year":
		return item.Year
	case "usage":
		return item.Usage
	case "price":
		return item.Price
	case "updatedAt":
		return item.UpdatedAt
	default:
		return item.StockNumber
	}
}

// compareValues orders two cell values with type-aware comparison: numeric
// when both parse as numbers, else chronological when both parse as dates,
// else case-insensitive lexicographic.
func compareValues(a, b string) int {
	an, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bn, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	at, aok := parseCellDate(a)
	bt, bok := parseCellDate(b)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func parseCellDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"1/2/2006 3:04:05 PM",
		"2006-01-02",
	}
	raw := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
