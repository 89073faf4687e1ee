package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/inventory"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/repository"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/utils"
)

const (
	pageSizeCacheKey    = "table_page_size"
	currentPageCacheKey = "table_current_page"
	defaultPageSize     = 25
)

// InventoryController serves the filterable, sortable, paginated vehicle
// table. It owns the browsing State explicitly (one per server session)
// instead of scattering filter and page variables across package globals.
type InventoryController struct {
	feed  service.FeedServiceInterface
	cache repository.CacheStoreInterface

	mu    sync.Mutex
	state *inventory.State
}

// NewInventoryController creates a new InventoryController.
func NewInventoryController(feed service.FeedServiceInterface, cache repository.CacheStoreInterface) *InventoryController {
	return &InventoryController{
		feed:  feed,
		cache: cache,
		state: inventory.NewState(defaultPageSize),
	}
}

type inventoryResponse struct {
	Items         any                       `json:"items"`
	Pagination    inventory.PaginationState `json:"pagination"`
	TotalCount    int                       `json:"totalCount"`
	FilteredCount int                       `json:"filteredCount"`
	FetchedAt     string                    `json:"fetchedAt"`
	Stale         bool                      `json:"stale"`
}

// ListInventory handles GET /admin/inventory
func (c *InventoryController) ListInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.feed.GetSnapshot(r.Context())
	if err != nil {
		log.Printf("❌ ListInventory: snapshot unavailable: %v", err)
		writeJSONError(w, "inventory feed unavailable, retry shortly", http.StatusBadGateway)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetItems(snap.Items)
	c.state.ApplyFilters(criteriaFromQuery(r))

	if col := r.URL.Query().Get("sort"); col != "" {
		switch r.URL.Query().Get("dir") {
		case "asc":
			c.state.SortByDirection(col, true)
		case "desc":
			c.state.SortByDirection(col, false)
		default:
			c.state.SortBy(col)
		}
	}

	c.applyWindowFromQuery(r)
	c.persistWindow(r)

	writeJSON(w, inventoryResponse{
		Items:         c.state.Page,
		Pagination:    c.state.Pagination,
		TotalCount:    len(c.state.All),
		FilteredCount: len(c.state.Filtered),
		FetchedAt:     snap.FetchedAt.Format(time.RFC3339),
		Stale:         time.Since(snap.FetchedAt) > service.SnapshotTTL,
	})
}

// RefreshInventory handles GET /admin/inventory/refresh: clears the cached
// snapshot and forces a fresh feed pull.
func (c *InventoryController) RefreshInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.feed.Refresh(r.Context())
	if err != nil {
		log.Printf("❌ RefreshInventory: %v", err)
		writeJSONError(w, fmt.Sprintf("refresh failed: %v", err), http.StatusBadGateway)
		return
	}

	log.Printf("✅ RefreshInventory: %d vehicles", len(snap.Items))
	writeJSON(w, map[string]any{
		"count":     len(snap.Items),
		"fetchedAt": snap.FetchedAt.Format(time.RFC3339),
	})
}

// ExportInventory handles GET /admin/inventory/export: the currently
// filtered list as a spreadsheet download.
func (c *InventoryController) ExportInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.feed.GetSnapshot(r.Context())
	if err != nil {
		log.Printf("❌ ExportInventory: snapshot unavailable: %v", err)
		writeJSONError(w, "inventory feed unavailable, retry shortly", http.StatusBadGateway)
		return
	}

	c.mu.Lock()
	c.state.SetItems(snap.Items)
	c.state.ApplyFilters(criteriaFromQuery(r))
	filtered := c.state.Filtered
	c.mu.Unlock()

	headers := []string{"Stock #", "VIN", "Manufacturer", "Model", "Type", "Code", "Color", "Year", "Usage", "Price", "Updated", "Photos"}
	data := make([][]string, 0, len(filtered))
	for _, item := range filtered {
		photos := "stock"
		if item.HasInHousePhotos() {
			photos = "in-house"
		}
		data = append(data, []string{
			item.StockNumber, item.VIN, item.Manufacturer, item.ModelName,
			item.ModelType, item.ModelCode, item.Color, item.Year, item.Usage,
			item.Price, item.UpdatedAt, photos,
		})
	}

	log.Printf("📤 ExportInventory: exporting %d rows", len(data))
	if r.URL.Query().Get("format") == "csv" {
		utils.ExportCSV(w, "inventory.csv", headers, data)
		return
	}
	utils.ExportExcel(w, "Inventory", headers, data)
}

func criteriaFromQuery(r *http.Request) inventory.FilterCriteria {
	q := r.URL.Query()
	return inventory.FilterCriteria{
		Search:       q.Get("search"),
		Manufacturer: q.Get("manufacturer"),
		Model:        q.Get("model"),
		Type:         q.Get("type"),
		Usage:        q.Get("usage"),
		Year:         q.Get("year"),
		UpdatedDate:  q.Get("updated"),
		PhotoStatus:  q.Get("photos"),
	}
}

// applyWindowFromQuery sets page size and page from the request, falling
// back to the persisted window when the request doesn't carry one. Filter
// criteria are deliberately never persisted.
func (c *InventoryController) applyWindowFromQuery(r *http.Request) {
	q := r.URL.Query()

	switch raw := q.Get("pageSize"); raw {
	case "":
		if saved, ok := c.cache.Get(r.Context(), pageSizeCacheKey); ok {
			if n, err := strconv.Atoi(saved); err == nil {
				c.state.SetPageSize(n)
			}
		}
	case "all":
		c.state.SetPageSize(inventory.PageSizeAll)
	default:
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.state.SetPageSize(n)
		}
	}

	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.state.SetPage(n)
		}
	} else if saved, ok := c.cache.Get(r.Context(), currentPageCacheKey); ok {
		if n, err := strconv.Atoi(saved); err == nil {
			c.state.SetPage(n)
		}
	}
}

func (c *InventoryController) persistWindow(r *http.Request) {
	c.cache.Set(r.Context(), pageSizeCacheKey, strconv.Itoa(c.state.Pagination.PageSize))
	c.cache.Set(r.Context(), currentPageCacheKey, strconv.Itoa(c.state.Pagination.CurrentPage))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ writeJSON: encode failed: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": strings.TrimSpace(message)})
}
