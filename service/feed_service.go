package service

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/repository"
)

const (
	snapshotCacheKey = "inventory_snapshot"

	// SnapshotTTL is how long a cached snapshot is served without any
	// network call.
	SnapshotTTL = 15 * time.Minute

	// minFeedBytes guards against truncated upstream responses being
	// accepted as a valid feed.
	minFeedBytes = 200
)

// FeedServiceInterface defines the contract for the baseline data provider.
type FeedServiceInterface interface {
	GetSnapshot(ctx context.Context) (*models.InventorySnapshot, error)
	GetVehicle(ctx context.Context, stockNumber string) (*models.InventoryItem, error)
	Refresh(ctx context.Context) (*models.InventorySnapshot, error)
}

// FeedService fetches and caches the bulk inventory feed. Freshness is
// best-effort, availability is mandatory: a stale cache entry is always
// preferred over failing the caller, and only a cold cache surfaces a fetch
// error.
type FeedService struct {
	feedURL      string
	fetchTimeout time.Duration
	httpClient   *http.Client
	cache        repository.CacheStoreInterface
	vehicles     repository.VehicleIndexInterface

	// onRefresh is invoked after each successful fetch, outside any lock.
	// The display hub hangs off this to tell TV clients to re-render.
	onRefresh func()

	now func() time.Time
}

// Ensure FeedService implements FeedServiceInterface
var _ FeedServiceInterface = (*FeedService)(nil)

// NewFeedService creates a FeedService. vehicles may be nil when no database
// is configured; per-vehicle lookups then scan the snapshot instead.
func NewFeedService(feedURL string, fetchTimeout time.Duration, cache repository.CacheStoreInterface, vehicles repository.VehicleIndexInterface) *FeedService {
	return &FeedService{
		feedURL:      feedURL,
		fetchTimeout: fetchTimeout,
		httpClient:   &http.Client{},
		cache:        cache,
		vehicles:     vehicles,
		now:          time.Now,
	}
}

// OnRefresh registers a callback fired after every successful feed fetch.
func (s *FeedService) OnRefresh(fn func()) {
	s.onRefresh = fn
}

// GetSnapshot returns the inventory snapshot, serving the cache when it is
// younger than SnapshotTTL and falling back to a stale cache entry when the
// upstream fetch fails.
func (s *FeedService) GetSnapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	cached, ok := s.readCache(ctx)
	if ok && s.now().Sub(cached.FetchedAt) < SnapshotTTL {
		return cached, nil
	}

	fresh, err := s.fetch(ctx)
	if err != nil {
		if ok {
			log.Printf("⚠️ FeedService: fetch failed, serving stale snapshot from %s: %v", cached.FetchedAt.Format(time.RFC3339), err)
			return cached, nil
		}
		return nil, fmt.Errorf("fetch inventory feed with no cache to fall back on: %w", err)
	}
	return fresh, nil
}

// GetVehicle returns the baseline fields for one stock number, or (nil, nil)
// when the snapshot has no such unit. The lookup goes through the indexed
// secondary store when one is configured and matches case-insensitively
// either way.
func (s *FeedService) GetVehicle(ctx context.Context, stockNumber string) (*models.InventoryItem, error) {
	if s.vehicles != nil {
		item, err := s.vehicles.GetByStockNumber(ctx, stockNumber)
		if err == nil {
			return item, nil
		}
		log.Printf("⚠️ FeedService: vehicle index lookup failed, scanning snapshot: %v", err)
	}

	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snap.Items {
		if snap.Items[i].MatchesStockNumber(stockNumber) {
			item := snap.Items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// Refresh clears the cached snapshot and fetches fresh data.
func (s *FeedService) Refresh(ctx context.Context) (*models.InventorySnapshot, error) {
	s.cache.Remove(ctx, snapshotCacheKey)
	snap, err := s.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("forced feed refresh: %w", err)
	}
	return snap, nil
}

func (s *FeedService) readCache(ctx context.Context) (*models.InventorySnapshot, bool) {
	raw, ok := s.cache.Get(ctx, snapshotCacheKey)
	if !ok {
		return nil, false
	}
	var snap models.InventorySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("⚠️ FeedService: discarding unreadable cached snapshot: %v", err)
		s.cache.Remove(ctx, snapshotCacheKey)
		return nil, false
	}
	return &snap, true
}

// fetch pulls the feed with a bounded deadline, validates it, and replaces
// the cache entry (rows and timestamp together) plus the vehicle index.
func (s *FeedService) fetch(ctx context.Context) (*models.InventorySnapshot, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if len(body) < minFeedBytes {
		return nil, fmt.Errorf("feed payload suspiciously small (%d bytes)", len(body))
	}

	var doc models.FeedDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("feed parsed to zero items")
	}

	items := make([]models.InventoryItem, 0, len(doc.Items))
	for _, raw := range doc.Items {
		items = append(items, raw.ToInventoryItem())
	}

	snap := &models.InventorySnapshot{
		FetchedAt: s.now(),
		Items:     items,
	}

	encoded, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	// Re-probe the durable store each fetch cycle: a store that came back
	// since the last demotion picks up the new snapshot durably again.
	if avail := s.cache.CheckAvailability(ctx); !avail.Available {
		if avail.QuotaExceeded {
			log.Printf("⚠️ FeedService: durable cache quota exhausted, snapshot held in memory only")
		}
	}
	s.cache.Set(ctx, snapshotCacheKey, string(encoded))

	if s.vehicles != nil {
		if err := s.vehicles.ReplaceAll(ctx, items); err != nil {
			log.Printf("⚠️ FeedService: vehicle index update failed: %v", err)
		}
	}

	log.Printf("✅ FeedService: fetched %d vehicles from feed", len(items))

	if s.onRefresh != nil {
		s.onRefresh()
	}
	return snap, nil
}
