package repository

import (
	"context"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

// Availability describes the state of the durable cache backing.
type Availability struct {
	Available     bool `json:"available"`
	QuotaExceeded bool `json:"quotaExceeded"`
}

// CacheStoreInterface defines the contract for durable key/value storage with
// a transparent in-memory fallback. Storage failures are absorbed here and
// never surfaced to callers: Get answers with a miss, Set answers false only
// when even the fallback cannot take the write.
type CacheStoreInterface interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) bool
	Remove(ctx context.Context, key string)
	CheckAvailability(ctx context.Context) Availability
}

// VehicleIndexInterface defines the contract for the indexed per-vehicle
// secondary read path used by tag and quote lookups.
type VehicleIndexInterface interface {
	ReplaceAll(ctx context.Context, items []models.InventoryItem) error
	GetByStockNumber(ctx context.Context, stockNumber string) (*models.InventoryItem, error)
}
