package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

// VehicleRepository maintains the vehicle_index table: one row per snapshot
// item, replaced wholesale on each feed refresh, looked up by stock number
// for the targeted enrichment path (tags, quotes).
type VehicleRepository struct {
	db *sql.DB
}

// Ensure VehicleRepository implements VehicleIndexInterface
var _ VehicleIndexInterface = (*VehicleRepository)(nil)

// NewVehicleRepository creates a new VehicleRepository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// ReplaceAll swaps the index contents for the given snapshot in one
// transaction, so readers never observe a half-replaced index.
func (r *VehicleRepository) ReplaceAll(ctx context.Context, items []models.InventoryItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vehicle index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicle_index`); err != nil {
		return fmt.Errorf("clear vehicle index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vehicle_index
			(stock_number, vin, manufacturer, model_name, model_type, model_code,
			 color, year, usage, price, image_url, web_url, updated_at, image_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (stock_number) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare vehicle index insert: %w", err)
	}
	defer stmt.Close()

	// vehicle_index_stock_lower is unique on LOWER(stock_number), which the
	// conflict clause on the primary key does not arbitrate. Feed rows whose
	// stock numbers differ only in case are deduplicated here, first row
	// wins, matching the snapshot-scan lookup order.
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.StockNumber) == "" {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(item.StockNumber))
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		if _, err := stmt.ExecContext(ctx,
			item.StockNumber, item.VIN, item.Manufacturer, item.ModelName,
			item.ModelType, item.ModelCode, item.Color, item.Year, item.Usage,
			item.Price, item.ImageURL, item.WebURL, item.UpdatedAt, item.ImageCount,
		); err != nil {
			return fmt.Errorf("insert vehicle %s: %w", item.StockNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vehicle index: %w", err)
	}

	log.Printf("✅ VehicleRepository: index replaced with %d vehicles", len(seen))
	return nil
}

// GetByStockNumber looks up one vehicle case-insensitively by stock number.
// Returns (nil, nil) when no row matches.
func (r *VehicleRepository) GetByStockNumber(ctx context.Context, stockNumber string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.QueryRowContext(ctx, `
		SELECT stock_number, vin, manufacturer, model_name, model_type, model_code,
		       color, year, usage, price, image_url, web_url, updated_at, image_count
		FROM vehicle_index
		WHERE LOWER(stock_number) = LOWER($1)
	`, stockNumber).Scan(
		&item.StockNumber, &item.VIN, &item.Manufacturer, &item.ModelName,
		&item.ModelType, &item.ModelCode, &item.Color, &item.Year, &item.Usage,
		&item.Price, &item.ImageURL, &item.WebURL, &item.UpdatedAt, &item.ImageCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup vehicle %s: %w", stockNumber, err)
	}
	return &item, nil
}
