package repository

import (
	"context"
	"testing"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

func TestReplaceAll_DedupesCaseVariantStockNumbers(t *testing.T) {
	recordedExecs.execs = nil
	repo := NewVehicleRepository(openStubDB(t, "repo-record"))

	err := repo.ReplaceAll(context.Background(), []models.InventoryItem{
		{StockNumber: "FL001", Manufacturer: "Kawasaki"},
		{StockNumber: "fl001", Manufacturer: "shadow copy"},
		{StockNumber: "FL002"},
		{StockNumber: ""},
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	// The index is unique on LOWER(stock_number), so case variants must be
	// collapsed before insert: one DELETE (no args), then exactly two
	// 14-column row inserts.
	var inserts [][]any
	for _, args := range recordedExecs.execs {
		if len(args) == 14 {
			row := make([]any, len(args))
			for i, a := range args {
				row[i] = a
			}
			inserts = append(inserts, row)
		}
	}
	if len(inserts) != 2 {
		t.Fatalf("executed %d row inserts, want 2 after dedupe", len(inserts))
	}
	if inserts[0][0] != "FL001" || inserts[0][2] != "Kawasaki" {
		t.Fatalf("first insert = %v, want the first occurrence to win", inserts[0])
	}
	if inserts[1][0] != "FL002" {
		t.Fatalf("second insert = %v, want FL002", inserts[1])
	}
}

func TestReplaceAll_SkipsEmptyStockNumbers(t *testing.T) {
	recordedExecs.execs = nil
	repo := NewVehicleRepository(openStubDB(t, "repo-record"))

	err := repo.ReplaceAll(context.Background(), []models.InventoryItem{
		{StockNumber: ""},
		{StockNumber: "   "},
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	for _, args := range recordedExecs.execs {
		if len(args) == 14 {
			t.Fatalf("row insert executed for blank stock number: %v", args)
		}
	}
}
