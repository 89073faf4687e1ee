package inventory

import (
	"fmt"
	"testing"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

func makeItems(n int) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.InventoryItem{
			StockNumber: fmt.Sprintf("FL%03d", i+1),
			Price:       fmt.Sprintf("%d", 5000+i*100),
		})
	}
	return items
}

func stockNumbers(items []models.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.StockNumber)
	}
	return out
}

func TestApplyFilters_AllCriteriaANDed(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "FL001", Manufacturer: "Kawasaki", ModelName: "Ninja 650", Year: "2023", Usage: "New"},
		{StockNumber: "FL002", Manufacturer: "Kawasaki", ModelName: "Z900", Year: "2022", Usage: "New"},
		{StockNumber: "FL003", Manufacturer: "Honda", ModelName: "CBR650R", Year: "2023", Usage: "New"},
		{StockNumber: "FL004", Manufacturer: "kawasaki", ModelName: "KLR 650", Year: "2023", Usage: "Used"},
	})

	s.ApplyFilters(FilterCriteria{Manufacturer: "Kawasaki", Year: "2023"})

	got := stockNumbers(s.Filtered)
	want := []string{"FL001", "FL004"}
	if len(got) != len(want) {
		t.Fatalf("filtered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filtered = %v, want %v", got, want)
		}
	}
}

func TestApplyFilters_SearchTermsAllMustMatch(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "FL001", Manufacturer: "Kawasaki", ModelName: "Ninja 650", Color: "Green"},
		{StockNumber: "FL002", Manufacturer: "Kawasaki", ModelName: "Z900", Color: "Black"},
		{StockNumber: "FL003", Manufacturer: "Honda", ModelName: "Ninja wannabe", Color: "Green"},
	})

	s.ApplyFilters(FilterCriteria{Search: "kawasaki ninja"})
	if got := stockNumbers(s.Filtered); len(got) != 1 || got[0] != "FL001" {
		t.Fatalf("filtered = %v, want [FL001]", got)
	}
}

func TestApplyFilters_ResetsToFirstPage(t *testing.T) {
	s := NewState(10)
	s.SetItems(makeItems(50))
	s.SetPage(4)
	s.ApplyFilters(FilterCriteria{})
	if s.Pagination.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1 after filtering", s.Pagination.CurrentPage)
	}
}

func TestApplyPagination_PageBoundary(t *testing.T) {
	s := NewState(25)
	s.SetItems(makeItems(26))

	if s.Pagination.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2 for 26 items at page size 25", s.Pagination.TotalPages)
	}
	if len(s.Page) != 25 {
		t.Fatalf("page 1 has %d items, want 25", len(s.Page))
	}

	s.SetPage(2)
	if len(s.Page) != 1 {
		t.Fatalf("page 2 has %d items, want 1", len(s.Page))
	}
	if s.Page[0].StockNumber != "FL026" {
		t.Fatalf("page 2 item = %s, want FL026", s.Page[0].StockNumber)
	}
}

func TestSetPage_ClampsOutOfRange(t *testing.T) {
	s := NewState(25)
	s.SetItems(makeItems(26))

	s.SetPage(5)
	if s.Pagination.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want clamped to 2", s.Pagination.CurrentPage)
	}
	s.SetPage(-3)
	if s.Pagination.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want clamped to 1", s.Pagination.CurrentPage)
	}
}

func TestApplyPagination_Idempotent(t *testing.T) {
	s := NewState(10)
	s.SetItems(makeItems(33))
	s.SetPage(3)

	before := stockNumbers(s.Page)
	s.ApplyPagination()
	s.ApplyPagination()
	after := stockNumbers(s.Page)

	if len(before) != len(after) {
		t.Fatalf("page changed across repeated applies: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("page changed across repeated applies: %v vs %v", before, after)
		}
	}
	if s.Pagination.CurrentPage != 3 || s.Pagination.TotalPages != 4 {
		t.Fatalf("pagination = %+v, want page 3 of 4", s.Pagination)
	}
}

func TestPageSizeAll_SinglePage(t *testing.T) {
	s := NewState(PageSizeAll)
	s.SetItems(makeItems(120))
	if s.Pagination.TotalPages != 1 || len(s.Page) != 120 {
		t.Fatalf("pagination = %+v with %d items, want one page with all", s.Pagination, len(s.Page))
	}
}

func TestEmptyFilteredSet(t *testing.T) {
	s := NewState(25)
	s.SetItems(makeItems(10))
	s.ApplyFilters(FilterCriteria{Manufacturer: "Ducati"})
	if s.Pagination.TotalPages != 1 || s.Pagination.CurrentPage != 1 {
		t.Fatalf("pagination = %+v, want page 1 of 1 for empty set", s.Pagination)
	}
	if len(s.Page) != 0 {
		t.Fatalf("page has %d items, want 0", len(s.Page))
	}
}

func TestSortBy_TogglesDirection(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "FL002", Price: "9000"},
		{StockNumber: "FL001", Price: "12000"},
		{StockNumber: "FL003", Price: "7500"},
	})

	s.SortBy("price")
	if got := stockNumbers(s.Filtered); got[0] != "FL003" || got[2] != "FL001" {
		t.Fatalf("ascending price sort = %v", got)
	}
	if col, asc := s.SortColumn(); col != "price" || !asc {
		t.Fatalf("sort state = %s/%v, want price ascending", col, asc)
	}

	s.SortBy("price")
	if got := stockNumbers(s.Filtered); got[0] != "FL001" || got[2] != "FL003" {
		t.Fatalf("descending price sort = %v", got)
	}
	if _, asc := s.SortColumn(); asc {
		t.Fatal("second sort on same column should be descending")
	}

	s.SortBy("stockNumber")
	if _, asc := s.SortColumn(); !asc {
		t.Fatal("new column should reset to ascending")
	}
}

func TestSortByDirection_Explicit(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "FL002"},
		{StockNumber: "FL001"},
		{StockNumber: "FL003"},
	})

	s.SortByDirection("stockNumber", false)
	if got := stockNumbers(s.Filtered); got[0] != "FL003" {
		t.Fatalf("descending sort = %v", got)
	}

	// Explicit direction never toggles.
	s.SortByDirection("stockNumber", false)
	if got := stockNumbers(s.Filtered); got[0] != "FL003" {
		t.Fatalf("repeated explicit sort changed order: %v", got)
	}
	if col, asc := s.SortColumn(); col != "stockNumber" || asc {
		t.Fatalf("sort state = %s/%v, want stockNumber descending", col, asc)
	}
}

func TestSortBy_NumericNotLexicographic(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "A", Price: "900"},
		{StockNumber: "B", Price: "12000"},
		{StockNumber: "C", Price: "7500.50"},
	})
	s.SortBy("price")
	got := stockNumbers(s.Filtered)
	if got[0] != "A" || got[1] != "C" || got[2] != "B" {
		t.Fatalf("numeric sort = %v, want [A C B]", got)
	}
}

func TestSortBy_DatesChronological(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "A", UpdatedAt: "9/2/2026 1:00:00 PM"},
		{StockNumber: "B", UpdatedAt: "12/14/2025 8:30:00 AM"},
		{StockNumber: "C", UpdatedAt: "1/5/2026 9:15:00 AM"},
	})
	s.SortBy("updatedAt")
	got := stockNumbers(s.Filtered)
	if got[0] != "B" || got[1] != "C" || got[2] != "A" {
		t.Fatalf("date sort = %v, want [B C A]", got)
	}
}

func TestPhotoStatusFilter(t *testing.T) {
	s := NewState(25)
	s.SetItems([]models.InventoryItem{
		{StockNumber: "FL001", ImageCount: 24},
		{StockNumber: "FL002", ImageCount: 3},
		{StockNumber: "FL003", ImageCount: 11},
	})

	s.ApplyFilters(FilterCriteria{PhotoStatus: PhotoStatusInHouse})
	if got := stockNumbers(s.Filtered); len(got) != 2 {
		t.Fatalf("inhouse filter = %v, want FL001 and FL003", got)
	}

	s.ApplyFilters(FilterCriteria{PhotoStatus: PhotoStatusStock})
	if got := stockNumbers(s.Filtered); len(got) != 1 || got[0] != "FL002" {
		t.Fatalf("stock filter = %v, want [FL002]", got)
	}
}
