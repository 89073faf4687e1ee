package utils

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	ExportCSV(rec, "inventory.csv",
		[]string{"Stock #", "Model"},
		[][]string{{"FL001", "Ninja 650"}, {"FL002", "Z900"}},
	)

	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "inventory.csv") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want header plus 2 rows", len(lines))
	}
}

func TestExportExcel_WideSheet(t *testing.T) {
	// 30 columns: past column Z, where naive 'A'+i cell naming breaks.
	headers := make([]string, 30)
	row := make([]string, 30)
	for i := range headers {
		headers[i] = fmt.Sprintf("Col %d", i+1)
		row[i] = fmt.Sprintf("v%d", i+1)
	}

	rec := httptest.NewRecorder()
	ExportExcel(rec, "Inventory", headers, [][]string{row})

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Inventory", "AD1"); got != "Col 30" {
		t.Fatalf("AD1 = %q, want Col 30", got)
	}
	if got, _ := f.GetCellValue("Inventory", "AD2"); got != "v30" {
		t.Fatalf("AD2 = %q, want v30", got)
	}
	if got, _ := f.GetCellValue("Inventory", "A1"); got != "Col 1" {
		t.Fatalf("A1 = %q, want Col 1", got)
	}
}
