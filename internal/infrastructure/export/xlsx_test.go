package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

func TestExportWritesSummaryAndFields(t *testing.T) {
	exporter := NewXLSXExporter()

	raw, err := exporter.Export(&domain.Submission{
		ID:           "sub-1",
		UserID:       "user-1",
		Fields:       domain.CanonicalFields{"wages": float64(50000), "federal_withholding": float64(6000)},
		Status:       domain.ReturnSubmitted,
		FilingType:   "e-file",
		TaxOwed:      4388,
		RefundAmount: 1612,
		SubmittedAt:  time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	id, err := f.GetCellValue(sheetName, "B1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if id != "sub-1" {
		t.Fatalf("B1 = %q, want sub-1", id)
	}

	// Fields sort alphabetically under the header row.
	field, err := f.GetCellValue(sheetName, "A8")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if field != "federal_withholding" {
		t.Fatalf("A8 = %q, want federal_withholding", field)
	}
}

func TestExportRejectsNilSubmission(t *testing.T) {
	_, err := NewXLSXExporter().Export(nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
