// Package export renders submitted returns into downloadable reports.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

const sheetName = "Tax Return"

// XLSXExporter writes a submission as a two-column spreadsheet: summary
// rows first, then the form fields in stable alphabetical order.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Export(submission *domain.Submission) ([]byte, error) {
	if submission == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "export submission", fmt.Errorf("submission is nil"))
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	rows := [][2]any{
		{"Submission ID", submission.ID},
		{"Filing Type", submission.FilingType},
		{"Submitted At", submission.SubmittedAt.Format("2006-01-02 15:04:05 MST")},
		{"Tax Owed", submission.TaxOwed},
		{"Refund Amount", submission.RefundAmount},
		{"", ""},
		{"Field", "Value"},
	}
	for _, key := range sortedKeys(submission.Fields) {
		rows = append(rows, [2]any{key, submission.Fields[key]})
	}

	for i, row := range rows {
		cellA, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		cellB, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellA, row[0]); err != nil {
			return nil, fmt.Errorf("set cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellB, row[1]); err != nil {
			return nil, fmt.Errorf("set cell: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(fields domain.CanonicalFields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
