package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// XLSXWriter implements ReportWriter with a local XLSX workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer that saves the report to path,
// replacing any existing file.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

func (w *XLSXWriter) Write(_ context.Context, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("creating report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := setRow(f, 1, head); err != nil {
		return err
	}

	for i, row := range rows {
		if err := setRow(f, i+2, cells(row)); err != nil {
			return err
		}
	}

	// Widen the title and URL columns; the rest stay at default.
	if err := f.SetColWidth(xlsxSheet, "B", "C", 60); err != nil {
		return fmt.Errorf("sizing report columns: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving report workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("addressing report row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("writing report row %d: %w", rowNum, err)
	}
	return nil
}
