package sink

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

// WriteXLSX renders the run's accumulated records as an XLSX workbook for
// the analysts who consume the consolidated output in a spreadsheet.
func WriteXLSX(path string, records []record.DocumentRecord, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Decisões"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIndex, _ := f.GetSheetIndex("Sheet1"); defIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range constants.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range records {
		for colIdx, v := range r.Row() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the columns analysts read first
	_ = f.SetColWidth(sheet, "A", "A", 28) // numeroProcesso
	_ = f.SetColWidth(sheet, "C", "C", 18) // tipoDocumento
	_ = f.SetColWidth(sheet, "D", "D", 20) // dataHora
	_ = f.SetColWidth(sheet, "E", "E", 32) // assinadoPor
	_ = f.SetColWidth(sheet, "I", "I", 16) // valorTotal
	_ = f.SetColWidth(sheet, "K", "K", 80) // textoDocumento

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
