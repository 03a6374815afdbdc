package infra

// excel.go — XLSX export of one business date's ledger rows.
// The register closes the day by downloading this sheet; layout mirrors the
// on-screen payment table plus a totals block underneath.

import (
	"fmt"

	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Pagos"

// GenerateDailyXLSX builds the workbook in memory; the caller streams it.
func GenerateDailyXLSX(date string, pagos []model.Payment, resumen dto.ResumenResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Metodo", "Monto", "Fecha", "Sucursal", "Usuario", "Turno"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, p := range pagos {
		values := []any{
			p.ID,
			p.Metodo,
			p.Monto.StringFixed(2),
			p.Fecha.Format("2006-01-02 15:04:05"),
			p.BranchID,
			p.Usuario,
			p.Turno,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	// Totals block
	row++
	if err := f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), "Totales "+date); err != nil {
		return nil, err
	}
	for _, metodo := range model.Metodos {
		row++
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), metodo)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), resumen.Totales[metodo].StringFixed(2))
	}
	row++
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), "TOTAL (sin diferencia)")
	f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), resumen.Total.StringFixed(2))

	return f, nil
}
