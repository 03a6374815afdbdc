package infra

// pdf.go — Daily reconciliation report using go-pdf/fpdf.
// A5 summary sheet with:
//   - Branch and business date header
//   - Per-method totals table
//   - Bold grand total (diferencia excluded, listed separately)
//   - Row count and ignored-method count footer
//
// The output file is saved to storagePath/cierre_{date}_{branch}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateDailyReportPDF writes the reconciliation report for one date and
// branch. storagePath is created if needed. Returns the absolute path of the
// generated file.
func GenerateDailyReportPDF(date, branch string, pagos []model.Payment, resumen dto.ResumenResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s_%s.pdf", date, branch)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Sucursal %s — %s", branch, date), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Generado "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Per-method totals ────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Metodo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, metodo := range model.Metodos {
		pdf.CellFormat(col1, 6, metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "$ "+resumen.Totales[metodo].StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, "$ "+resumen.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("%d pagos registrados", len(pagos)), "", 1, "L", false, 0, "")
	if resumen.Ignorados > 0 {
		pdf.CellFormat(contentW, 4, fmt.Sprintf("%d filas con metodo no reconocido (no sumadas)", resumen.Ignorados), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "La diferencia se informa por separado y no integra el total.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
