package service

// reconciliation.go — per-method and grand totals for a set of ledger rows.
// Pure function of its input: no storage, no clock, no configuration.

import (
	"strings"

	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize accumulates amounts into per-method buckets over the fixed label
// set. Rows with an unrecognized method are not accumulated and do not fail
// the reconciliation; they are counted in Ignorados so callers can log them.
// The grand total excludes "diferencia": correction entries are reported
// separately and must not inflate the day's takings.
// Accumulation runs on decimal.Decimal end to end; rounding to two places
// happens only at presentation time.
func Summarize(pagos []model.Payment) dto.ResumenResponse {
	totales := make(map[string]decimal.Decimal, len(model.Metodos))
	for _, m := range model.Metodos {
		totales[m] = decimal.Zero
	}

	ignorados := 0
	for _, p := range pagos {
		metodo := strings.ToLower(p.Metodo)
		acc, ok := totales[metodo]
		if !ok {
			ignorados++
			continue
		}
		totales[metodo] = acc.Add(p.Monto)
	}

	total := decimal.Zero
	for _, m := range model.Metodos {
		if m == model.MetodoDiferencia {
			continue
		}
		total = total.Add(totales[m])
	}

	return dto.ResumenResponse{Totales: totales, Total: total, Ignorados: ignorados}
}
