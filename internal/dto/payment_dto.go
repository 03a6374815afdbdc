package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearPagoRequest accepts the amount as decimal.Decimal so both quoted and
// bare JSON numbers parse; anything unparsable is rejected at bind time and
// never reaches storage.
type CrearPagoRequest struct {
	Metodo   string          `json:"method"   validate:"required,oneof=efectivo qr transferencia tarjeta diferencia"`
	Monto    decimal.Decimal `json:"amount"   validate:"required"`
	Fecha    string          `json:"date"     validate:"required"`
	BranchID string          `json:"branchId" validate:"required,min=1,max=10"`
	Usuario  string          `json:"user"     validate:"required,min=1,max=150"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID        uint            `json:"id"`
	Metodo    string          `json:"method"`
	Monto     decimal.Decimal `json:"amount"`
	Fecha     string          `json:"date"`
	BranchID  string          `json:"branchId"`
	Usuario   string          `json:"user"`
	Turno     string          `json:"shift"`
	CreatedAt string          `json:"createdAt"`
}

// ResumenResponse carries per-method totals for one business date and branch.
// Total excludes "diferencia"; Ignorados counts rows whose method label was
// outside the fixed set and therefore not accumulated.
type ResumenResponse struct {
	Totales   map[string]decimal.Decimal `json:"totales"`
	Total     decimal.Decimal            `json:"total"`
	Ignorados int                        `json:"ignorados"`
}

type ListaPagosResponse struct {
	Data    []PagoResponse  `json:"data"`
	Resumen ResumenResponse `json:"resumen"`
}

type FechasResponse struct {
	Fechas []string `json:"fechas"`
}
