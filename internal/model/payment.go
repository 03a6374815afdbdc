package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valid payment method labels. "diferencia" is a correction entry: it is
// tracked per method but excluded from the grand total.
const (
	MetodoEfectivo      = "efectivo"
	MetodoQR            = "qr"
	MetodoTransferencia = "transferencia"
	MetodoTarjeta       = "tarjeta"
	MetodoDiferencia    = "diferencia"
)

// Metodos lists every accepted method label in display order.
var Metodos = []string{
	MetodoEfectivo,
	MetodoQR,
	MetodoTransferencia,
	MetodoTarjeta,
	MetodoDiferencia,
}

// MetodoValido reports whether m belongs to the fixed label set.
func MetodoValido(m string) bool {
	for _, v := range Metodos {
		if v == m {
			return true
		}
	}
	return false
}

// Payment is a single ledger entry. Rows are never physically removed:
// deletion flips Deleted and the row stays for audit.
// Usuario is denormalized operator text, deliberately not a foreign key.
type Payment struct {
	ID        uint            `gorm:"primaryKey"`
	Metodo    string          `gorm:"column:method;type:varchar(20);not null"`
	Monto     decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Fecha     time.Time       `gorm:"column:date;not null;index;index:idx_payments_branch_date,priority:2"`
	BranchID  string          `gorm:"column:branch_id;not null;index:idx_payments_branch_date,priority:1"`
	Usuario   string          `gorm:"column:user;not null"`
	Turno     string          `gorm:"column:shift;not null"`
	Deleted   bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (Payment) TableName() string { return "payments" }
