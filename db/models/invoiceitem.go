package models

import (
	"github.com/shopspring/decimal"
)

// InvoiceItem : Invoice line item Model
//
// amount is expected to equal quantity*unit_price but is accepted
// as-is from the caller, matching the invoice total handling.
type InvoiceItem struct {
	ID          int64           `json:"id" bun:",pk,autoincrement"`
	InvoiceID   int64           `json:"invoice_id" bun:",notnull"`
	Invoice     *Invoice        `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	Description string          `json:"description" bun:",notnull"`
	Quantity    decimal.Decimal `json:"quantity" bun:"type:decimal(10,2),notnull"`
	UnitPrice   decimal.Decimal `json:"unit_price" bun:"type:decimal(10,2),notnull"`
	Amount      decimal.Decimal `json:"amount" bun:"type:decimal(10,2),notnull"`
}
