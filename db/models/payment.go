package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Payment : Payment Model
//
// transaction_id is unique when present; multiple NULLs are allowed.
type Payment struct {
	ID            int64               `json:"id" bun:",pk,autoincrement"`
	InvoiceID     int64               `json:"invoice_id" bun:",notnull"`
	Invoice       *Invoice            `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	UserID        int64               `json:"user_id" bun:",notnull"`
	User          *User               `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Amount        decimal.Decimal     `json:"amount" bun:"type:decimal(10,2),notnull"`
	PaymentDate   time.Time           `json:"payment_date" bun:",notnull"`
	PaymentMethod string              `json:"payment_method" bun:",nullzero"`
	TransactionID *string             `json:"transaction_id" bun:",unique,nullzero"`
	Status        string              `json:"status" bun:",default:'pending'"`
	FeeCharged    decimal.NullDecimal `json:"fee_charged" bun:"type:decimal(10,2)"`
	CreatedAt     time.Time           `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime        `json:"updated_at"`
}

func (p *Payment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Payment)(nil)
