package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Invoice : Invoice Model
//
// total_amount is stored verbatim from caller input and is not
// reconciled against the invoice items.
type Invoice struct {
	ID            int64               `json:"id" bun:",pk,autoincrement"`
	UserID        int64               `json:"user_id" bun:",notnull"`
	User          *User               `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	ClientID      int64               `json:"client_id" bun:",notnull"`
	Client        *Client             `json:"-" bun:"rel:belongs-to,join:client_id=id"`
	InvoiceNumber string              `json:"invoice_number" bun:",unique,notnull"`
	IssueDate     time.Time           `json:"issue_date" bun:"type:date,notnull"`
	DueDate       time.Time           `json:"due_date" bun:"type:date,notnull"`
	TotalAmount   decimal.Decimal     `json:"total_amount" bun:"type:decimal(10,2),notnull"`
	Status        string              `json:"status" bun:",default:'draft'"`
	Notes         string              `json:"notes" bun:",nullzero"`
	GatewayFee    decimal.NullDecimal `json:"payment_gateway_fee" bun:"payment_gateway_fee,type:decimal(10,2)"`
	CreatedAt     time.Time           `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime        `json:"updated_at"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)
