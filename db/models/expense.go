package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Expense : Expense Model
type Expense struct {
	ID              int64           `json:"id" bun:",pk,autoincrement"`
	UserID          int64           `json:"user_id" bun:",notnull"`
	User            *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Description     string          `json:"description" bun:",notnull"`
	Amount          decimal.Decimal `json:"amount" bun:"type:decimal(10,2),notnull"`
	Category        string          `json:"category" bun:",nullzero"`
	ExpenseDate     time.Time       `json:"expense_date" bun:"type:date,notnull"`
	ReceiptImageUrl string          `json:"receipt_image_url" bun:",nullzero"`
	IsReimbursable  bool            `json:"is_reimbursable" bun:",default:false"`
	CreatedAt       time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       bun.NullTime    `json:"updated_at"`
}

func (e *Expense) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		e.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Expense)(nil)
