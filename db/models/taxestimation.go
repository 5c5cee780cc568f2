package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// TaxEstimation : singleton-per-user tax estimation.
// The user id is the primary key, which is what makes the
// insert-on-conflict upsert safe under concurrency.
type TaxEstimation struct {
	bun.BaseModel `bun:"table:tax_estimations"`

	UserID                  int64           `json:"user_id" bun:",pk"`
	User                    *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	TaxPercentage           decimal.Decimal `json:"tax_percentage" bun:"type:decimal(5,2),notnull"`
	EstimatedAmountSetAside decimal.Decimal `json:"estimated_amount_set_aside" bun:"type:decimal(10,2),notnull,default:0"`
	LastCalculatedAt        bun.NullTime    `json:"last_calculated_at"`
	CreatedAt               time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt               bun.NullTime    `json:"updated_at"`
}
