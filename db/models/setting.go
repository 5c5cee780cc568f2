package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Setting : singleton-per-user settings, keyed by user id.
type Setting struct {
	UserID        int64        `json:"user_id" bun:",pk"`
	User          *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Currency      string       `json:"currency" bun:",nullzero,default:'USD'"`
	Timezone      string       `json:"timezone" bun:",nullzero,default:'UTC'"`
	InvoicePrefix string       `json:"invoice_prefix" bun:",nullzero"`
	PaymentTerms  string       `json:"payment_terms" bun:",nullzero"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime `json:"updated_at"`
}
