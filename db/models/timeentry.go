package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// TimeEntry : Time entry Model
//
// client_id and invoice_id are nulled (not cascaded) when the
// referenced client or invoice is deleted.
type TimeEntry struct {
	bun.BaseModel `bun:"table:time_entries"`

	ID              int64               `json:"id" bun:",pk,autoincrement"`
	UserID          int64               `json:"user_id" bun:",notnull"`
	User            *User               `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	ClientID        *int64              `json:"client_id" bun:",nullzero"`
	Client          *Client             `json:"-" bun:"rel:belongs-to,join:client_id=id"`
	ProjectName     string              `json:"project_name" bun:",nullzero"`
	Description     string              `json:"description" bun:",nullzero"`
	StartTime       time.Time           `json:"start_time" bun:",notnull"`
	EndTime         bun.NullTime        `json:"end_time"`
	DurationMinutes *int64              `json:"duration_minutes" bun:",nullzero"`
	HourlyRate      decimal.NullDecimal `json:"hourly_rate" bun:"type:decimal(10,2)"`
	IsBilled        bool                `json:"is_billed" bun:",default:false"`
	InvoiceID       *int64              `json:"invoice_id" bun:",nullzero"`
	Invoice         *Invoice            `json:"-" bun:"rel:belongs-to,join:invoice_id=id"`
	CreatedAt       time.Time           `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       bun.NullTime        `json:"updated_at"`
}

func (t *TimeEntry) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		t.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*TimeEntry)(nil)
