package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Client : Client Model
type Client struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	UserID      int64        `json:"user_id" bun:",notnull"`
	User        *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Name        string       `json:"name" bun:",notnull"`
	Email       string       `json:"email" bun:",nullzero"`
	PhoneNumber string       `json:"phone_number" bun:",nullzero"`
	Address     string       `json:"address" bun:",nullzero"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (c *Client) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		c.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Client)(nil)
