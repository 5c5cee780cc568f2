package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AuthToken : opaque bearer token, at most one per user.
// Repeated logins return the existing row, the key never rotates
// unless the row is deleted.
type AuthToken struct {
	bun.BaseModel `bun:"table:auth_tokens"`

	ID        int64     `json:"id" bun:",pk,autoincrement"`
	UserID    int64     `json:"user_id" bun:",unique,notnull"`
	User      *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Key       string    `json:"key" bun:",unique,notnull"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
