package models

import (
	"time"
)

// AuditLog : append-only audit trail row. Never updated or deleted
// by the application; user_id is nulled when the user is removed so
// the trail survives account deletion.
type AuditLog struct {
	ID         int64     `json:"id" bun:",pk,autoincrement"`
	UserID     *int64    `json:"user_id" bun:",nullzero"`
	User       *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Action     string    `json:"action" bun:",notnull"`
	EntityType string    `json:"entity_type" bun:",nullzero"`
	EntityID   *int64    `json:"entity_id" bun:",nullzero"`
	Timestamp  time.Time `json:"timestamp" bun:",nullzero,notnull,default:current_timestamp"`
	IPAddress  string    `json:"ip_address" bun:",nullzero"`
}
