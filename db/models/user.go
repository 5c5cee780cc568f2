package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	Username    string       `json:"username" bun:",unique,notnull"`
	Email       string       `json:"email" bun:",unique,notnull"`
	Password    string       `json:"-" bun:",notnull"`
	FirstName   string       `json:"first_name" bun:",nullzero"`
	LastName    string       `json:"last_name" bun:",nullzero"`
	CompanyName string       `json:"company_name" bun:",nullzero"`
	PhoneNumber string       `json:"phone_number" bun:",nullzero"`
	IsStaff     bool         `json:"-" bun:",default:false"`
	IsSuperuser bool         `json:"-" bun:",default:false"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
