package service

import (
	"database/sql"
	"errors"

	"github.com/payasyougo/payasyougo.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type PayasyougoService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	RabbitMQClient rabbitmq.Client
}

// ErrNotFound is returned for records that do not exist as well as for
// records owned by another tenant; callers must not be able to tell
// the difference.
var ErrNotFound = errors.New("record not found")

func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
