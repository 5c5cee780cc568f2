package service

import (
	"context"
	"time"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/uptrace/bun"
)

// Settings are keyed by user id, so the list is one row at most and a
// second create for the same user hits the primary key constraint.

func (svc *PayasyougoService) SettingsFor(ctx context.Context, userId int64) ([]models.Setting, error) {
	settings := []models.Setting{}
	err := svc.DB.NewSelect().Model(&settings).Where("user_id = ?", userId).Scan(ctx)
	return settings, err
}

func (svc *PayasyougoService) FindSetting(ctx context.Context, settingId int64, userId int64) (*models.Setting, error) {
	var setting models.Setting

	err := svc.DB.NewSelect().Model(&setting).
		Where("user_id = ?", settingId).
		Where("user_id = ?", userId).
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &setting, nil
}

func (svc *PayasyougoService) CreateSetting(ctx context.Context, setting *models.Setting) error {
	_, err := svc.DB.NewInsert().Model(setting).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateSetting(ctx context.Context, setting *models.Setting, userId int64) error {
	setting.UpdatedAt = bun.NullTime{Time: time.Now()}
	res, err := svc.DB.NewUpdate().
		Model(setting).
		Column("currency", "timezone", "invoice_prefix", "payment_terms", "updated_at").
		Where("user_id = ?", setting.UserID).
		Where("user_id = ?", userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (svc *PayasyougoService) DeleteSetting(ctx context.Context, settingId int64, userId int64) error {
	res, err := svc.DB.NewDelete().Model((*models.Setting)(nil)).
		Where("user_id = ?", settingId).
		Where("user_id = ?", userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
