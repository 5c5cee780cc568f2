package service

import (
	"context"

	"github.com/payasyougo/payasyougo.go/db/models"
)

func (svc *PayasyougoService) TimeEntriesFor(ctx context.Context, userId int64) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	err := svc.DB.NewSelect().Model(&entries).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return entries, err
}

func (svc *PayasyougoService) FindTimeEntry(ctx context.Context, entryId int64, userId int64) (*models.TimeEntry, error) {
	var entry models.TimeEntry

	err := svc.DB.NewSelect().Model(&entry).Where("id = ? AND user_id = ?", entryId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &entry, nil
}

func (svc *PayasyougoService) CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	_, err := svc.DB.NewInsert().Model(entry).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateTimeEntry(ctx context.Context, entry *models.TimeEntry, userId int64) error {
	res, err := svc.DB.NewUpdate().
		Model(entry).
		Column("client_id", "project_name", "description", "start_time", "end_time",
			"duration_minutes", "hourly_rate", "is_billed", "invoice_id", "updated_at").
		Where("id = ? AND user_id = ?", entry.ID, userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (svc *PayasyougoService) DeleteTimeEntry(ctx context.Context, entryId int64, userId int64) error {
	res, err := svc.DB.NewDelete().Model((*models.TimeEntry)(nil)).
		Where("id = ? AND user_id = ?", entryId, userId).Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
