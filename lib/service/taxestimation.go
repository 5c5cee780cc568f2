package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// TaxEstimationUpdate carries the caller-supplied fields of an
// upsert; nil fields keep their previous value.
type TaxEstimationUpdate struct {
	TaxPercentage           *decimal.Decimal
	EstimatedAmountSetAside *decimal.Decimal
	LastCalculatedAt        *time.Time
}

func (svc *PayasyougoService) FindTaxEstimation(ctx context.Context, userId int64) (*models.TaxEstimation, error) {
	var estimation models.TaxEstimation

	err := svc.DB.NewSelect().Model(&estimation).Where("user_id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &estimation, nil
}

// UpsertTaxEstimation creates or updates the caller's single tax
// estimation row. The write itself is one INSERT ... ON CONFLICT
// (user_id) DO UPDATE statement, so concurrent upserts for the same
// user can never produce two rows: user_id is the primary key and the
// losing insert degrades into an update.
func (svc *PayasyougoService) UpsertTaxEstimation(ctx context.Context, userId int64, update TaxEstimationUpdate) (*models.TaxEstimation, bool, error) {
	estimation := &models.TaxEstimation{UserID: userId}
	created := false

	err := svc.DB.NewSelect().Model(estimation).Where("user_id = ?", userId).Limit(1).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created = true
		estimation = &models.TaxEstimation{UserID: userId}
	case err != nil:
		return nil, false, err
	}

	if update.TaxPercentage != nil {
		estimation.TaxPercentage = *update.TaxPercentage
	}
	if update.EstimatedAmountSetAside != nil {
		estimation.EstimatedAmountSetAside = *update.EstimatedAmountSetAside
	}
	if update.LastCalculatedAt != nil {
		estimation.LastCalculatedAt = bun.NullTime{Time: *update.LastCalculatedAt}
	}
	if !created {
		estimation.UpdatedAt = bun.NullTime{Time: time.Now()}
	}

	_, err = svc.DB.NewInsert().
		Model(estimation).
		On("CONFLICT (user_id) DO UPDATE").
		Set("tax_percentage = EXCLUDED.tax_percentage").
		Set("estimated_amount_set_aside = EXCLUDED.estimated_amount_set_aside").
		Set("last_calculated_at = EXCLUDED.last_calculated_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, false, err
	}
	return estimation, created, nil
}
