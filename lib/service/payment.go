package service

import (
	"context"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/uptrace/bun"
)

// payments carry their own owner column; staff and superusers see
// every payment
func (svc *PayasyougoService) scopePayments(q *bun.SelectQuery, userId int64, staff bool) *bun.SelectQuery {
	if staff {
		return q
	}
	return q.Where("user_id = ?", userId)
}

func (svc *PayasyougoService) PaymentsFor(ctx context.Context, userId int64, staff bool) ([]models.Payment, error) {
	payments := []models.Payment{}
	q := svc.DB.NewSelect().Model(&payments).OrderExpr("id ASC")
	err := svc.scopePayments(q, userId, staff).Scan(ctx)
	return payments, err
}

func (svc *PayasyougoService) FindPayment(ctx context.Context, paymentId int64, userId int64, staff bool) (*models.Payment, error) {
	var payment models.Payment

	q := svc.DB.NewSelect().Model(&payment).Where("id = ?", paymentId).Limit(1)
	err := svc.scopePayments(q, userId, staff).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &payment, nil
}

func (svc *PayasyougoService) CreatePayment(ctx context.Context, payment *models.Payment) error {
	_, err := svc.DB.NewInsert().Model(payment).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdatePayment(ctx context.Context, payment *models.Payment, userId int64, staff bool) error {
	q := svc.DB.NewUpdate().
		Model(payment).
		Column("invoice_id", "amount", "payment_date", "payment_method",
			"transaction_id", "status", "fee_charged", "updated_at").
		Where("id = ?", payment.ID)
	if !staff {
		q = q.Where("user_id = ?", userId)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (svc *PayasyougoService) DeletePayment(ctx context.Context, paymentId int64, userId int64, staff bool) error {
	q := svc.DB.NewDelete().Model((*models.Payment)(nil)).Where("id = ?", paymentId)
	if !staff {
		q = q.Where("user_id = ?", userId)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
