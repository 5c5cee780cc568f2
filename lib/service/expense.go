package service

import (
	"context"

	"github.com/payasyougo/payasyougo.go/db/models"
)

func (svc *PayasyougoService) ExpensesFor(ctx context.Context, userId int64) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := svc.DB.NewSelect().Model(&expenses).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return expenses, err
}

func (svc *PayasyougoService) FindExpense(ctx context.Context, expenseId int64, userId int64) (*models.Expense, error) {
	var expense models.Expense

	err := svc.DB.NewSelect().Model(&expense).Where("id = ? AND user_id = ?", expenseId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &expense, nil
}

func (svc *PayasyougoService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	_, err := svc.DB.NewInsert().Model(expense).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateExpense(ctx context.Context, expense *models.Expense, userId int64) error {
	res, err := svc.DB.NewUpdate().
		Model(expense).
		Column("description", "amount", "category", "expense_date",
			"receipt_image_url", "is_reimbursable", "updated_at").
		Where("id = ? AND user_id = ?", expense.ID, userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (svc *PayasyougoService) DeleteExpense(ctx context.Context, expenseId int64, userId int64) error {
	res, err := svc.DB.NewDelete().Model((*models.Expense)(nil)).
		Where("id = ? AND user_id = ?", expenseId, userId).Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
