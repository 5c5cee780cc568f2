package service

import (
	"context"
	"database/sql"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/security"
	"github.com/uptrace/bun"
)

// RegisterUser hashes the credential and stores the new account. The
// plaintext password never reaches the database.
func (svc *PayasyougoService) RegisterUser(ctx context.Context, user *models.User, password string) error {
	user.Password = security.HashPassword(password)
	_, err := svc.DB.NewInsert().Model(user).Exec(ctx)
	return err
}

func (svc *PayasyougoService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (svc *PayasyougoService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := svc.DB.NewSelect().Model(&users).OrderExpr("id ASC").Scan(ctx)
	return users, err
}

func (svc *PayasyougoService) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := svc.DB.NewUpdate().
		Model(user).
		Column("email", "first_name", "last_name", "company_name", "phone_number", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the account and everything it strictly owns in a
// single transaction. Audit log rows are kept with their user
// reference cleared.
func (svc *PayasyougoService) DeleteUser(ctx context.Context, userId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		ownInvoices := tx.NewSelect().Model((*models.Invoice)(nil)).Column("id").Where("user_id = ?", userId)
		ownClients := tx.NewSelect().Model((*models.Client)(nil)).Column("id").Where("user_id = ?", userId)

		// nullify weak references first
		if _, err := tx.NewUpdate().Model((*models.AuditLog)(nil)).
			Set("user_id = NULL").Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("invoice_id = NULL").Where("invoice_id IN (?)", ownInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("client_id = NULL").Where("client_id IN (?)", ownClients).Exec(ctx); err != nil {
			return err
		}

		// strictly owned rows cascade
		if _, err := tx.NewDelete().Model((*models.InvoiceItem)(nil)).
			Where("invoice_id IN (?)", ownInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Payment)(nil)).
			Where("user_id = ? OR invoice_id IN (?)", userId, ownInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.TimeEntry)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Invoice)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Client)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Expense)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.TaxEstimation)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Setting)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.AuthToken)(nil)).
			Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.User)(nil)).Where("id = ?", userId).Exec(ctx)
		if err != nil {
			return err
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}
