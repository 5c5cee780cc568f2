package service

import (
	"context"
	"database/sql"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/uptrace/bun"
)

func (svc *PayasyougoService) ClientsFor(ctx context.Context, userId int64) ([]models.Client, error) {
	clients := []models.Client{}
	err := svc.DB.NewSelect().Model(&clients).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return clients, err
}

func (svc *PayasyougoService) FindClient(ctx context.Context, clientId int64, userId int64) (*models.Client, error) {
	var client models.Client

	err := svc.DB.NewSelect().Model(&client).Where("id = ? AND user_id = ?", clientId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &client, nil
}

func (svc *PayasyougoService) CreateClient(ctx context.Context, client *models.Client) error {
	_, err := svc.DB.NewInsert().Model(client).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateClient(ctx context.Context, client *models.Client, userId int64) error {
	res, err := svc.DB.NewUpdate().
		Model(client).
		Column("name", "email", "phone_number", "address", "updated_at").
		Where("id = ? AND user_id = ?", client.ID, userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient cascades the client's invoices (with their items and
// payments) and nulls out time entry references, all in one
// transaction.
func (svc *PayasyougoService) DeleteClient(ctx context.Context, clientId int64, userId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		clientInvoices := tx.NewSelect().Model((*models.Invoice)(nil)).Column("id").
			Where("client_id = ? AND user_id = ?", clientId, userId)

		if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("invoice_id = NULL").Where("invoice_id IN (?)", clientInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("client_id = NULL").Where("client_id = ?", clientId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.InvoiceItem)(nil)).
			Where("invoice_id IN (?)", clientInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Payment)(nil)).
			Where("invoice_id IN (?)", clientInvoices).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Invoice)(nil)).
			Where("client_id = ? AND user_id = ?", clientId, userId).Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.Client)(nil)).
			Where("id = ? AND user_id = ?", clientId, userId).Exec(ctx)
		if err != nil {
			return err
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}
