package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/uptrace/bun"
)

// ErrInvoiceNotOwned is returned when an invoice item targets an
// invoice that does not exist or belongs to another tenant.
var ErrInvoiceNotOwned = errors.New("invoice not found or does not belong to the current user")

func (svc *PayasyougoService) InvoicesFor(ctx context.Context, userId int64) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := svc.DB.NewSelect().Model(&invoices).Where("user_id = ?", userId).OrderExpr("id ASC").Scan(ctx)
	return invoices, err
}

func (svc *PayasyougoService) FindInvoice(ctx context.Context, invoiceId int64, userId int64) (*models.Invoice, error) {
	var invoice models.Invoice

	err := svc.DB.NewSelect().Model(&invoice).Where("id = ? AND user_id = ?", invoiceId, userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &invoice, nil
}

func (svc *PayasyougoService) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	_, err := svc.DB.NewInsert().Model(invoice).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateInvoice(ctx context.Context, invoice *models.Invoice, userId int64) error {
	res, err := svc.DB.NewUpdate().
		Model(invoice).
		Column("client_id", "invoice_number", "issue_date", "due_date", "total_amount",
			"status", "notes", "payment_gateway_fee", "updated_at").
		Where("id = ? AND user_id = ?", invoice.ID, userId).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInvoice cascades items and payments and nulls time entry
// references inside one transaction.
func (svc *PayasyougoService) DeleteInvoice(ctx context.Context, invoiceId int64, userId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("invoice_id = NULL").Where("invoice_id = ?", invoiceId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.InvoiceItem)(nil)).
			Where("invoice_id = ?", invoiceId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Payment)(nil)).
			Where("invoice_id = ?", invoiceId).Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.Invoice)(nil)).
			Where("id = ? AND user_id = ?", invoiceId, userId).Exec(ctx)
		if err != nil {
			return err
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}
