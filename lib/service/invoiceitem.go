package service

import (
	"context"
	"errors"

	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/uptrace/bun"
)

// invoice items are scoped through their owning invoice; staff and
// superusers see every item
func (svc *PayasyougoService) scopeInvoiceItems(q *bun.SelectQuery, userId int64, staff bool) *bun.SelectQuery {
	if staff {
		return q
	}
	return q.Where("invoice_id IN (SELECT id FROM invoices WHERE user_id = ?)", userId)
}

func (svc *PayasyougoService) InvoiceItemsFor(ctx context.Context, userId int64, staff bool) ([]models.InvoiceItem, error) {
	items := []models.InvoiceItem{}
	q := svc.DB.NewSelect().Model(&items).OrderExpr("id ASC")
	err := svc.scopeInvoiceItems(q, userId, staff).Scan(ctx)
	return items, err
}

func (svc *PayasyougoService) FindInvoiceItem(ctx context.Context, itemId int64, userId int64, staff bool) (*models.InvoiceItem, error) {
	var item models.InvoiceItem

	q := svc.DB.NewSelect().Model(&item).Where("id = ?", itemId).Limit(1)
	err := svc.scopeInvoiceItems(q, userId, staff).Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &item, nil
}

// CreateInvoiceItem verifies that the target invoice exists and is
// owned by the caller before attaching the item. This is the one
// place cross-entity validation happens at write time.
func (svc *PayasyougoService) CreateInvoiceItem(ctx context.Context, item *models.InvoiceItem, userId int64) error {
	_, err := svc.FindInvoice(ctx, item.InvoiceID, userId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvoiceNotOwned
		}
		return err
	}
	_, err = svc.DB.NewInsert().Model(item).Exec(ctx)
	return err
}

func (svc *PayasyougoService) UpdateInvoiceItem(ctx context.Context, item *models.InvoiceItem, userId int64, staff bool) error {
	q := svc.DB.NewUpdate().
		Model(item).
		Column("description", "quantity", "unit_price", "amount").
		Where("id = ?", item.ID)
	if !staff {
		q = q.Where("invoice_id IN (SELECT id FROM invoices WHERE user_id = ?)", userId)
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

func (svc *PayasyougoService) DeleteInvoiceItem(ctx context.Context, itemId int64, userId int64, staff bool) error {
	q := svc.DB.NewDelete().Model((*models.InvoiceItem)(nil)).Where("id = ?", itemId)
	if !staff {
		q = q.Where("invoice_id IN (SELECT id FROM invoices WHERE user_id = ?)", userId)
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
