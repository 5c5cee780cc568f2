package service

import (
	"context"

	"github.com/payasyougo/payasyougo.go/db/models"
)

func (svc *PayasyougoService) AuditLogsFor(ctx context.Context, userId int64) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := svc.DB.NewSelect().Model(&logs).Where("user_id = ?", userId).OrderExpr("id DESC").Scan(ctx)
	return logs, err
}

// RecordAuditEvent appends an immutable audit row for a mutating
// action. The timestamp is assigned by the database, never by the
// caller. Audit failures are logged and swallowed: the mutation the
// event describes has already happened.
func (svc *PayasyougoService) RecordAuditEvent(ctx context.Context, userId int64, action string, entityType string, entityId int64, ipAddress string) {
	svc.recordAuditEvent(ctx, &userId, action, entityType, entityId, ipAddress)
}

// RecordAnonymousAuditEvent records an event with no actor reference.
// Used when the actor's own account was just removed, since a fresh
// row pointing at the deleted user would violate the foreign key.
func (svc *PayasyougoService) RecordAnonymousAuditEvent(ctx context.Context, action string, entityType string, entityId int64, ipAddress string) {
	svc.recordAuditEvent(ctx, nil, action, entityType, entityId, ipAddress)
}

func (svc *PayasyougoService) recordAuditEvent(ctx context.Context, userId *int64, action string, entityType string, entityId int64, ipAddress string) {
	entry := &models.AuditLog{
		UserID:     userId,
		Action:     action,
		EntityType: entityType,
		EntityID:   &entityId,
		IPAddress:  ipAddress,
	}
	if _, err := svc.DB.NewInsert().Model(entry).Exec(ctx); err != nil {
		svc.Logger.Errorf("Failed to record audit event [action:%s entity:%s:%d]: %v", action, entityType, entityId, err)
		return
	}

	if svc.RabbitMQClient != nil {
		if err := svc.RabbitMQClient.PublishAuditEvent(ctx, entry); err != nil {
			svc.Logger.Errorf("Failed to publish audit event [id:%d]: %v", entry.ID, err)
		}
	}
}
