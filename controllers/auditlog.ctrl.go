package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

// AuditLogController : Read-only access to the caller's audit trail.
// Entries are written by the server on every mutation and never
// through this endpoint.
type AuditLogController struct {
	svc *service.PayasyougoService
}

func NewAuditLogController(svc *service.PayasyougoService) *AuditLogController {
	return &AuditLogController{svc: svc}
}

// List godoc
// @Summary      List the caller's audit log entries
// @Description  Newest first.
// @Produce      json
// @Tags         AuditLog
// @Success      200  {object}  []models.AuditLog
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /audit-logs [get]
// @Security     ApiKeyAuth
func (controller *AuditLogController) List(c echo.Context) error {
	logs, err := controller.svc.AuditLogsFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
