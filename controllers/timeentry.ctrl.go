package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// TimeEntryController : Time tracking endpoints, always scoped to the caller
type TimeEntryController struct {
	svc *service.PayasyougoService
}

func NewTimeEntryController(svc *service.PayasyougoService) *TimeEntryController {
	return &TimeEntryController{svc: svc}
}

type TimeEntryRequestBody struct {
	ClientID        *int64              `json:"client_id"`
	ProjectName     string              `json:"project_name"`
	Description     string              `json:"description"`
	StartTime       time.Time           `json:"start_time" validate:"required"`
	EndTime         *time.Time          `json:"end_time"`
	DurationMinutes *int64              `json:"duration_minutes"`
	HourlyRate      decimal.NullDecimal `json:"hourly_rate"`
	IsBilled        bool                `json:"is_billed"`
	InvoiceID       *int64              `json:"invoice_id"`
}

func (body *TimeEntryRequestBody) apply(entry *models.TimeEntry) {
	entry.ClientID = body.ClientID
	entry.ProjectName = body.ProjectName
	entry.Description = body.Description
	entry.StartTime = body.StartTime
	entry.EndTime = bun.NullTime{}
	if body.EndTime != nil {
		entry.EndTime = bun.NullTime{Time: *body.EndTime}
	}
	entry.DurationMinutes = body.DurationMinutes
	entry.HourlyRate = body.HourlyRate
	entry.IsBilled = body.IsBilled
	entry.InvoiceID = body.InvoiceID
}

// List godoc
// @Summary      List the caller's time entries
// @Produce      json
// @Tags         TimeEntry
// @Success      200  {object}  []models.TimeEntry
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /time-entries [get]
// @Security     ApiKeyAuth
func (controller *TimeEntryController) List(c echo.Context) error {
	entries, err := controller.svc.TimeEntriesFor(c.Request().Context(), currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Get godoc
// @Summary      Retrieve a time entry
// @Produce      json
// @Tags         TimeEntry
// @Param        id   path      int  true  "Time entry ID"
// @Success      200  {object}  models.TimeEntry
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /time-entries/{id} [get]
// @Security     ApiKeyAuth
func (controller *TimeEntryController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	entry, err := controller.svc.FindTimeEntry(c.Request().Context(), id, currentUserId(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Create godoc
// @Summary      Create a time entry
// @Accept       json
// @Produce      json
// @Tags         TimeEntry
// @Param        TimeEntryRequestBody  body      TimeEntryRequestBody  true  "Time entry details"
// @Success      201                   {object}  models.TimeEntry
// @Failure      400                   {object}  responses.FieldErrors
// @Router       /time-entries [post]
// @Security     ApiKeyAuth
func (controller *TimeEntryController) Create(c echo.Context) error {
	var body TimeEntryRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	entry := &models.TimeEntry{UserID: userId}
	body.apply(entry)

	ctx := c.Request().Context()
	if err := controller.svc.CreateTimeEntry(ctx, entry); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionCreate, common.EntityTypeTimeEntry, entry.ID, c.RealIP())
	return c.JSON(http.StatusCreated, entry)
}

// Update godoc
// @Summary      Update a time entry
// @Accept       json
// @Produce      json
// @Tags         TimeEntry
// @Param        id                    path      int                   true  "Time entry ID"
// @Param        TimeEntryRequestBody  body      TimeEntryRequestBody  true  "Time entry details"
// @Success      200                   {object}  models.TimeEntry
// @Failure      404                   {object}  responses.ErrorResponse
// @Router       /time-entries/{id} [put]
// @Security     ApiKeyAuth
func (controller *TimeEntryController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body TimeEntryRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	entry, err := controller.svc.FindTimeEntry(ctx, id, userId)
	if err != nil {
		return handleServiceError(c, err)
	}
	body.apply(entry)

	if err := controller.svc.UpdateTimeEntry(ctx, entry, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionUpdate, common.EntityTypeTimeEntry, entry.ID, c.RealIP())
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary      Delete a time entry
// @Tags         TimeEntry
// @Param        id  path  int  true  "Time entry ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /time-entries/{id} [delete]
// @Security     ApiKeyAuth
func (controller *TimeEntryController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	userId := currentUserId(c)
	ctx := c.Request().Context()
	if err := controller.svc.DeleteTimeEntry(ctx, id, userId); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, userId, common.AuditActionDelete, common.EntityTypeTimeEntry, id, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
