package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

// UserController : User management endpoints
type UserController struct {
	svc *service.PayasyougoService
}

func NewUserController(svc *service.PayasyougoService) *UserController {
	return &UserController{svc: svc}
}

type CreateUserRequestBody struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
}

type UpdateUserRequestBody struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
}

// List godoc
// @Summary      List users
// @Produce      json
// @Tags         User
// @Success      200  {object}  []models.User
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /users [get]
// @Security     ApiKeyAuth
func (controller *UserController) List(c echo.Context) error {
	users, err := controller.svc.ListUsers(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary      Retrieve a user
// @Produce      json
// @Tags         User
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /users/{id} [get]
// @Security     ApiKeyAuth
func (controller *UserController) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	user, err := controller.svc.FindUser(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary      Create a user
// @Accept       json
// @Produce      json
// @Tags         User
// @Param        CreateUserRequestBody  body      CreateUserRequestBody  true  "User details"
// @Success      201                    {object}  models.User
// @Failure      400                    {object}  responses.FieldErrors
// @Failure      409                    {object}  responses.ErrorResponse
// @Router       /users [post]
// @Security     ApiKeyAuth
func (controller *UserController) Create(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	user := &models.User{
		Username:    body.Username,
		Email:       body.Email,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		CompanyName: body.CompanyName,
		PhoneNumber: body.PhoneNumber,
	}
	ctx := c.Request().Context()
	if err := controller.svc.RegisterUser(ctx, user, body.Password); err != nil {
		if db.IsUniqueConstraintError(err) {
			return c.JSON(http.StatusConflict, responses.ConflictError)
		}
		c.Logger().Errorf("Failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	controller.svc.RecordAuditEvent(ctx, currentUserId(c), common.AuditActionCreate, common.EntityTypeUser, user.ID, c.RealIP())
	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary      Update a user's profile
// @Accept       json
// @Produce      json
// @Tags         User
// @Param        id                     path      int                    true  "User ID"
// @Param        UpdateUserRequestBody  body      UpdateUserRequestBody  true  "Profile fields"
// @Success      200                    {object}  models.User
// @Failure      400                    {object}  responses.FieldErrors
// @Failure      404                    {object}  responses.ErrorResponse
// @Router       /users/{id} [put]
// @Security     ApiKeyAuth
func (controller *UserController) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	var body UpdateUserRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}

	ctx := c.Request().Context()
	user, err := controller.svc.FindUser(ctx, id)
	if err != nil {
		return handleServiceError(c, err)
	}
	user.Email = body.Email
	user.FirstName = body.FirstName
	user.LastName = body.LastName
	user.CompanyName = body.CompanyName
	user.PhoneNumber = body.PhoneNumber

	if err := controller.svc.UpdateUser(ctx, user); err != nil {
		return handleServiceError(c, err)
	}

	controller.svc.RecordAuditEvent(ctx, currentUserId(c), common.AuditActionUpdate, common.EntityTypeUser, user.ID, c.RealIP())
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary      Delete a user
// @Description  Removes the account and everything it owns. Audit log entries are kept with the user reference cleared.
// @Tags         User
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /users/{id} [delete]
// @Security     ApiKeyAuth
func (controller *UserController) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}

	ctx := c.Request().Context()
	actor := currentUserId(c)
	if err := controller.svc.DeleteUser(ctx, id); err != nil {
		return handleServiceError(c, err)
	}

	if actor == id {
		controller.svc.RecordAnonymousAuditEvent(ctx, common.AuditActionDelete, common.EntityTypeUser, id, c.RealIP())
	} else {
		controller.svc.RecordAuditEvent(ctx, actor, common.AuditActionDelete, common.EntityTypeUser, id, c.RealIP())
	}
	return c.NoContent(http.StatusNoContent)
}
