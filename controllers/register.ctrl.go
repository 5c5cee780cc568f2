package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/common"
	"github.com/payasyougo/payasyougo.go/db"
	"github.com/payasyougo/payasyougo.go/db/models"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

// RegisterController : Account signup endpoint
type RegisterController struct {
	svc *service.PayasyougoService
}

func NewRegisterController(svc *service.PayasyougoService) *RegisterController {
	return &RegisterController{svc: svc}
}

type RegisterRequestBody struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Password2   string `json:"password2" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
}

// Register godoc
// @Summary      Create a new account
// @Description  Registers a user. The two password fields must match.
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        RegisterRequestBody  body      RegisterRequestBody  true  "Account details"
// @Success      201                  {object}  models.User
// @Failure      400                  {object}  responses.FieldErrors
// @Failure      500                  {object}  responses.ErrorResponse
// @Router       /register [post]
func (controller *RegisterController) Register(c echo.Context) error {
	var body RegisterRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load register request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ValidationErrors(err))
	}
	if body.Password != body.Password2 {
		return c.JSON(http.StatusBadRequest, responses.NewFieldError("password", "Passwords do not match."))
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
			field := "username"
			if strings.Contains(err.Error(), "email") {
				field = "email"
			}
			return c.JSON(http.StatusBadRequest, responses.NewFieldError(field, "A user with that "+field+" already exists."))
		}
		c.Logger().Errorf("Failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	controller.svc.RecordAuditEvent(ctx, user.ID, common.AuditActionRegister, common.EntityTypeUser, user.ID, c.RealIP())
	return c.JSON(http.StatusCreated, user)
}
