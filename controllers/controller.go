package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/db"
	"github.com/payasyougo/payasyougo.go/lib/responses"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

func currentUserId(c echo.Context) int64 {
	return c.Get("UserID").(int64)
}

func isStaff(c echo.Context) bool {
	staff, ok := c.Get("IsStaff").(bool)
	return ok && staff
}

func handleServiceError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	if db.IsUniqueConstraintError(err) {
		return c.JSON(http.StatusConflict, responses.ConflictError)
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
}
