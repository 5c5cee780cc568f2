package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/payasyougo/payasyougo.go/controllers"
	"github.com/payasyougo/payasyougo.go/lib/service"
)

func RegisterEndpoints(svc *service.PayasyougoService, e *echo.Echo, secured *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	if svc.Config.AllowAccountCreation {
		e.POST("/register", controllers.NewRegisterController(svc).Register, strictRateLimitMiddleware, logMw)
	}
	e.POST("/login", controllers.NewAuthController(svc).Login, strictRateLimitMiddleware, logMw)

	userCtrl := controllers.NewUserController(svc)
	secured.GET("/users", userCtrl.List)
	secured.POST("/users", userCtrl.Create)
	secured.GET("/users/:id", userCtrl.Get)
	secured.PUT("/users/:id", userCtrl.Update)
	secured.DELETE("/users/:id", userCtrl.Delete)

	clientCtrl := controllers.NewClientController(svc)
	secured.GET("/clients", clientCtrl.List)
	secured.POST("/clients", clientCtrl.Create)
	secured.GET("/clients/:id", clientCtrl.Get)
	secured.PUT("/clients/:id", clientCtrl.Update)
	secured.DELETE("/clients/:id", clientCtrl.Delete)

	invoiceCtrl := controllers.NewInvoiceController(svc)
	secured.GET("/invoices", invoiceCtrl.List)
	secured.POST("/invoices", invoiceCtrl.Create)
	secured.GET("/invoices/:id", invoiceCtrl.Get)
	secured.PUT("/invoices/:id", invoiceCtrl.Update)
	secured.DELETE("/invoices/:id", invoiceCtrl.Delete)

	itemCtrl := controllers.NewInvoiceItemController(svc)
	secured.GET("/invoice-items", itemCtrl.List)
	secured.POST("/invoice-items", itemCtrl.Create)
	secured.GET("/invoice-items/:id", itemCtrl.Get)
	secured.PUT("/invoice-items/:id", itemCtrl.Update)
	secured.DELETE("/invoice-items/:id", itemCtrl.Delete)

	timeEntryCtrl := controllers.NewTimeEntryController(svc)
	secured.GET("/time-entries", timeEntryCtrl.List)
	secured.POST("/time-entries", timeEntryCtrl.Create)
	secured.GET("/time-entries/:id", timeEntryCtrl.Get)
	secured.PUT("/time-entries/:id", timeEntryCtrl.Update)
	secured.DELETE("/time-entries/:id", timeEntryCtrl.Delete)

	expenseCtrl := controllers.NewExpenseController(svc)
	secured.GET("/expenses", expenseCtrl.List)
	secured.POST("/expenses", expenseCtrl.Create)
	secured.GET("/expenses/:id", expenseCtrl.Get)
	secured.PUT("/expenses/:id", expenseCtrl.Update)
	secured.DELETE("/expenses/:id", expenseCtrl.Delete)

	paymentCtrl := controllers.NewPaymentController(svc)
	secured.GET("/payments", paymentCtrl.List)
	secured.POST("/payments", paymentCtrl.Create)
	secured.GET("/payments/:id", paymentCtrl.Get)
	secured.PUT("/payments/:id", paymentCtrl.Update)
	secured.DELETE("/payments/:id", paymentCtrl.Delete)

	// singleton resource, no record id in the path
	taxCtrl := controllers.NewTaxEstimationController(svc)
	secured.GET("/tax-estimation", taxCtrl.Get)
	secured.POST("/tax-estimation", taxCtrl.Create)
	secured.PUT("/tax-estimation", taxCtrl.Update)

	settingCtrl := controllers.NewSettingController(svc)
	secured.GET("/settings", settingCtrl.List)
	secured.POST("/settings", settingCtrl.Create)
	secured.GET("/settings/:id", settingCtrl.Get)
	secured.PUT("/settings/:id", settingCtrl.Update)
	secured.DELETE("/settings/:id", settingCtrl.Delete)

	secured.GET("/audit-logs", controllers.NewAuditLogController(svc).List)
}
