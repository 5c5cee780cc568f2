package common

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"

	EntityTypeUser          = "user"
	EntityTypeClient        = "client"
	EntityTypeInvoice       = "invoice"
	EntityTypeInvoiceItem   = "invoice_item"
	EntityTypeTimeEntry     = "time_entry"
	EntityTypeExpense       = "expense"
	EntityTypePayment       = "payment"
	EntityTypeTaxEstimation = "tax_estimation"
	EntityTypeSetting       = "setting"

	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionRegister = "register"
)
