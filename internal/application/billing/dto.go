package billing

import (
	"time"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// CreateInvoiceRequest represents a request to create a new draft invoice
type CreateInvoiceRequest struct {
	PatientID uuid.UUID                `json:"patient_id" binding:"required"`
	DueDate   *time.Time               `json:"due_date"`
	Items     []CreateInvoiceItemInput `json:"items"`
	Remark    string                   `json:"remark"`
}

// CreateInvoiceItemInput represents a line item in the create invoice request
type CreateInvoiceItemInput struct {
	Description string           `json:"description" binding:"required,min=1,max=500"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice's header fields
type UpdateInvoiceRequest struct {
	DueDate *time.Time `json:"due_date"`
	Remark  *string    `json:"remark"`
}

// AddInvoiceItemRequest represents a request to add a line item to a draft invoice
type AddInvoiceItemRequest struct {
	Description string           `json:"description" binding:"required,min=1,max=500"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// UpdateInvoiceItemRequest represents a request to update a line item on a draft invoice
type UpdateInvoiceItemRequest struct {
	Description *string          `json:"description"`
	Quantity    *int64           `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// RecordPaymentRequest represents a request to apply a payment against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference" binding:"max=100"`
}

// CancelInvoiceRequest represents a request to cancel an invoice
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// UpdateInvoiceStatusRequest represents an explicit status transition request
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// InvoiceListFilter represents filter options for invoice list queries
type InvoiceListFilter struct {
	Search    string     `form:"search"`
	PatientID *uuid.UUID `form:"patient_id"`
	Status    *string    `form:"status"`
	DueBefore *time.Time `form:"due_before"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
}

// PaymentRecordResponse represents a payment ledger entry in API responses
type PaymentRecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	RecordedBy uuid.UUID       `json:"recorded_by"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// InvoiceResponse represents a full invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID               `json:"id"`
	InvoiceNumber   string                  `json:"invoice_number"`
	PatientID       uuid.UUID               `json:"patient_id"`
	PatientName     string                  `json:"patient_name"`
	Items           []InvoiceItemResponse   `json:"items"`
	ItemCount       int                     `json:"item_count"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	AmountPaid      decimal.Decimal         `json:"amount_paid"`
	Balance         decimal.Decimal         `json:"balance"`
	Status          string                  `json:"status"`
	EffectiveStatus string                  `json:"effective_status"`
	DueDate         *time.Time              `json:"due_date,omitempty"`
	Payments        []PaymentRecordResponse `json:"payments"`
	Remark          string                  `json:"remark,omitempty"`
	SentAt          *time.Time              `json:"sent_at,omitempty"`
	PaidAt          *time.Time              `json:"paid_at,omitempty"`
	OverdueAt       *time.Time              `json:"overdue_at,omitempty"`
	CancelledAt     *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason    string                  `json:"cancel_reason,omitempty"`
	CreatedBy       *uuid.UUID              `json:"created_by,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	Version         int                     `json:"version"`
}

// InvoiceListItemResponse represents an invoice in list responses (less detail)
type InvoiceListItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	PatientID       uuid.UUID       `json:"patient_id"`
	PatientName     string          `json:"patient_name"`
	ItemCount       int             `json:"item_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Balance         decimal.Decimal `json:"balance"`
	Status          string          `json:"status"`
	EffectiveStatus string          `json:"effective_status"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToInvoiceItemResponse converts a domain invoice item to a response DTO
func ToInvoiceItemResponse(item *billing.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TaxRate:     item.TaxRate,
		Amount:      item.Amount,
	}
}

// ToPaymentRecordResponse converts a domain payment record to a response DTO
func ToPaymentRecordResponse(record *billing.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:         record.ID,
		Amount:     record.Amount,
		Method:     string(record.Method),
		Reference:  record.Reference,
		RecordedBy: record.RecordedBy,
		RecordedAt: record.RecordedAt,
	}
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i])
	}
	payments := make([]PaymentRecordResponse, len(inv.PaymentRecords))
	for i := range inv.PaymentRecords {
		payments[i] = ToPaymentRecordResponse(&inv.PaymentRecords[i])
	}

	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PatientID:       inv.PatientID,
		PatientName:     inv.PatientName,
		Items:           items,
		ItemCount:       inv.ItemCount(),
		TotalAmount:     inv.TotalAmount,
		AmountPaid:      inv.AmountPaid,
		Balance:         inv.Balance,
		Status:          string(inv.Status),
		EffectiveStatus: string(inv.EffectiveStatus(time.Now())),
		DueDate:         inv.DueDate,
		Payments:        payments,
		Remark:          inv.Remark,
		SentAt:          inv.SentAt,
		PaidAt:          inv.PaidAt,
		OverdueAt:       inv.OverdueAt,
		CancelledAt:     inv.CancelledAt,
		CancelReason:    inv.CancelReason,
		CreatedBy:       inv.CreatedBy,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Version:         inv.Version,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to a list item DTO
func ToInvoiceListItemResponse(inv *billing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PatientID:       inv.PatientID,
		PatientName:     inv.PatientName,
		ItemCount:       inv.ItemCount(),
		TotalAmount:     inv.TotalAmount,
		Balance:         inv.Balance,
		Status:          string(inv.Status),
		EffectiveStatus: string(inv.EffectiveStatus(time.Now())),
		DueDate:         inv.DueDate,
		CreatedAt:       inv.CreatedAt,
	}
}

// ToInvoiceListItemResponses converts a slice of domain invoices to list item DTOs
func ToInvoiceListItemResponses(invoices []billing.Invoice) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return responses
}
