package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFilter represents query filter options for invoices
type InvoiceFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Status    *InvoiceStatus
	PatientID *uuid.UUID
	Search    string // matches invoice number or patient name
	DueBefore *time.Time
}

// DefaultInvoiceFilter returns a filter with default values
func DefaultInvoiceFilter() InvoiceFilter {
	return InvoiceFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// InvoiceRepository defines persistence operations for the Invoice aggregate
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)
	// FindDueForOverdueSweep returns SENT invoices whose due date has passed
	// with an outstanding balance, for the overdue sweep.
	FindDueForOverdueSweep(ctx context.Context, asOf time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock saves the invoice conditioned on its version being
	// unchanged since it was read. Returns ErrConcurrentModification when
	// another writer got there first.
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}
