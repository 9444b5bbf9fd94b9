package billing

import (
	"context"
	"errors"
	"time"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/clinicore/backend/internal/domain/patient"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	patientRepo    patient.PatientRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, patientRepo patient.PatientRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft invoice for a patient
func (s *InvoiceService) Create(ctx context.Context, actorID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	// Resolve the patient; the invoice carries a denormalized name snapshot
	pat, err := s.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(invoiceNumber, pat.ID, pat.FullName, req.DueDate, actorID)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		unitPrice := valueobject.NewMoneyUSD(item.UnitPrice)
		if _, err := invoice.AddItem(item.Description, item.Quantity, unitPrice, item.TaxRate); err != nil {
			return nil, err
		}
	}

	if req.Remark != "" {
		invoice.SetRemark(req.Remark)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByInvoiceNumber retrieves an invoice by invoice number
func (s *InvoiceService) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListItemResponses(invoices), total, nil
}

// ListByPatient retrieves invoices for a specific patient
func (s *InvoiceService) ListByPatient(ctx context.Context, patientID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	domainFilter.PatientID = &patientID

	invoices, err := s.invoiceRepo.FindByPatient(ctx, patientID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListItemResponses(invoices), total, nil
}

// ListPayments returns the payment ledger of an invoice in recording order
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]PaymentRecordResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payments := make([]PaymentRecordResponse, len(invoice.PaymentRecords))
	for i := range invoice.PaymentRecords {
		payments[i] = ToPaymentRecordResponse(&invoice.PaymentRecords[i])
	}
	return payments, nil
}

// Update updates the header fields of a draft invoice
func (s *InvoiceService) Update(ctx context.Context, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.UpdateDetails(req.DueDate, req.Remark)
	})
}

// AddItem adds a line item to a draft invoice
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddInvoiceItemRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		unitPrice := valueobject.NewMoneyUSD(req.UnitPrice)
		_, err := invoice.AddItem(req.Description, req.Quantity, unitPrice, req.TaxRate)
		return err
	})
}

// UpdateItem updates a line item on a draft invoice
func (s *InvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID uuid.UUID, req UpdateInvoiceItemRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		upd := billing.ItemUpdate{
			Description: req.Description,
			Quantity:    req.Quantity,
			TaxRate:     req.TaxRate,
		}
		if req.UnitPrice != nil {
			price := valueobject.NewMoneyUSD(*req.UnitPrice)
			upd.UnitPrice = &price
		}
		return invoice.UpdateItem(itemID, upd)
	})
}

// RemoveItem removes a line item from a draft invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.RemoveItem(itemID)
	})
}

// Send transitions a draft invoice to SENT
func (s *InvoiceService) Send(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.Send()
	})
}

// RecordPayment applies a payment against an invoice and appends it to the
// payment ledger. Validation runs against the freshest state on each
// attempt, so a payment that no longer fits the balance after a concurrent
// write fails with the appropriate domain error rather than overdrawing.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID, actorID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	amount := valueobject.NewMoneyUSD(req.Amount)
	method := billing.PaymentMethod(req.Method)

	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		_, err := invoice.ApplyPayment(amount, method, req.Reference, actorID)
		return err
	})
}

// Cancel cancels an invoice with a reason
func (s *InvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID, req CancelInvoiceRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.Cancel(req.Reason)
	})
}

// UpdateStatus performs an explicit status transition
func (s *InvoiceService) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, req UpdateInvoiceStatusRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.TransitionTo(billing.InvoiceStatus(req.Status), req.Reason)
	})
}

// Delete removes a draft invoice. Invoices that have left DRAFT are part of
// the financial record and cannot be deleted.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.IsDraft() {
		return shared.NewDomainError("INVOICE_NOT_EDITABLE", "Only draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// SweepOverdue transitions every SENT invoice whose due date has passed and
// which still carries a balance to OVERDUE. Returns the number of invoices
// transitioned. Invoices that conflict with a concurrent writer are skipped
// and picked up by the next sweep.
func (s *InvoiceService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	invoices, err := s.invoiceRepo.FindDueForOverdueSweep(ctx, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range invoices {
		invoice := &invoices[i]
		if err := invoice.MarkOverdue(now); err != nil {
			continue
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			if isConcurrentModification(err) {
				s.logger.Debug("overdue sweep skipped invoice due to concurrent write",
					zap.String("invoice_number", invoice.InvoiceNumber))
				continue
			}
			return swept, err
		}
		s.publishEvents(ctx, invoice)
		swept++
	}

	return swept, nil
}

// mutate loads the invoice, applies op and saves with optimistic locking.
// On a version conflict it re-fetches once and re-applies op against the
// fresh state; a second conflict surfaces CONCURRENT_MODIFICATION to the
// caller.
func (s *InvoiceService) mutate(ctx context.Context, invoiceID uuid.UUID, op func(*billing.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := op(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		if !isConcurrentModification(err) {
			return nil, err
		}

		s.logger.Debug("version conflict on invoice save, retrying",
			zap.String("invoice_id", invoiceID.String()))

		invoice, err = s.invoiceRepo.FindByID(ctx, invoiceID)
		if err != nil {
			return nil, err
		}
		if err := op(invoice); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// publishEvents publishes and clears the aggregate's pending domain events
func (s *InvoiceService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	if s.eventPublisher == nil {
		invoice.ClearDomainEvents()
		return
	}
	if events := invoice.GetDomainEvents(); len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err))
		}
	}
	invoice.ClearDomainEvents()
}

func isConcurrentModification(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrConcurrentModification.Code
	}
	return false
}

func toDomainFilter(filter InvoiceListFilter) (billing.InvoiceFilter, error) {
	domainFilter := billing.DefaultInvoiceFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	domainFilter.PatientID = filter.PatientID
	domainFilter.DueBefore = filter.DueBefore

	if filter.Status != nil {
		status := billing.InvoiceStatus(*filter.Status)
		if !status.IsValid() {
			return billing.InvoiceFilter{}, shared.NewDomainError("INVALID_STATUS", "Unknown invoice status")
		}
		domainFilter.Status = &status
	}

	return domainFilter, nil
}
