package billing

import (
	"fmt"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"     // Editable, not yet issued
	InvoiceStatusSent      InvoiceStatus = "SENT"      // Issued to the patient, awaiting payment
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // Fully paid, balance = 0
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // Past due date with outstanding balance
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // Cancelled before full payment
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusOverdue
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent || target == InvoiceStatusCancelled
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid || target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	}
	return false
}

// illegalTransition builds the error returned for any transition outside the table
func illegalTransition(from, to InvoiceStatus) error {
	return shared.NewDomainError("ILLEGAL_STATUS_TRANSITION",
		fmt.Sprintf("Cannot transition invoice from %s to %s", from, to))
}

// errNotEditable is returned when item edits are attempted outside DRAFT
func errNotEditable(status InvoiceStatus) error {
	return shared.NewDomainError("INVOICE_NOT_EDITABLE",
		fmt.Sprintf("Cannot edit items of an invoice in %s status", status))
}

// Invoice represents a patient invoice aggregate root.
// It owns its line items and the append-only ledger of payments applied
// against it, and maintains the invariant that
// AmountPaid + Balance == TotalAmount after every operation.
type Invoice struct {
	shared.AuditedAggregateRoot
	InvoiceNumber  string          `json:"invoice_number"`
	PatientID      uuid.UUID       `json:"patient_id"`
	PatientName    string          `json:"patient_name"`
	Items          InvoiceItems    `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"` // Sum of item amounts, rounded to the minor unit
	AmountPaid     decimal.Decimal `json:"amount_paid"`  // Accumulated from applied payments
	Balance        decimal.Decimal `json:"balance"`      // TotalAmount - AmountPaid, floored at 0
	Status         InvoiceStatus   `json:"status"`
	DueDate        *time.Time      `json:"due_date"`
	PaymentRecords PaymentRecords  `json:"payment_records"`
	Remark         string          `json:"remark"`
	SentAt         *time.Time      `json:"sent_at"`
	PaidAt         *time.Time      `json:"paid_at"` // Set only on transition to PAID
	OverdueAt      *time.Time      `json:"overdue_at"`
	CancelledAt    *time.Time      `json:"cancelled_at"`
	CancelReason   string          `json:"cancel_reason"`
}

// NewInvoice creates a new draft invoice for a patient
func NewInvoice(invoiceNumber string, patientID uuid.UUID, patientName string, dueDate *time.Time, createdBy uuid.UUID) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID cannot be empty")
	}
	if patientName == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT_NAME", "Patient name cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Creating actor ID cannot be empty")
	}

	inv := &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRootWithActor(createdBy),
		InvoiceNumber:        invoiceNumber,
		PatientID:            patientID,
		PatientName:          patientName,
		Items:                InvoiceItems{},
		TotalAmount:          decimal.Zero,
		AmountPaid:           decimal.Zero,
		Balance:              decimal.Zero,
		Status:               InvoiceStatusDraft,
		DueDate:              dueDate,
		PaymentRecords:       PaymentRecords{},
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem adds a new line item to the invoice.
// Only allowed while the invoice is in DRAFT status.
func (inv *Invoice) AddItem(description string, quantity int64, unitPrice valueobject.Money, taxRate *decimal.Decimal) (*InvoiceItem, error) {
	if inv.Status != InvoiceStatusDraft {
		return nil, errNotEditable(inv.Status)
	}

	item, err := NewInvoiceItem(inv.ID, description, quantity, unitPrice, taxRate)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return item, nil
}

// ItemUpdate carries the line item fields to change; nil fields are left
// untouched.
type ItemUpdate struct {
	Description *string
	Quantity    *int64
	UnitPrice   *valueobject.Money
	TaxRate     *decimal.Decimal
}

// UpdateItem applies the given field changes to an existing item.
// Only allowed while the invoice is in DRAFT status. The version is bumped
// exactly once regardless of how many fields change, so one save cycle
// consumes one version step.
func (inv *Invoice) UpdateItem(itemID uuid.UUID, upd ItemUpdate) error {
	if inv.Status != InvoiceStatusDraft {
		return errNotEditable(inv.Status)
	}

	item := inv.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
	}

	if upd.Description != nil {
		if err := item.UpdateDescription(*upd.Description); err != nil {
			return err
		}
	}
	if upd.Quantity != nil {
		if err := item.UpdateQuantity(*upd.Quantity); err != nil {
			return err
		}
	}
	if upd.UnitPrice != nil {
		if err := item.UpdateUnitPrice(*upd.UnitPrice); err != nil {
			return err
		}
	}
	if upd.TaxRate != nil {
		if err := item.UpdateTaxRate(upd.TaxRate); err != nil {
			return err
		}
	}

	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// RemoveItem removes an item from the invoice.
// Only allowed while the invoice is in DRAFT status.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return errNotEditable(inv.Status)
	}

	for idx, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			inv.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// recalculateTotals recomputes the derived totals from the item list.
// Runs synchronously on every item mutation so the totals are never stale.
func (inv *Invoice) recalculateTotals() {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Amount)
	}
	inv.TotalAmount = total.Round(valueobject.MinorUnitPlaces)

	inv.Balance = inv.TotalAmount.Sub(inv.AmountPaid)
	if inv.Balance.IsNegative() {
		inv.Balance = decimal.Zero
	}
}

// ApplyPayment applies a payment to the invoice and appends it to the
// payment ledger. The payment must be positive and must not exceed the
// outstanding balance. When the balance reaches zero the invoice
// transitions to PAID and PaidAt is set to the payment's timestamp.
func (inv *Invoice) ApplyPayment(amount valueobject.Money, method PaymentMethod, reference string, recordedBy uuid.UUID) (*PaymentRecord, error) {
	if !inv.Status.CanApplyPayment() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot apply payment to invoice in %s status", inv.Status))
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Recording actor ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(inv.Balance) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT",
			fmt.Sprintf("Payment amount %s exceeds outstanding balance %s",
				amount.Amount().StringFixed(2), inv.Balance.StringFixed(2)))
	}

	record := NewPaymentRecord(inv.ID, amount, method, reference, recordedBy)
	inv.PaymentRecords = append(inv.PaymentRecords, *record)

	inv.AmountPaid = inv.AmountPaid.Add(amount.Amount())
	inv.Balance = inv.TotalAmount.Sub(inv.AmountPaid)
	// Clamp to absorb rounding; AmountPaid + Balance == TotalAmount must hold
	if inv.Balance.IsNegative() {
		inv.Balance = decimal.Zero
	}

	if inv.Balance.IsZero() {
		paidAt := record.RecordedAt
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &paidAt
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, record))
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return record, nil
}

// Send issues the invoice to the patient, transitioning DRAFT to SENT.
// Requires a non-empty item list.
func (inv *Invoice) Send() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusSent) {
		return illegalTransition(inv.Status, InvoiceStatusSent)
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send an invoice without items")
	}

	now := time.Now()
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// MarkOverdue transitions the invoice from SENT to OVERDUE.
// Guard: the due date has passed and there is an outstanding balance.
func (inv *Invoice) MarkOverdue(now time.Time) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusOverdue) {
		return illegalTransition(inv.Status, InvoiceStatusOverdue)
	}
	if inv.DueDate == nil || !now.After(*inv.DueDate) {
		return shared.NewDomainError("NOT_PAST_DUE", "Invoice due date has not passed")
	}
	if !inv.Balance.IsPositive() {
		return shared.NewDomainError("NO_BALANCE", "Invoice has no outstanding balance")
	}

	inv.Status = InvoiceStatusOverdue
	inv.OverdueAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceOverdueEvent(inv))

	return nil
}

// Cancel cancels the invoice. Allowed from any non-terminal status.
func (inv *Invoice) Cancel(reason string) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return illegalTransition(inv.Status, InvoiceStatusCancelled)
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.CancelReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))

	return nil
}

// TransitionTo performs an explicit status transition request, running the
// state machine guards. PAID is only reachable through ApplyPayment, never
// by explicit request.
func (inv *Invoice) TransitionTo(target InvoiceStatus, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown invoice status %q", target))
	}

	switch target {
	case InvoiceStatusSent:
		return inv.Send()
	case InvoiceStatusCancelled:
		return inv.Cancel(reason)
	case InvoiceStatusOverdue:
		return inv.MarkOverdue(time.Now())
	default:
		return illegalTransition(inv.Status, target)
	}
}

// UpdateDetails changes the due date and/or remark; nil fields are left
// untouched. Due date changes are not allowed in terminal states. The
// version is bumped exactly once so one save cycle consumes one version
// step.
func (inv *Invoice) UpdateDetails(dueDate *time.Time, remark *string) error {
	if dueDate != nil {
		if inv.Status.IsTerminal() {
			return shared.NewDomainError("INVALID_STATE", "Cannot modify due date of an invoice in terminal state")
		}
		inv.DueDate = dueDate
	}
	if remark != nil {
		inv.Remark = *remark
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// SetRemark sets the invoice remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// IsPastDue returns true if the invoice is past its due date with an
// outstanding balance, regardless of whether the persistent OVERDUE
// transition has been applied yet.
func (inv *Invoice) IsPastDue(now time.Time) bool {
	if inv.Status.IsTerminal() {
		return false
	}
	if inv.Status == InvoiceStatusDraft {
		return false
	}
	if inv.DueDate == nil {
		return false
	}
	return now.After(*inv.DueDate) && inv.Balance.IsPositive()
}

// EffectiveStatus returns the status as observed at the given time:
// a SENT invoice past its due date reads as OVERDUE even before the
// sweep has persisted the transition.
func (inv *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.Status == InvoiceStatusSent && inv.IsPastDue(now) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// Helper methods

// GetTotalAmountMoney returns total amount as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.TotalAmount)
}

// GetAmountPaidMoney returns paid amount as Money
func (inv *Invoice) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.AmountPaid)
}

// GetBalanceMoney returns outstanding balance as Money
func (inv *Invoice) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Balance)
}

// GetItem returns an item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *InvoiceItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// PaymentCount returns the number of payments applied
func (inv *Invoice) PaymentCount() int {
	return len(inv.PaymentRecords)
}

// IsDraft returns true if the invoice is in draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsSent returns true if the invoice has been issued
func (inv *Invoice) IsSent() bool {
	return inv.Status == InvoiceStatusSent
}

// IsPaid returns true if the invoice is fully paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice has been marked overdue
func (inv *Invoice) IsOverdue() bool {
	return inv.Status == InvoiceStatusOverdue
}

// IsCancelled returns true if the invoice is cancelled
func (inv *Invoice) IsCancelled() bool {
	return inv.Status == InvoiceStatusCancelled
}

// CanModifyItems returns true if the item list can be edited
func (inv *Invoice) CanModifyItems() bool {
	return inv.IsDraft()
}
