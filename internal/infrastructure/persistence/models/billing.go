package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Line items and the payment ledger are embedded as JSONB: they live and
// die with the invoice and are never queried independently.
type InvoiceModel struct {
	AuditedAggregateModel
	InvoiceNumber  string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	PatientID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	PatientName    string                 `gorm:"type:varchar(200);not null"`
	Items          billing.InvoiceItems   `gorm:"type:jsonb;default:'[]'"`
	TotalAmount    decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	AmountPaid     decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Balance        decimal.Decimal        `gorm:"type:decimal(18,4);not null;index"`
	Status         billing.InvoiceStatus  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	DueDate        *time.Time             `gorm:"index"`
	PaymentRecords billing.PaymentRecords `gorm:"type:jsonb;default:'[]'"`
	Remark         string                 `gorm:"type:text"`
	SentAt         *time.Time
	PaidAt         *time.Time
	OverdueAt      *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		AuditedAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:        m.InvoiceNumber,
		PatientID:            m.PatientID,
		PatientName:          m.PatientName,
		Items:                m.Items,
		TotalAmount:          m.TotalAmount,
		AmountPaid:           m.AmountPaid,
		Balance:              m.Balance,
		Status:               m.Status,
		DueDate:              m.DueDate,
		PaymentRecords:       m.PaymentRecords,
		Remark:               m.Remark,
		SentAt:               m.SentAt,
		PaidAt:               m.PaidAt,
		OverdueAt:            m.OverdueAt,
		CancelledAt:          m.CancelledAt,
		CancelReason:         m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.AuditedAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.PatientID = inv.PatientID
	m.PatientName = inv.PatientName
	m.Items = inv.Items
	m.TotalAmount = inv.TotalAmount
	m.AmountPaid = inv.AmountPaid
	m.Balance = inv.Balance
	m.Status = inv.Status
	m.DueDate = inv.DueDate
	m.PaymentRecords = inv.PaymentRecords
	m.Remark = inv.Remark
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.OverdueAt = inv.OverdueAt
	m.CancelledAt = inv.CancelledAt
	m.CancelReason = inv.CancelReason
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
