package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodCredit    PaymentMethod = "CREDIT"
	PaymentMethodInsurance PaymentMethod = "INSURANCE"
	PaymentMethodCheck     PaymentMethod = "CHECK"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCredit, PaymentMethodInsurance, PaymentMethodCheck:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentRecord represents a payment applied to an invoice.
// Records are append-only ledger entries: once created they are never
// mutated or deleted. They live inside the Invoice aggregate, stored as JSONB.
type PaymentRecord struct {
	ID         uuid.UUID       `json:"id"`
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	Reference  string          `json:"reference,omitempty"` // external transaction reference
	RecordedBy uuid.UUID       `json:"recorded_by"`         // actor who recorded the payment
	RecordedAt time.Time       `json:"recorded_at"`
}

// PaymentRecords is a slice of PaymentRecord that implements GORM Scanner/Valuer for JSONB storage
type PaymentRecords []PaymentRecord

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentRecords: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentRecords{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// NewPaymentRecord creates a new payment record
func NewPaymentRecord(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, reference string, recordedBy uuid.UUID) *PaymentRecord {
	return &PaymentRecord{
		ID:         uuid.New(),
		InvoiceID:  invoiceID,
		Amount:     amount.Amount(),
		Method:     method,
		Reference:  reference,
		RecordedBy: recordedBy,
		RecordedAt: time.Now(),
	}
}

// GetAmountMoney returns the amount as Money value object
func (p *PaymentRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}
