package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem represents a line item on an invoice.
// Amount is always derived from the other fields, never set directly.
type InvoiceItem struct {
	ID          uuid.UUID        `json:"id"`
	InvoiceID   uuid.UUID        `json:"invoice_id"`
	Description string           `json:"description"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"` // percentage 0-100, nil when untaxed
	Amount      decimal.Decimal  `json:"amount"`             // Quantity * UnitPrice * (1 + TaxRate/100)
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// InvoiceItems is a slice of InvoiceItem that implements GORM Scanner/Valuer for JSONB storage
type InvoiceItems []InvoiceItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (items InvoiceItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (items *InvoiceItems) Scan(value interface{}) error {
	if value == nil {
		*items = InvoiceItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan InvoiceItems: unsupported type")
	}

	if len(bytes) == 0 {
		*items = InvoiceItems{}
		return nil
	}

	return json.Unmarshal(bytes, items)
}

// NewInvoiceItem creates a new invoice line item.
// Quantity must be a positive integer, unit price non-negative and the
// optional tax rate a percentage between 0 and 100.
func NewInvoiceItem(invoiceID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money, taxRate *decimal.Decimal) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot exceed 500 characters")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TaxRate:     taxRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.recalculateAmount()

	return item, nil
}

func validateTaxRate(taxRate *decimal.Decimal) error {
	if taxRate == nil {
		return nil
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	return nil
}

// recalculateAmount recomputes the derived amount from quantity, price and tax
func (i *InvoiceItem) recalculateAmount() {
	amount := decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
	if i.TaxRate != nil {
		factor := decimal.NewFromInt(1).Add(i.TaxRate.Div(decimal.NewFromInt(100)))
		amount = amount.Mul(factor)
	}
	i.Amount = amount
}

// UpdateQuantity updates the item quantity and recalculates the amount
func (i *InvoiceItem) UpdateQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	i.Quantity = quantity
	i.recalculateAmount()
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the amount
func (i *InvoiceItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.recalculateAmount()
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateTaxRate updates the tax rate and recalculates the amount.
// Passing nil removes tax from the item.
func (i *InvoiceItem) UpdateTaxRate(taxRate *decimal.Decimal) error {
	if err := validateTaxRate(taxRate); err != nil {
		return err
	}

	i.TaxRate = taxRate
	i.recalculateAmount()
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateDescription updates the item description
func (i *InvoiceItem) UpdateDescription(description string) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}

	i.Description = description
	i.UpdatedAt = time.Now()

	return nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *InvoiceItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// GetAmountMoney returns the derived amount as Money value object
func (i *InvoiceItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}
