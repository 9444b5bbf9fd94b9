package inventory

import (
	"fmt"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplyItem represents a tracked medical supply aggregate root.
// Stock can never go negative: consumption beyond the quantity on hand
// is rejected with INSUFFICIENT_STOCK.
type SupplyItem struct {
	shared.AuditedAggregateRoot
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"` // box, vial, pack...
	QuantityOnHand int64           `json:"quantity_on_hand"`
	ReorderLevel   int64           `json:"reorder_level"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LastRestockAt  *time.Time      `json:"last_restock_at"`
}

// NewSupplyItem creates a new supply item with zero stock
func NewSupplyItem(sku, name, category, unit string, reorderLevel int64, unitCost valueobject.Money, createdBy uuid.UUID) (*SupplyItem, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if reorderLevel < 0 {
		return nil, shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	if unitCost.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	item := &SupplyItem{
		AuditedAggregateRoot: shared.NewAuditedAggregateRootWithActor(createdBy),
		SKU:                  sku,
		Name:                 name,
		Category:             category,
		Unit:                 unit,
		QuantityOnHand:       0,
		ReorderLevel:         reorderLevel,
		UnitCost:             unitCost.Amount(),
	}

	item.AddDomainEvent(NewSupplyItemCreatedEvent(item))

	return item, nil
}

// Receive adds received stock to the quantity on hand
func (s *SupplyItem) Receive(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	now := time.Now()
	s.QuantityOnHand += quantity
	s.LastRestockAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReceivedEvent(s, quantity))

	return nil
}

// Consume removes consumed stock from the quantity on hand
func (s *SupplyItem) Consume(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}
	if quantity > s.QuantityOnHand {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot consume %d %s of %s, only %d on hand", quantity, s.Unit, s.SKU, s.QuantityOnHand))
	}

	s.QuantityOnHand -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockConsumedEvent(s, quantity))

	return nil
}

// Adjust corrects the quantity on hand after a physical count
func (s *SupplyItem) Adjust(newQuantity int64, reason string) error {
	if newQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	previous := s.QuantityOnHand
	s.QuantityOnHand = newQuantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockAdjustedEvent(s, previous, reason))

	return nil
}

// UpdateDetails changes the reorder threshold and/or unit cost; nil fields
// are left untouched. The version is bumped exactly once so one save cycle
// consumes one version step.
func (s *SupplyItem) UpdateDetails(reorderLevel *int64, unitCost *valueobject.Money) error {
	if reorderLevel != nil {
		if *reorderLevel < 0 {
			return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
		}
		s.ReorderLevel = *reorderLevel
	}
	if unitCost != nil {
		if unitCost.Amount().IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
		}
		s.UnitCost = unitCost.Amount()
	}

	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsBelowReorderLevel returns true when stock has fallen to or below the threshold
func (s *SupplyItem) IsBelowReorderLevel() bool {
	return s.QuantityOnHand <= s.ReorderLevel
}

// GetUnitCostMoney returns the unit cost as Money value object
func (s *SupplyItem) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.UnitCost)
}

// StockValue returns the total value of the stock on hand
func (s *SupplyItem) StockValue() valueobject.Money {
	return valueobject.NewMoneyUSD(s.UnitCost.Mul(decimal.NewFromInt(s.QuantityOnHand)))
}
