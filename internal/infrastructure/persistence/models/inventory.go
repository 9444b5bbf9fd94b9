package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// SupplyItemModel is the persistence model for medical supply items.
type SupplyItemModel struct {
	AuditedAggregateModel
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Category       string          `gorm:"type:varchar(100);index"`
	Unit           string          `gorm:"type:varchar(20);not null"`
	QuantityOnHand int64           `gorm:"not null;default:0"`
	ReorderLevel   int64           `gorm:"not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LastRestockAt  *time.Time
}

// TableName returns the table name for GORM
func (SupplyItemModel) TableName() string {
	return "supply_items"
}

// ToDomain converts the persistence model to a domain SupplyItem entity.
func (m *SupplyItemModel) ToDomain() *inventory.SupplyItem {
	return &inventory.SupplyItem{
		AuditedAggregateRoot: m.ToDomainAggregateRoot(),
		SKU:                  m.SKU,
		Name:                 m.Name,
		Category:             m.Category,
		Unit:                 m.Unit,
		QuantityOnHand:       m.QuantityOnHand,
		ReorderLevel:         m.ReorderLevel,
		UnitCost:             m.UnitCost,
		LastRestockAt:        m.LastRestockAt,
	}
}

// FromDomain populates the persistence model from a domain SupplyItem entity.
func (m *SupplyItemModel) FromDomain(item *inventory.SupplyItem) {
	m.FromDomainAggregateRoot(item.AuditedAggregateRoot)
	m.SKU = item.SKU
	m.Name = item.Name
	m.Category = item.Category
	m.Unit = item.Unit
	m.QuantityOnHand = item.QuantityOnHand
	m.ReorderLevel = item.ReorderLevel
	m.UnitCost = item.UnitCost
	m.LastRestockAt = item.LastRestockAt
}

// SupplyItemModelFromDomain creates a new persistence model from a domain SupplyItem.
func SupplyItemModelFromDomain(item *inventory.SupplyItem) *SupplyItemModel {
	m := &SupplyItemModel{}
	m.FromDomain(item)
	return m
}
