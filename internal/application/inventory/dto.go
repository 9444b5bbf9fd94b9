package inventory

import (
	"time"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSupplyItemRequest represents a request to register a supply item
type CreateSupplyItemRequest struct {
	SKU          string          `json:"sku" binding:"required,min=1,max=50"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Category     string          `json:"category" binding:"max=100"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	ReorderLevel int64           `json:"reorder_level" binding:"min=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// UpdateSupplyItemRequest represents a request to update supply item settings
type UpdateSupplyItemRequest struct {
	ReorderLevel *int64           `json:"reorder_level"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
}

// ReceiveStockRequest represents a stock receipt
type ReceiveStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// ConsumeStockRequest represents a stock consumption
type ConsumeStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// AdjustStockRequest represents a manual stock correction after a count
type AdjustStockRequest struct {
	Quantity int64  `json:"quantity" binding:"min=0"`
	Reason   string `json:"reason" binding:"required,min=1,max=500"`
}

// SupplyItemListFilter represents filter options for supply item queries
type SupplyItemListFilter struct {
	Search       string `form:"search"`
	Category     string `form:"category"`
	BelowReorder bool   `form:"below_reorder"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplyItemResponse represents a supply item in API responses
type SupplyItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category,omitempty"`
	Unit              string          `json:"unit"`
	QuantityOnHand    int64           `json:"quantity_on_hand"`
	ReorderLevel      int64           `json:"reorder_level"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	StockValue        decimal.Decimal `json:"stock_value"`
	BelowReorderLevel bool            `json:"below_reorder_level"`
	LastRestockAt     *time.Time      `json:"last_restock_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToSupplyItemResponse converts a domain supply item to a response DTO
func ToSupplyItemResponse(item *inventory.SupplyItem) SupplyItemResponse {
	return SupplyItemResponse{
		ID:                item.ID,
		SKU:               item.SKU,
		Name:              item.Name,
		Category:          item.Category,
		Unit:              item.Unit,
		QuantityOnHand:    item.QuantityOnHand,
		ReorderLevel:      item.ReorderLevel,
		UnitCost:          item.UnitCost,
		StockValue:        item.StockValue().Amount(),
		BelowReorderLevel: item.IsBelowReorderLevel(),
		LastRestockAt:     item.LastRestockAt,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToSupplyItemResponses converts a slice of domain supply items to response DTOs
func ToSupplyItemResponses(items []inventory.SupplyItem) []SupplyItemResponse {
	responses := make([]SupplyItemResponse, len(items))
	for i := range items {
		responses[i] = ToSupplyItemResponse(&items[i])
	}
	return responses
}
