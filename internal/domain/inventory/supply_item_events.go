package inventory

import (
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplyItemCreatedEvent is raised when a new supply item is registered
type SupplyItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	SKU    string    `json:"sku"`
	Name   string    `json:"name"`
}

// EventType returns the event type name
func (e *SupplyItemCreatedEvent) EventType() string {
	return "SupplyItemCreated"
}

// NewSupplyItemCreatedEvent creates a new SupplyItemCreatedEvent
func NewSupplyItemCreatedEvent(item *SupplyItem) *SupplyItemCreatedEvent {
	return &SupplyItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SupplyItemCreated", "SupplyItem", item.ID),
		ItemID:          item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
	}
}

// StockReceivedEvent is raised when stock is received
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID `json:"item_id"`
	SKU            string    `json:"sku"`
	Quantity       int64     `json:"quantity"`
	QuantityOnHand int64     `json:"quantity_on_hand"`
}

// EventType returns the event type name
func (e *StockReceivedEvent) EventType() string {
	return "StockReceived"
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(item *SupplyItem, quantity int64) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StockReceived", "SupplyItem", item.ID),
		ItemID:          item.ID,
		SKU:             item.SKU,
		Quantity:        quantity,
		QuantityOnHand:  item.QuantityOnHand,
	}
}

// StockConsumedEvent is raised when stock is consumed
type StockConsumedEvent struct {
	shared.BaseDomainEvent
	ItemID            uuid.UUID `json:"item_id"`
	SKU               string    `json:"sku"`
	Quantity          int64     `json:"quantity"`
	QuantityOnHand    int64     `json:"quantity_on_hand"`
	BelowReorderLevel bool      `json:"below_reorder_level"`
}

// EventType returns the event type name
func (e *StockConsumedEvent) EventType() string {
	return "StockConsumed"
}

// NewStockConsumedEvent creates a new StockConsumedEvent
func NewStockConsumedEvent(item *SupplyItem, quantity int64) *StockConsumedEvent {
	return &StockConsumedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("StockConsumed", "SupplyItem", item.ID),
		ItemID:            item.ID,
		SKU:               item.SKU,
		Quantity:          quantity,
		QuantityOnHand:    item.QuantityOnHand,
		BelowReorderLevel: item.IsBelowReorderLevel(),
	}
}

// StockAdjustedEvent is raised when stock is corrected after a count
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ItemID           uuid.UUID `json:"item_id"`
	SKU              string    `json:"sku"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reason           string    `json:"reason"`
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return "StockAdjusted"
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(item *SupplyItem, previous int64, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("StockAdjusted", "SupplyItem", item.ID),
		ItemID:           item.ID,
		SKU:              item.SKU,
		PreviousQuantity: previous,
		NewQuantity:      item.QuantityOnHand,
		Reason:           reason,
	}
}
